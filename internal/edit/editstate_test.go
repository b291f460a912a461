package edit

import (
	"errors"
	"testing"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/color"
	"github.com/stlalpha/icyengine/internal/errs"
)

func newTestState() *EditState {
	b := buffer.New(buffer.Size{Width: 10, Height: 5}, nil)
	return New(b)
}

func TestSetCharOutOfRangeFails(t *testing.T) {
	e := newTestState()
	err := e.SetChar(0, buffer.Position{X: 100, Y: 100}, attr.AttributedChar{Ch: 'X'})
	if !errors.Is(err, errs.ErrPositionOutOfLayer) {
		t.Fatalf("expected ErrPositionOutOfLayer, got %v", err)
	}
}

func TestSetCharUnknownLayerFails(t *testing.T) {
	e := newTestState()
	err := e.SetChar(5, buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'X'})
	if !errors.Is(err, errs.ErrLayerIndexOutOfRange) {
		t.Fatalf("expected ErrLayerIndexOutOfRange, got %v", err)
	}
}

func TestUndoRestoresPriorChar(t *testing.T) {
	e := newTestState()
	before := e.Buf.GetChar(buffer.Position{X: 2, Y: 2})

	if err := e.SetChar(0, buffer.Position{X: 2, Y: 2}, attr.AttributedChar{Ch: 'Z', Attr: attr.New(1, 0)}); err != nil {
		t.Fatalf("SetChar: %v", err)
	}
	if got := e.Buf.GetChar(buffer.Position{X: 2, Y: 2}); got.Ch != 'Z' {
		t.Fatalf("expected 'Z' after set, got %q", got.Ch)
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	got := e.Buf.GetChar(buffer.Position{X: 2, Y: 2})
	if got.Ch != before.Ch {
		t.Fatalf("expected undo to restore %q, got %q", before.Ch, got.Ch)
	}
}

func TestRedoReappliesUndoneChange(t *testing.T) {
	e := newTestState()
	e.SetChar(0, buffer.Position{X: 1, Y: 1}, attr.AttributedChar{Ch: 'A'})
	e.Undo()
	if err := e.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := e.Buf.GetChar(buffer.Position{X: 1, Y: 1}); got.Ch != 'A' {
		t.Fatalf("expected redo to restore 'A', got %q", got.Ch)
	}
}

func TestPlainWriteClearsRedoStack(t *testing.T) {
	e := newTestState()
	e.SetChar(0, buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'A'})
	e.Undo()
	if !e.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}
	e.SetChar(0, buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'B'})
	if e.CanRedo() {
		t.Fatalf("expected a plain write to clear the redo stack")
	}
}

func TestUndoWithNothingToUndoFails(t *testing.T) {
	e := newTestState()
	if err := e.Undo(); !errors.Is(err, errs.ErrNoUndo) {
		t.Fatalf("expected ErrNoUndo, got %v", err)
	}
}

func TestAtomicGroupCoalescesIntoOneUndoRecord(t *testing.T) {
	e := newTestState()
	guard := e.BeginAtomicUndo("two cells")
	e.SetChar(0, buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'A'})
	e.SetChar(0, buffer.Position{X: 1, Y: 0}, attr.AttributedChar{Ch: 'B'})
	guard.Commit()

	if len(e.undoStack) != 1 {
		t.Fatalf("expected exactly 1 undo record, got %d", len(e.undoStack))
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if c := e.Buf.GetChar(buffer.Position{X: 0, Y: 0}); !c.IsInvisible() {
		t.Fatalf("expected cell (0,0) reverted, got %q", c.Ch)
	}
	if c := e.Buf.GetChar(buffer.Position{X: 1, Y: 0}); !c.IsInvisible() {
		t.Fatalf("expected cell (1,0) reverted, got %q", c.Ch)
	}
}

func TestAtomicGroupRollsBackOnError(t *testing.T) {
	e := newTestState()
	guard := e.BeginAtomicUndo("one good, one bad")
	e.SetChar(0, buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'A'})
	err := e.SetChar(7, buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'B'})
	if !errors.Is(err, errs.ErrLayerIndexOutOfRange) {
		t.Fatalf("expected ErrLayerIndexOutOfRange, got %v", err)
	}
	guard.Commit()

	if len(e.undoStack) != 0 {
		t.Fatalf("expected the failed group to leave no undo record, got %d", len(e.undoStack))
	}
	if c := e.Buf.GetChar(buffer.Position{X: 0, Y: 0}); !c.IsInvisible() {
		t.Fatalf("expected group rollback to discard the first mutation, got %q", c.Ch)
	}
}

func TestFlipXReversesRow(t *testing.T) {
	e := newTestState()
	e.Buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'A'})
	e.Buf.Layers[0].SetChar(buffer.Position{X: 1, Y: 0}, attr.AttributedChar{Ch: 'B'})
	e.SetSelection(Selection{Anchor: buffer.Position{X: 0, Y: 0}, Lead: buffer.Position{X: 1, Y: 0}})

	if err := e.FlipX(); err != nil {
		t.Fatalf("FlipX: %v", err)
	}
	if got := e.Buf.GetChar(buffer.Position{X: 0, Y: 0}); got.Ch != 'B' {
		t.Fatalf("expected 'B' at (0,0) after flip, got %q", got.Ch)
	}
	if got := e.Buf.GetChar(buffer.Position{X: 1, Y: 0}); got.Ch != 'A' {
		t.Fatalf("expected 'A' at (1,0) after flip, got %q", got.Ch)
	}
}

func TestRemoveLayerRefusesLastLayer(t *testing.T) {
	e := newTestState()
	if err := e.RemoveLayer(0); !errors.Is(err, errs.ErrLayerIndexOutOfRange) {
		t.Fatalf("expected ErrLayerIndexOutOfRange removing the only layer, got %v", err)
	}
}

func TestDuplicateLayerInsertsAboveSource(t *testing.T) {
	e := newTestState()
	if err := e.DuplicateLayer(0); err != nil {
		t.Fatalf("DuplicateLayer: %v", err)
	}
	if len(e.Buf.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(e.Buf.Layers))
	}
	if e.CurrentLayer != 1 {
		t.Fatalf("expected duplicate to become current layer, got %d", e.CurrentLayer)
	}
}

func TestMergeDownCopiesVisibleCellsOnly(t *testing.T) {
	e := newTestState()
	e.AddLayer("top", buffer.Size{Width: 10, Height: 5})
	top := e.Buf.Layers[1]
	top.SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'T'})
	e.Buf.Layers[0].SetChar(buffer.Position{X: 1, Y: 0}, attr.AttributedChar{Ch: 'B'})

	if err := e.MergeDown(1); err != nil {
		t.Fatalf("MergeDown: %v", err)
	}
	if len(e.Buf.Layers) != 1 {
		t.Fatalf("expected 1 layer after merge, got %d", len(e.Buf.Layers))
	}
	if got := e.Buf.GetChar(buffer.Position{X: 0, Y: 0}); got.Ch != 'T' {
		t.Fatalf("expected merged cell 'T' at (0,0), got %q", got.Ch)
	}
	if got := e.Buf.GetChar(buffer.Position{X: 1, Y: 0}); got.Ch != 'B' {
		t.Fatalf("expected untouched cell 'B' at (1,0), got %q", got.Ch)
	}
}

func TestFloatingLayerAnchorMerges(t *testing.T) {
	e := newTestState()
	content := buffer.NewLayer("paste", buffer.Size{Width: 2, Height: 1})
	content.SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'P'})

	if err := e.StartFloatingLayer(buffer.Position{X: 3, Y: 3}, content); err != nil {
		t.Fatalf("StartFloatingLayer: %v", err)
	}
	if err := e.AnchorFloatingLayer(); err != nil {
		t.Fatalf("AnchorFloatingLayer: %v", err)
	}
	if e.FloatingLayer != nil {
		t.Fatalf("expected floating layer cleared after anchor")
	}
	if got := e.Buf.GetChar(buffer.Position{X: 3, Y: 3}); got.Ch != 'P' {
		t.Fatalf("expected anchored cell 'P' at (3,3), got %q", got.Ch)
	}
}

func TestCancelFloatingLayerDiscardsContent(t *testing.T) {
	e := newTestState()
	content := buffer.NewLayer("paste", buffer.Size{Width: 1, Height: 1})
	e.StartFloatingLayer(buffer.Position{X: 0, Y: 0}, content)
	if err := e.CancelFloatingLayer(); err != nil {
		t.Fatalf("CancelFloatingLayer: %v", err)
	}
	if e.FloatingLayer != nil {
		t.Fatalf("expected floating layer discarded")
	}
}

func TestSwitchPaletteRemapsUsedColors(t *testing.T) {
	e := newTestState()
	e.Buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'X', Attr: attr.New(1, 0)})

	next := color.New(color.ModeFree16)
	black, _ := e.Buf.Palette.At(0)
	red, _ := e.Buf.Palette.At(1)
	next.InsertColor(black)
	next.InsertColor(red)

	if err := e.SwitchPalette(next); err != nil {
		t.Fatalf("SwitchPalette: %v", err)
	}
	got := e.Buf.GetChar(buffer.Position{X: 0, Y: 0})
	if got.Attr.Foreground != 1 {
		t.Fatalf("expected remapped foreground index 1, got %d", got.Attr.Foreground)
	}
}

func TestSwitchPaletteIncompatibleRollsBack(t *testing.T) {
	e := newTestState()
	e.Buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'X', Attr: attr.New(5, 0)})

	full := color.New(color.ModeFixed16)
	for i := 0; i < 16; i++ {
		full.InsertColor(color.RGB(uint8(i), uint8(i), uint8(i)))
	}
	before := e.Buf.Palette

	err := e.SwitchPalette(full)
	if !errors.Is(err, errs.ErrPaletteIncompatible) {
		t.Fatalf("expected ErrPaletteIncompatible, got %v", err)
	}
	if !e.Buf.Palette.Equal(before) {
		t.Fatalf("expected palette unchanged after a refused switch")
	}
}
