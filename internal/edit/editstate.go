// Package edit implements EditState, the undo-tracked mutation layer a
// drawing tool or API handler drives against a buffer.Buffer. EditState
// never takes its own lock: the host serializes access the same way the
// terminal orchestrator's QueueingSink does, by holding one mutex around
// both reads and EditState calls.
package edit

import (
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/color"
	"github.com/stlalpha/icyengine/internal/errs"
)

// FormatMode constrains which operations are legal for the buffer's target
// file format.
type FormatMode int

const (
	FormatUnrestricted FormatMode = iota
	FormatSauce
	FormatXBinExtended
)

// snapshot captures everything an undo entry needs to restore: the layer
// list, the pieces of editor state layered on top of it, and the palette.
// Cloning the whole layer list is simpler than hand-writing a reversible
// delta per operation, and every operation (cell edit, layer reorder,
// palette switch) shares the same undo/redo machinery as a result.
type snapshot struct {
	layers        []*buffer.Layer
	overlayIndex  int
	overlayLayer  *buffer.Layer
	currentLayer  int
	selection     *Selection
	floatingLayer *buffer.Layer
	floatingAt    buffer.Position
	palette       *color.Palette
}

func cloneLayers(layers []*buffer.Layer) []*buffer.Layer {
	out := make([]*buffer.Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone()
	}
	return out
}

func clonePalette(p *color.Palette) *color.Palette {
	if p == nil {
		return nil
	}
	cp := color.New(p.Mode())
	for _, c := range p.All() {
		cp.InsertColor(c)
	}
	return cp
}

func cloneSelection(s *Selection) *Selection {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// undoEntry is one reversible record: applying it means restoring `before`;
// applying its inverse (redo) means restoring `after`.
type undoEntry struct {
	description string
	before      snapshot
	after       snapshot
}

// atomicGroup tracks an in-progress begin_atomic_undo bracket.
type atomicGroup struct {
	description string
	start       snapshot
}

// EditState wraps a Buffer with undo/redo, selection, the active layer, an
// optional floating layer, and SAUCE/format metadata.
type EditState struct {
	Buf *buffer.Buffer

	CurrentLayer int
	Selection    *Selection

	FloatingLayer *buffer.Layer
	floatingAt    buffer.Position

	SauceMeta  buffer.SauceData
	FormatMode FormatMode

	undoStack []undoEntry
	redoStack []undoEntry

	atomic *atomicGroup
}

// New wraps buf, starting with layer 0 active and no selection.
func New(buf *buffer.Buffer) *EditState {
	return &EditState{
		Buf:        buf,
		SauceMeta:  buf.SauceData,
		FormatMode: FormatUnrestricted,
	}
}

func (e *EditState) snapshot() snapshot {
	return snapshot{
		layers:        cloneLayers(e.Buf.Layers),
		overlayIndex:  e.Buf.OverlayIndex,
		overlayLayer:  cloneLayer(e.Buf.OverlayLayer),
		currentLayer:  e.CurrentLayer,
		selection:     cloneSelection(e.Selection),
		floatingLayer: cloneLayer(e.FloatingLayer),
		floatingAt:    e.floatingAt,
		palette:       clonePalette(e.Buf.Palette),
	}
}

func cloneLayer(l *buffer.Layer) *buffer.Layer {
	if l == nil {
		return nil
	}
	return l.Clone()
}

func (e *EditState) restore(s snapshot) {
	e.Buf.Layers = cloneLayers(s.layers)
	e.Buf.OverlayIndex = s.overlayIndex
	e.Buf.OverlayLayer = cloneLayer(s.overlayLayer)
	e.CurrentLayer = s.currentLayer
	e.Selection = cloneSelection(s.selection)
	e.FloatingLayer = cloneLayer(s.floatingLayer)
	e.floatingAt = s.floatingAt
	e.Buf.Palette = clonePalette(s.palette)
}

// do runs mutate, snapshotting before/after and pushing one undo entry
// (clearing redo), unless an atomic group is open, in which case the
// entry coalesces into the group committed by the guard. On error, the
// state rolls back: to the op's own before-snapshot outside a group, or to
// the group's start snapshot inside one (surfacing the error either way).
func (e *EditState) do(description string, mutate func() error) error {
	before := e.snapshot()
	if err := mutate(); err != nil {
		if e.atomic != nil {
			e.restore(e.atomic.start)
			e.atomic = nil
		} else {
			e.restore(before)
		}
		return err
	}
	if e.atomic != nil {
		return nil
	}
	e.undoStack = append(e.undoStack, undoEntry{
		description: description,
		before:      before,
		after:       e.snapshot(),
	})
	e.redoStack = nil
	return nil
}

// AtomicGuard is returned by BeginAtomicUndo; the caller must call Commit
// or Rollback exactly once.
type AtomicGuard struct {
	state       *EditState
	description string
	resolved    bool
}

// BeginAtomicUndo opens a group: every do() between this call and the
// guard's Commit coalesces into a single undo record with description.
func (e *EditState) BeginAtomicUndo(description string) *AtomicGuard {
	e.atomic = &atomicGroup{description: description, start: e.snapshot()}
	return &AtomicGuard{state: e, description: description}
}

// Commit closes the group, pushing one undo entry spanning everything
// since BeginAtomicUndo. A no-op if the group already rolled back.
func (g *AtomicGuard) Commit() {
	if g.resolved {
		return
	}
	g.resolved = true
	e := g.state
	if e.atomic == nil {
		return
	}
	start := e.atomic.start
	e.undoStack = append(e.undoStack, undoEntry{
		description: g.description,
		before:      start,
		after:       e.snapshot(),
	})
	e.redoStack = nil
	e.atomic = nil
}

// Rollback discards every mutation since BeginAtomicUndo, restoring the
// pre-begin snapshot. Safe to call after an error from inside the group;
// do() already rolls back automatically, so Rollback mainly exists for a
// caller that decides to abandon the group without a failing op.
func (g *AtomicGuard) Rollback() {
	if g.resolved {
		return
	}
	g.resolved = true
	e := g.state
	if e.atomic == nil {
		return
	}
	e.restore(e.atomic.start)
	e.atomic = nil
}

// CanUndo reports whether Undo would succeed.
func (e *EditState) CanUndo() bool { return len(e.undoStack) > 0 }

// CanRedo reports whether Redo would succeed.
func (e *EditState) CanRedo() bool { return len(e.redoStack) > 0 }

// Undo pops the top undo entry, restores its before-snapshot, and pushes
// it to the redo stack.
func (e *EditState) Undo() error {
	if !e.CanUndo() {
		return errs.ErrNoUndo
	}
	n := len(e.undoStack) - 1
	entry := e.undoStack[n]
	e.undoStack = e.undoStack[:n]
	e.restore(entry.before)
	e.redoStack = append(e.redoStack, entry)
	return nil
}

// Redo pops the top redo entry, restores its after-snapshot, and pushes it
// back to the undo stack.
func (e *EditState) Redo() error {
	if !e.CanRedo() {
		return errs.ErrNoRedo
	}
	n := len(e.redoStack) - 1
	entry := e.redoStack[n]
	e.redoStack = e.redoStack[:n]
	e.restore(entry.after)
	e.undoStack = append(e.undoStack, entry)
	return nil
}
