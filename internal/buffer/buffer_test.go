package buffer

import (
	"testing"

	"github.com/stlalpha/icyengine/internal/attr"
)

func TestGetCharOutOfRangeReturnsInvisible(t *testing.T) {
	b := New(Size{Width: 10, Height: 5}, nil)
	c := b.GetChar(Position{X: 100, Y: 100})
	if !c.IsInvisible() {
		t.Fatalf("expected invisible cell for out-of-range position")
	}
}

func TestGetCharReflectsSetChar(t *testing.T) {
	b := New(Size{Width: 10, Height: 5}, nil)
	a := attr.New(1, 0)
	b.Layers[0].SetChar(Position{X: 2, Y: 3}, attr.AttributedChar{Ch: 'X', Attr: a})

	got := b.GetChar(Position{X: 2, Y: 3})
	if got.Ch != 'X' || got.Attr.Foreground != 1 {
		t.Fatalf("expected ('X', fg=1), got (%q, fg=%d)", got.Ch, got.Attr.Foreground)
	}
}

func TestClearScreenBlanksEveryCell(t *testing.T) {
	b := New(Size{Width: 4, Height: 4}, nil)
	for x := 0; x < 4; x++ {
		b.Layers[0].SetChar(Position{X: x, Y: 0}, attr.AttributedChar{Ch: 'X', Attr: attr.New(1, 0)})
	}
	b.ClearScreen()
	for x := 0; x < 4; x++ {
		c := b.GetChar(Position{X: x, Y: 0})
		if !c.IsInvisible() {
			t.Fatalf("expected cell (%d,0) invisible after clear, got %q", x, c.Ch)
		}
	}
}

func TestLayerTransparencyDefersToLayerBeneath(t *testing.T) {
	b := New(Size{Width: 4, Height: 4}, nil)
	b.Layers[0].SetChar(Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'B', Attr: attr.New(2, 3)})

	top := NewLayer("top", Size{Width: 4, Height: 4})
	top.Properties.HasAlphaChannel = true
	topAttr := attr.New(TransparentIndex, TransparentIndex)
	top.SetChar(Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'T', Attr: topAttr})
	b.Layers = append(b.Layers, top)

	got := b.GetChar(Position{X: 0, Y: 0})
	if got.Ch != 'T' {
		t.Fatalf("expected top layer's glyph to win, got %q", got.Ch)
	}
	if got.Attr.Foreground != 2 || got.Attr.Background != 3 {
		t.Fatalf("expected transparent colors to defer to layer beneath, got fg=%d bg=%d", got.Attr.Foreground, got.Attr.Background)
	}
}

func TestLayerWithoutAlphaForcesOpaque(t *testing.T) {
	b := New(Size{Width: 4, Height: 4}, nil)
	b.Layers[0].SetChar(Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'B', Attr: attr.New(9, 9)})

	top := NewLayer("top", Size{Width: 4, Height: 4})
	top.Properties.HasAlphaChannel = false
	top.SetChar(Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'T', Attr: attr.New(TransparentIndex, TransparentIndex)})
	b.Layers = append(b.Layers, top)

	got := b.GetChar(Position{X: 0, Y: 0})
	if got.Attr.Foreground != 0 || got.Attr.Background != 0 {
		t.Fatalf("expected opaque layer to force index 0, got fg=%d bg=%d", got.Attr.Foreground, got.Attr.Background)
	}
}

func TestGetLineLengthMatchesLastNonTransparentCell(t *testing.T) {
	b := New(Size{Width: 10, Height: 1}, nil)
	b.Layers[0].SetChar(Position{X: 4, Y: 0}, attr.AttributedChar{Ch: 'X', Attr: attr.New(1, 0)})
	if got := b.GetLineLength(0); got != 5 {
		t.Fatalf("expected line length 5, got %d", got)
	}
}

func TestScrollbackRespectsMaxLines(t *testing.T) {
	b := New(Size{Width: 10, Height: 5}, nil)
	b.SetMaxScrollbackLines(2)
	for i := 0; i < 5; i++ {
		b.PushScrollback(NewLine())
	}
	if len(b.Scrollback()) != 2 {
		t.Fatalf("expected scrollback capped at 2 lines, got %d", len(b.Scrollback()))
	}
}

func TestScrollbackUnlimitedWhenZero(t *testing.T) {
	b := New(Size{Width: 10, Height: 5}, nil)
	for i := 0; i < 10; i++ {
		b.PushScrollback(NewLine())
	}
	if len(b.Scrollback()) != 10 {
		t.Fatalf("expected unlimited scrollback, got %d lines", len(b.Scrollback()))
	}
}

func TestEmptyByteStreamIsANoOp(t *testing.T) {
	b := New(Size{Width: 10, Height: 5}, nil)
	before := b.GetChar(Position{X: 0, Y: 0})
	// No parser applied: buffer is untouched by construction alone.
	after := b.GetChar(Position{X: 0, Y: 0})
	if before != after {
		t.Fatalf("expected idempotent read of an untouched buffer")
	}
}
