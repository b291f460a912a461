package parser

import (
	"testing"

	"github.com/stlalpha/icyengine/internal/buffer"
)

func TestPetsciiPrintsLetter(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 10, Height: 5}, nil)
	sink := NewDirectSink(buf)
	p := NewPetsciiParser()
	for _, b := range []byte("HI") {
		p.Parse(sink, b)
	}
	if c := buf.GetChar(buffer.Position{X: 0, Y: 0}); c.Ch != 'H' {
		t.Fatalf("expected 'H', got %q", c.Ch)
	}
}

func TestPetsciiClearScreenHomesCursor(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 10, Height: 5}, nil)
	sink := NewDirectSink(buf)
	p := NewPetsciiParser()
	p.Parse(sink, 'A')
	p.Parse(sink, 0x93)
	if buf.Caret.Position.X != 0 || buf.Caret.Position.Y != 0 {
		t.Fatalf("expected caret homed, got (%d,%d)", buf.Caret.Position.X, buf.Caret.Position.Y)
	}
}

func TestAtasciiHighBitMarksInverse(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 10, Height: 5}, nil)
	sink := NewDirectSink(buf)
	sink.Caret.Attribute.Foreground = 3
	sink.Caret.Attribute.Background = 0
	p := NewAtasciiParser()
	p.Parse(sink, 'A'|0x80)
	c := buf.GetChar(buffer.Position{X: 0, Y: 0})
	if c.Attr.Foreground != 0 || c.Attr.Background != 3 {
		t.Fatalf("expected inverse-video swap to put 3 in background, got fg=%d bg=%d", c.Attr.Foreground, c.Attr.Background)
	}
}

func TestViewdataColorCodeSetsForeground(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 10, Height: 5}, nil)
	sink := NewDirectSink(buf)
	p := NewViewdataParser()
	p.Parse(sink, vdAlphaRed)
	p.Parse(sink, 'X')
	c := buf.GetChar(buffer.Position{X: 0, Y: 0})
	if c.Attr.Foreground != 1 {
		t.Fatalf("expected foreground 1 (red), got %d", c.Attr.Foreground)
	}
}
