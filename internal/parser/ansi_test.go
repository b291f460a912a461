package parser

import (
	"testing"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
)

func feed(sink Sink, p *AnsiParser, s string) {
	for i := 0; i < len(s); i++ {
		p.Parse(sink, s[i])
	}
}

func TestPlainTextAdvancesCaret(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 10, Height: 5}, nil)
	sink := NewDirectSink(buf)
	p := NewAnsiParser()
	feed(sink, p, "Hi")

	if buf.Caret.Position.X != 2 {
		t.Fatalf("expected caret at column 2, got %d", buf.Caret.Position.X)
	}
	c := buf.GetChar(buffer.Position{X: 0, Y: 0})
	if c.Ch != 'H' {
		t.Fatalf("expected 'H' at (0,0), got %q", c.Ch)
	}
}

func TestCursorPositioningCSI(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 20, Height: 10}, nil)
	sink := NewDirectSink(buf)
	p := NewAnsiParser()
	feed(sink, p, "\x1b[5;10H")

	if buf.Caret.Position.X != 9 || buf.Caret.Position.Y != 4 {
		t.Fatalf("expected caret at (9,4), got (%d,%d)", buf.Caret.Position.X, buf.Caret.Position.Y)
	}
}

func TestSGRSetsForegroundAndBold(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 20, Height: 10}, nil)
	sink := NewDirectSink(buf)
	p := NewAnsiParser()
	feed(sink, p, "\x1b[1;31mX")

	c := buf.GetChar(buffer.Position{X: 0, Y: 0})
	if c.Attr.Foreground != 1 {
		t.Fatalf("expected foreground 1 (red), got %d", c.Attr.Foreground)
	}
	if !c.Attr.Has(attr.Bold) {
		t.Fatalf("expected bold bit set")
	}
}

func TestEraseInDisplayClearsFromCaret(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 5, Height: 1}, nil)
	sink := NewDirectSink(buf)
	p := NewAnsiParser()
	feed(sink, p, "ABCDE\x1b[3G\x1b[0J")

	if c := buf.GetChar(buffer.Position{X: 0, Y: 0}); c.Ch != 'A' {
		t.Fatalf("expected 'A' preserved before caret, got %q", c.Ch)
	}
	if c := buf.GetChar(buffer.Position{X: 2, Y: 0}); c.Ch != ' ' {
		t.Fatalf("expected blank at caret column, got %q", c.Ch)
	}
}

func TestScrollRegionConfinesLineFeedScroll(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 5, Height: 5}, nil)
	sink := NewDirectSink(buf)
	p := NewAnsiParser()
	// Bottom row (zero-based 4) sits outside the 2..4 (1-based) margin;
	// a scroll triggered by a line feed at the margin's bottom must not
	// touch it.
	feed(sink, p, "\x1b[5;1HZ\x1b[2;4r\x1b[4;1H\n")

	if c := buf.GetChar(buffer.Position{X: 0, Y: 4}); c.Ch != 'Z' {
		t.Fatalf("expected row 4 untouched by in-margin scroll, got %q", c.Ch)
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 10, Height: 10}, nil)
	sink := NewDirectSink(buf)
	p := NewAnsiParser()
	feed(sink, p, "\x1b[3;3H\x1b7\x1b[1;1H\x1b8")

	if buf.Caret.Position.X != 2 || buf.Caret.Position.Y != 2 {
		t.Fatalf("expected restored caret at (2,2), got (%d,%d)", buf.Caret.Position.X, buf.Caret.Position.Y)
	}
}

func TestDeviceStatusReportQueuesReply(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 10, Height: 10}, nil)
	sink := NewDirectSink(buf)
	p := NewAnsiParser()
	feed(sink, p, "\x1b[3;7H\x1b[6n")

	if len(sink.Replies) != 1 {
		t.Fatalf("expected one queued reply, got %d", len(sink.Replies))
	}
	want := "\x1b[3;7R"
	if sink.Replies[0] != want {
		t.Fatalf("expected %q, got %q", want, sink.Replies[0])
	}
}

func TestTabAdvancesToNextStop(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 40, Height: 1}, nil)
	sink := NewDirectSink(buf)
	p := NewAnsiParser()
	feed(sink, p, "\t")

	if buf.Caret.Position.X != 8 {
		t.Fatalf("expected caret at column 8 after tab, got %d", buf.Caret.Position.X)
	}
}

func TestUnknownEscapeReportsErrorAndResets(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 10, Height: 10}, nil)
	rec := &recordingErrorSink{DirectSink: NewDirectSink(buf)}
	p := NewAnsiParser()
	feed(rec, p, "\x1bZX")

	if rec.errCount != 1 {
		t.Fatalf("expected one reported error, got %d", rec.errCount)
	}
	if c := buf.GetChar(buffer.Position{X: 0, Y: 0}); c.Ch != 'X' {
		t.Fatalf("expected parser to resume printing after the bad escape, got %q", c.Ch)
	}
}

type recordingErrorSink struct {
	*DirectSink
	errCount int
}

func (r *recordingErrorSink) ReportError(err error) {
	r.errCount++
}
