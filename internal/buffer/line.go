// Package buffer implements the attributed-character grid: Line, Layer,
// Buffer composition, TerminalState, Caret, Tag, and the SAUCE trailer
// codec.
package buffer

import "github.com/stlalpha/icyengine/internal/attr"

// Line is a dynamically-grown sequence of attributed characters. Lines may
// be shorter than the buffer width; cells past the end are treated as
// invisible.
type Line struct {
	Chars []attr.AttributedChar
}

// NewLine creates an empty line.
func NewLine() *Line { return &Line{} }

// Len returns the number of cells actually stored (not the buffer width).
func (l *Line) Len() int { return len(l.Chars) }

// CharAt returns the cell at x, or Invisible() if x is past the stored
// length.
func (l *Line) CharAt(x int) attr.AttributedChar {
	if x < 0 || x >= len(l.Chars) {
		return attr.Invisible()
	}
	return l.Chars[x]
}

// SetChar grows the line if necessary and stores ch at x.
func (l *Line) SetChar(x int, ch attr.AttributedChar) {
	if x < 0 {
		return
	}
	if x >= len(l.Chars) {
		grown := make([]attr.AttributedChar, x+1)
		copy(grown, l.Chars)
		for i := len(l.Chars); i < x; i++ {
			grown[i] = attr.Invisible()
		}
		l.Chars = grown
	}
	l.Chars[x] = ch
}

// SetCharUnchecked stores ch at x with no bounds check; the caller must
// have already grown the line (see Layer.PreallocateLines).
func (l *Line) SetCharUnchecked(x int, ch attr.AttributedChar) {
	l.Chars[x] = ch
}

// TrimToWidth truncates or pads the line to exactly w cells, padding with
// Invisible().
func (l *Line) TrimToWidth(w int) {
	if len(l.Chars) == w {
		return
	}
	if len(l.Chars) > w {
		l.Chars = l.Chars[:w]
		return
	}
	grown := make([]attr.AttributedChar, w)
	copy(grown, l.Chars)
	for i := len(l.Chars); i < w; i++ {
		grown[i] = attr.Invisible()
	}
	l.Chars = grown
}

// LineLength returns the index one past the last non-transparent,
// non-invisible cell in the line.
func (l *Line) LineLength() int {
	for i := len(l.Chars) - 1; i >= 0; i-- {
		c := l.Chars[i]
		if !c.IsInvisible() {
			return i + 1
		}
	}
	return 0
}

// Clone returns a deep copy of the line.
func (l *Line) Clone() *Line {
	cp := make([]attr.AttributedChar, len(l.Chars))
	copy(cp, l.Chars)
	return &Line{Chars: cp}
}
