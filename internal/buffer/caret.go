package buffer

import "github.com/stlalpha/icyengine/internal/attr"

// CaretShape selects the cursor glyph a renderer draws.
type CaretShape int

const (
	CaretBlock CaretShape = iota
	CaretUnderline
	CaretBar
)

// Caret carries both the cursor's position and the attribute future writes
// will receive. It is created once with the TerminalState and mutated by
// parsers and the editor; it is never destroyed.
type Caret struct {
	Position   Position
	Attribute  attr.TextAttribute
	Visible    bool
	Blinking   bool
	Shape      CaretShape
	InsertMode bool
	FontPage   uint
}

// NewCaret returns a visible, blinking, block-shaped caret at the origin.
func NewCaret() *Caret {
	return &Caret{Visible: true, Blinking: true, Shape: CaretBlock}
}

// savedCaretState is the DECSC/DECRC payload: caret plus the two terminal
// modes the VT500 family saves alongside it.
type savedCaretState struct {
	caret        Caret
	originMode   OriginMode
	autoWrapMode AutoWrapMode
	valid        bool
}
