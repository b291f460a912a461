// Package attr implements the per-cell attribute record (foreground,
// background, font page, and style bits) and the attributed character that
// pairs a glyph with one.
package attr

// Bit flags for TextAttribute's style bitfield.
const (
	Bold uint16 = 1 << iota
	Blinking
	Underlined
	DoubleUnderlined
	CrossedOut
	Concealed
	DoubleHeight
	Overlined
	InvisibleBit
)

// TextAttribute is a packed record: foreground/background palette indices,
// a font page, and a bitfield of style flags. Equality is structural.
type TextAttribute struct {
	Foreground uint32
	Background uint32
	FontPage   uint
	bits       uint16
}

// New returns a TextAttribute with the given fg/bg and no style bits set.
func New(fg, bg uint32) TextAttribute {
	return TextAttribute{Foreground: fg, Background: bg}
}

// Set sets the given bits, leaving all others untouched.
func (a *TextAttribute) Set(bits uint16) { a.bits |= bits }

// Clear clears the given bits, leaving all others untouched.
func (a *TextAttribute) Clear(bits uint16) { a.bits &^= bits }

// Has reports whether all of the given bits are set.
func (a TextAttribute) Has(bits uint16) bool { return a.bits&bits == bits }

// Bits returns the raw bitfield.
func (a TextAttribute) Bits() uint16 { return a.bits }

// WithBits returns a copy of a with its bitfield replaced.
func (a TextAttribute) WithBits(bits uint16) TextAttribute {
	a.bits = bits
	return a
}

// AttributedChar is one screen cell: a scalar code point plus the
// attribute it carries.
type AttributedChar struct {
	Ch   rune
	Attr TextAttribute
}

// Invisible returns the special "no change" cell: a zero glyph carrying the
// invisible flag. Composing it onto anything in Normal layer mode is a
// no-op.
func Invisible() AttributedChar {
	var a TextAttribute
	a.Set(InvisibleBit)
	return AttributedChar{Ch: 0, Attr: a}
}

// IsInvisible reports whether c is the invisible sentinel cell.
func (c AttributedChar) IsInvisible() bool {
	return c.Ch == 0 && c.Attr.Has(InvisibleBit)
}
