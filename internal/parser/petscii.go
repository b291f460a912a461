package parser

// PetsciiParser translates an unshifted Commodore PETSCII byte stream
// into cell writes, the same output shape AnsiParser produces but with a
// much smaller control repertoire: cursor motion, clear screen, and color
// switch codes, everything else a printable glyph.
type PetsciiParser struct {
	shifted bool
}

// NewPetsciiParser returns a parser in unshifted (uppercase/graphics) mode.
func NewPetsciiParser() *PetsciiParser { return &PetsciiParser{} }

// Parse feeds one PETSCII byte to sink.
func (p *PetsciiParser) Parse(sink Sink, b byte) {
	switch b {
	case 0x0d, 0x8d: // RETURN / shift-RETURN
		sink.Emit(Command{Kind: CmdMoveCursorColumn, Int1: 0})
		sink.Emit(Command{Kind: CmdIndex})
	case 0x93: // clear screen (CLR/HOME with shift)
		sink.Emit(Command{Kind: CmdEraseInDisplay, Int1: 2})
		sink.Emit(Command{Kind: CmdMoveCursorAbsolute, Int1: 0, Int2: 0})
	case 0x13: // HOME
		sink.Emit(Command{Kind: CmdMoveCursorAbsolute, Int1: 0, Int2: 0})
	case 0x11: // cursor down
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: 0, Int2: 1})
	case 0x91: // cursor up
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: 0, Int2: -1})
	case 0x1d: // cursor right
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: 1, Int2: 0})
	case 0x9d: // cursor left
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: -1, Int2: 0})
	case 0x0e: // switch to lower-case charset
		p.shifted = true
	case 0x8e: // switch to upper-case/graphics charset
		p.shifted = false
	case 0x05, 0x1c, 0x1e, 0x1f, 0x81, 0x90, 0x95, 0x96, 0x97, 0x98, 0x99, 0x9a, 0x9b, 0x9c, 0x9e, 0x9f:
		// Colour-switch control codes (white/red/green/blue/orange/...);
		// the indexed palette they select into is a fixed 16-entry VIC-II
		// table, out of scope without a dedicated Commodore palette.
	default:
		r := petsciiToRune(b, p.shifted)
		sink.Print([]rune{r}, false)
	}
}

// petsciiToRune maps one PETSCII code point to its closest Unicode glyph.
// The full 256-entry table (including the line-drawing block at 0x40-0x7f)
// is large; printable ASCII passes through unshifted, and letters swap
// case between the two charset banks the way a real 6502 screen does.
func petsciiToRune(b byte, shifted bool) rune {
	switch {
	case b >= 0x20 && b <= 0x40:
		return rune(b)
	case b >= 0x41 && b <= 0x5a:
		if shifted {
			return rune(b) // already upper-case glyphs in lower-case bank
		}
		return rune(b)
	case b >= 0x61 && b <= 0x7a:
		if shifted {
			return rune(b - 0x20) // lower-case bank prints as upper glyph
		}
		return rune(b)
	case b >= 0xc1 && b <= 0xda:
		return rune(b - 0x80) // shifted uppercase region mirrors 0x41-0x5a
	default:
		return '?'
	}
}
