package format

import (
	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/parser"
)

// tundraCodec loads/saves .tnd: Tundra Draw's ANSI-compatible dialect.
// Tundra's own extended 24-bit color escapes are a superset this codec
// does not special-case; falling back to the plain ANSI/SGR reader still
// recovers every cell Tundra wrote through standard SGR, which is the
// common case for content distributed as .tnd.
type tundraCodec struct{ ansiCodec }

// avatarCodec loads/saves .avt: PCBoard's AVATAR control-code dialect.
// 0x16 introduces a command byte; this codec implements the two
// subcommands actually used by art (as opposed to AVATAR's full terminal
// command set, which also covers cursor addressing PCBoard itself rarely
// emits in distributed .avt files):
//   0x16 0x01 <attr> <char> <count> - repeat char count times with attr
//   0x16 0x02                       - clear screen, home cursor
// 0x0C alone also clears the screen; any other byte prints at the
// current attribute.
type avatarCodec struct{}

const (
	avatarEscape      = 0x16
	avatarRepeat      = 0x01
	avatarClearScreen = 0x02
)

func (avatarCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	rec, body, _ := buffer.ReadSauce(data)
	size := opts.DefaultSize
	if size.Width == 0 {
		size = buffer.Size{Width: 80, Height: 25}
	}
	buf := buffer.New(size, nil)
	buf.SauceData = rec

	cur := attr.New(7, 0)
	x, y := 0, 0
	put := func(ch rune) {
		if x >= buf.Size.Width {
			x = 0
			y++
		}
		if y >= buf.Size.Height {
			return
		}
		buf.Layers[0].SetChar(buffer.Position{X: x, Y: y}, attr.AttributedChar{Ch: ch, Attr: cur})
		x++
	}
	i := 0
	for i < len(body) {
		b := body[i]
		switch {
		case b == avatarEscape && i+1 < len(body) && body[i+1] == avatarRepeat && i+4 < len(body):
			attrByte := body[i+2]
			ch := body[i+3]
			count := int(body[i+4])
			cur = binAttribute(attrByte)
			for n := 0; n < count; n++ {
				put(rune(buffer.DecodeCP437([]byte{ch})[0]))
			}
			i += 5
		case b == avatarEscape && i+1 < len(body) && body[i+1] == avatarClearScreen:
			buf.Layers[0] = buffer.NewLayer(buf.Layers[0].Title, buf.Size)
			x, y = 0, 0
			i += 2
		case b == 0x0C:
			buf.Layers[0] = buffer.NewLayer(buf.Layers[0].Title, buf.Size)
			x, y = 0, 0
			i++
		case b == '\r':
			x = 0
			i++
		case b == '\n':
			x = 0
			y++
			i++
		default:
			put(buffer.DecodeCP437([]byte{b})[0])
			i++
		}
	}
	return buf, nil
}

func (avatarCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	var out []byte
	cur := attr.New(7, 0)
	for y := 0; y < buf.Size.Height; y++ {
		lineLen := buf.GetLineLength(y)
		for x := 0; x < lineLen; x++ {
			c := buf.GetChar(buffer.Position{X: x, Y: y})
			if c.Attr != cur {
				out = append(out, avatarEscape, avatarRepeat, binAttributeByte(c.Attr), buffer.EncodeCP437([]rune{c.Ch})[0], 1)
				cur = c.Attr
				continue
			}
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			out = append(out, buffer.EncodeCP437([]rune{ch})[0])
		}
		out = append(out, '\r', '\n')
	}
	if opts.WriteSauce {
		out = buffer.WriteSauce(out, buf.SauceData, buf)
	}
	return out, nil
}

// pcboardCodec loads/saves .pcb: PCBoard's `@X` color-code dialect. `@X`
// followed by two hex digits sets background (first digit) and foreground
// (second digit); `@CLS@` clears the screen; any other `@...@` token is
// skipped over unrecognized (PCBoard's many display/macro codes are out
// of scope beyond color and clear).
type pcboardCodec struct{}

func (pcboardCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	rec, body, _ := buffer.ReadSauce(data)
	size := opts.DefaultSize
	if size.Width == 0 {
		size = buffer.Size{Width: 80, Height: 25}
	}
	buf := buffer.New(size, nil)
	buf.SauceData = rec

	cur := attr.New(7, 0)
	x, y := 0, 0
	put := func(ch rune) {
		if x >= buf.Size.Width {
			x = 0
			y++
		}
		if y >= buf.Size.Height {
			return
		}
		buf.Layers[0].SetChar(buffer.Position{X: x, Y: y}, attr.AttributedChar{Ch: ch, Attr: cur})
		x++
	}

	i := 0
	for i < len(body) {
		b := body[i]
		switch {
		case b == '@' && i+3 < len(body) && body[i+1] == 'X' && isHex(body[i+2]) && isHex(body[i+3]):
			bg := hexVal(body[i+2])
			fg := hexVal(body[i+3])
			cur = attr.New(uint32(fg), uint32(bg))
			i += 4
		case b == '@' && matchToken(body[i:], "CLS@"):
			buf.Layers[0] = buffer.NewLayer(buf.Layers[0].Title, buf.Size)
			x, y = 0, 0
			i += len("CLS@") + 1
		case b == '@':
			if end := indexByte(body[i+1:], '@'); end >= 0 && end < 16 {
				i += end + 2 // skip an unrecognized @token@
			} else {
				put('@')
				i++
			}
		case b == '\r':
			x = 0
			i++
		case b == '\n':
			x = 0
			y++
			i++
		default:
			put(buffer.DecodeCP437([]byte{b})[0])
			i++
		}
	}
	return buf, nil
}

func (pcboardCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	var out []byte
	cur := attr.New(7, 0)
	for y := 0; y < buf.Size.Height; y++ {
		lineLen := buf.GetLineLength(y)
		for x := 0; x < lineLen; x++ {
			c := buf.GetChar(buffer.Position{X: x, Y: y})
			if c.Attr.Foreground != cur.Foreground || c.Attr.Background != cur.Background {
				out = append(out, '@', 'X')
				out = append(out, hexDigit(byte(c.Attr.Background)), hexDigit(byte(c.Attr.Foreground)))
				cur = c.Attr
			}
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			out = append(out, buffer.EncodeCP437([]rune{ch})[0])
		}
		out = append(out, '\r', '\n')
	}
	if opts.WriteSauce {
		out = buffer.WriteSauce(out, buf.SauceData, buf)
	}
	return out, nil
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	default:
		return b - 'a' + 10
	}
}

func hexDigit(v byte) byte {
	v &= 0x0F
	if v < 10 {
		return '0' + v
	}
	return 'A' + (v - 10)
}

func matchToken(b []byte, token string) bool {
	if len(b) < len(token)+1 {
		return false
	}
	return string(b[1:1+len(token)]) == token
}

func indexByte(b []byte, target byte) int {
	for i, c := range b {
		if c == target {
			return i
		}
	}
	return -1
}

// cbmSeqCodec loads/saves .seq: a raw Commodore PETSCII sequential file,
// reusing parser.PetsciiParser rather than re-implementing its control
// codes a second time.
type cbmSeqCodec struct{}

func (cbmSeqCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	size := opts.DefaultSize
	if size.Width == 0 {
		size = buffer.Size{Width: 40, Height: 25}
	}
	buf := buffer.New(size, nil)
	buf.BufferType = buffer.BufferPetscii

	p := parser.NewPetsciiParser()
	sink := parser.NewDirectSink(buf)
	for _, b := range data {
		p.Parse(sink, b)
	}
	return buf, nil
}

func (cbmSeqCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	var out []byte
	for y := 0; y < buf.Size.Height; y++ {
		lineLen := buf.GetLineLength(y)
		for x := 0; x < lineLen; x++ {
			c := buf.GetChar(buffer.Position{X: x, Y: y})
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			out = append(out, byte(ch))
		}
		out = append(out, '\r')
	}
	return out, nil
}
