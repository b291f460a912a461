package format

import (
	"encoding/binary"
	"fmt"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/color"
	"github.com/stlalpha/icyengine/internal/font"
)

const (
	xbinMagic     = "XBIN\x1a"
	xbinHeaderLen = 11

	flagPalette  = 1 << 0
	flagFont     = 1 << 1
	flagRLE      = 1 << 2
	flag512Chars = 1 << 3
	flagNonBlink = 1 << 4
	flag5Plane   = 1 << 5
)

// xbinCodec loads/saves .xb: an 11-byte header, optional 48-byte VGA
// palette, optional embedded font, and a char/attribute body that is
// either raw or RLE-compressed per the opcode scheme in the header flags.
type xbinCodec struct{}

func (xbinCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	if len(data) < xbinHeaderLen || string(data[:5]) != xbinMagic {
		return nil, fmt.Errorf("format: not an XBin file")
	}
	width := int(binary.LittleEndian.Uint16(data[5:7]))
	height := int(binary.LittleEndian.Uint16(data[7:9]))
	fontSize := int(data[9])
	flags := data[10]
	pos := xbinHeaderLen

	buf := buffer.New(buffer.Size{Width: width, Height: height}, nil)

	if flags&flagPalette != 0 {
		pal := color.New(color.ModeFixed16)
		for i := 0; i < 16; i++ {
			r, g, b := data[pos], data[pos+1], data[pos+2]
			pal.InsertColor(color.RGB(r*4, g*4, b*4))
			pos += 3
		}
		buf.Palette = pal
	}

	if flags&flagFont != 0 {
		glyphCount := 256
		if flags&flag512Chars != 0 {
			glyphCount = 512
		}
		f := font.New("XBin embedded", 8, fontSize)
		for ch := 0; ch < glyphCount; ch++ {
			rows := make([]byte, fontSize)
			copy(rows, data[pos:pos+fontSize])
			f.SetGlyph(rune(ch), rows)
			pos += fontSize
		}
		buf.FontTable[0] = f
	}

	if flags&flagNonBlink != 0 {
		buf.IceMode = buffer.IceIce
	}

	body := data[pos:]
	var cells []cellPair
	if flags&flagRLE != 0 {
		cells = decodeXBinRLE(body, width*height)
	} else {
		cells = decodeXBinRaw(body)
	}
	for i, cell := range cells {
		x := i % width
		y := i / width
		if y >= height {
			break
		}
		buf.Layers[0].SetChar(buffer.Position{X: x, Y: y}, attr.AttributedChar{
			Ch:   buffer.DecodeCP437([]byte{cell.ch})[0],
			Attr: binAttribute(cell.attr),
		})
	}
	return buf, nil
}

type cellPair struct{ ch, attr byte }

func decodeXBinRaw(body []byte) []cellPair {
	n := len(body) / 2
	out := make([]cellPair, n)
	for i := 0; i < n; i++ {
		out[i] = cellPair{ch: body[i*2], attr: body[i*2+1]}
	}
	return out
}

func decodeXBinRLE(body []byte, want int) []cellPair {
	out := make([]cellPair, 0, want)
	i := 0
	for i < len(body) && len(out) < want {
		op := body[i]
		i++
		mode := op >> 6
		count := int(op&0x3F) + 1
		switch mode {
		case 0: // literal run
			for n := 0; n < count && i+1 < len(body); n++ {
				out = append(out, cellPair{ch: body[i], attr: body[i+1]})
				i += 2
			}
		case 1: // char repeats, attribute varies
			if i >= len(body) {
				break
			}
			ch := body[i]
			i++
			for n := 0; n < count && i < len(body); n++ {
				out = append(out, cellPair{ch: ch, attr: body[i]})
				i++
			}
		case 2: // attribute repeats, char varies
			if i >= len(body) {
				break
			}
			a := body[i]
			i++
			for n := 0; n < count && i < len(body); n++ {
				out = append(out, cellPair{ch: body[i], attr: a})
				i++
			}
		case 3: // both repeat
			if i+1 >= len(body) {
				break
			}
			ch, a := body[i], body[i+1]
			i += 2
			for n := 0; n < count; n++ {
				out = append(out, cellPair{ch: ch, attr: a})
			}
		}
	}
	return out
}

func (xbinCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	out := make([]byte, xbinHeaderLen)
	copy(out[:5], xbinMagic)
	binary.LittleEndian.PutUint16(out[5:7], uint16(buf.Size.Width))
	binary.LittleEndian.PutUint16(out[7:9], uint16(buf.Size.Height))
	fontSize := 16
	if f, ok := buf.FontTable[0]; ok {
		fontSize = f.Height
	}
	out[9] = byte(fontSize)

	var flags byte
	havePalette := buf.Palette != nil && buf.Palette.Len() >= 16
	if havePalette {
		flags |= flagPalette
	}
	_, haveFont := buf.FontTable[0]
	if haveFont {
		flags |= flagFont
	}
	if buf.IceMode == buffer.IceIce {
		flags |= flagNonBlink
	}
	out[10] = flags

	if havePalette {
		for i := 0; i < 16; i++ {
			c, _ := buf.Palette.At(i)
			r, g, b := c.Resolve(buf.Palette)
			out = append(out, r/4, g/4, b/4)
		}
	}
	if haveFont {
		f := buf.FontTable[0]
		for ch := 0; ch < 256; ch++ {
			rows, ok := f.Glyph(rune(ch))
			if !ok {
				rows = make([]byte, f.Height)
			}
			out = append(out, rows...)
		}
	}

	for y := 0; y < buf.Size.Height; y++ {
		for x := 0; x < buf.Size.Width; x++ {
			c := buf.GetChar(buffer.Position{X: x, Y: y})
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			out = append(out, buffer.EncodeCP437([]rune{ch})[0], binAttributeByte(c.Attr))
		}
	}
	return out, nil
}
