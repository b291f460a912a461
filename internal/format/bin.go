package format

import (
	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
)

const defaultBinWidth = 160

// binCodec loads/saves .bin: a flat sequence of (char, attribute) byte
// pairs with no escape sequences, wrapped at a fixed width (SAUCE TInfo1
// when present, else LoadOptions.DefaultSize.Width when set, else 160
// columns). The attribute byte packs foreground in
// the low nibble, background in bits 4-6, and the high-intensity/blink bit
// in bit 7.
type binCodec struct{}

func (binCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	rec, body, hasSauce := buffer.ReadSauce(data)
	width := defaultBinWidth
	if hasSauce && rec.TInfo1 > 0 {
		width = int(rec.TInfo1)
	} else if opts.DefaultSize.Width > 0 {
		width = opts.DefaultSize.Width
	}
	pairs := len(body) / 2
	height := (pairs + width - 1) / width
	if height == 0 {
		height = 1
	}
	buf := buffer.New(buffer.Size{Width: width, Height: height}, nil)
	buf.SauceData = rec

	for i := 0; i < pairs; i++ {
		ch := body[i*2]
		a := body[i*2+1]
		x := i % width
		y := i / width
		buf.Layers[0].SetChar(buffer.Position{X: x, Y: y}, attr.AttributedChar{
			Ch:   buffer.DecodeCP437([]byte{ch})[0],
			Attr: binAttribute(a),
		})
	}
	return buf, nil
}

func (binCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	var out []byte
	for y := 0; y < buf.Size.Height; y++ {
		for x := 0; x < buf.Size.Width; x++ {
			c := buf.GetChar(buffer.Position{X: x, Y: y})
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			out = append(out, buffer.EncodeCP437([]rune{ch})[0])
			out = append(out, binAttributeByte(c.Attr))
		}
	}
	if opts.WriteSauce {
		rec := buf.SauceData
		rec.DataType = buffer.SauceDataTypeBinary
		rec.TInfo1 = uint16(buf.Size.Width)
		out = buffer.WriteSauce(out, rec, buf)
	}
	return out, nil
}

func binAttribute(b byte) attr.TextAttribute {
	fg := uint32(b & 0x0F)
	bg := uint32((b >> 4) & 0x07)
	a := attr.New(fg, bg)
	if b&0x80 != 0 {
		a.Set(attr.Blinking)
	}
	return a
}

func binAttributeByte(a attr.TextAttribute) byte {
	b := byte(a.Foreground&0x0F) | byte((a.Background&0x07)<<4)
	if a.Has(attr.Blinking) {
		b |= 0x80
	}
	return b
}
