package format

import (
	"bytes"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
)

// asciiCodec loads/saves plain CP437 text with no escape sequences: .asc
// art and FILE_ID.DIZ descriptions. CR, LF, and CRLF all start a new row;
// every other byte is a CP437 glyph at the current column.
type asciiCodec struct{}

func (asciiCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	rec, body, _ := buffer.ReadSauce(data)
	size := opts.DefaultSize
	if size.Width == 0 {
		size = buffer.Size{Width: 80, Height: 25}
	}

	lines := splitLines(body)
	if len(lines) > size.Height {
		size.Height = len(lines)
	}
	buf := buffer.New(size, nil)
	buf.SauceData = rec

	for y, line := range lines {
		runes := buffer.DecodeCP437(line)
		for x, r := range runes {
			buf.Layers[0].SetChar(buffer.Position{X: x, Y: y}, attr.AttributedChar{Ch: r, Attr: attr.New(7, 0)})
		}
	}
	return buf, nil
}

func (asciiCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	var out []byte
	for y := 0; y < buf.Size.Height; y++ {
		lineLen := buf.GetLineLength(y)
		for x := 0; x < lineLen; x++ {
			c := buf.GetChar(buffer.Position{X: x, Y: y})
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			out = append(out, buffer.EncodeCP437([]rune{ch})...)
		}
		out = append(out, '\r', '\n')
	}
	if opts.WriteSauce {
		out = buffer.WriteSauce(out, buf.SauceData, buf)
	}
	return out, nil
}

func splitLines(data []byte) [][]byte {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	raw := bytes.Split(data, []byte("\n"))
	if len(raw) > 0 && len(raw[len(raw)-1]) == 0 {
		raw = raw[:len(raw)-1]
	}
	return raw
}
