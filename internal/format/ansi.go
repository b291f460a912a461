package format

import (
	"fmt"
	"strings"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/parser"
)

// ansiCodec loads/saves .ans: full CSI/SGR-bearing ANSI art. Load feeds
// the byte stream through parser.AnsiParser into a DirectSink over a
// freshly sized Buffer; Save walks the composed cells emitting minimal
// SGR runs, the same one-escape-per-attribute-change style as classic
// ANSI art rather than a run-length-compressed wire format. Rows are
// separated by CRLF; none follows the last row, so reloading into a
// buffer of the same height does not scroll.
type ansiCodec struct{}

func (ansiCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	rec, body, _ := buffer.ReadSauce(data)
	size := opts.DefaultSize
	if size.Width == 0 {
		size = buffer.Size{Width: 80, Height: 25}
	}
	buf := buffer.New(size, nil)
	buf.SauceData = rec

	p := parser.NewAnsiParser()
	sink := parser.NewDirectSink(buf)
	for _, b := range body {
		p.Parse(sink, b)
	}
	return buf, nil
}

func (ansiCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	var out strings.Builder
	var cur attr.TextAttribute
	haveCur := false
	for y := 0; y < buf.Size.Height; y++ {
		lineLen := buf.GetLineLength(y)
		for x := 0; x < lineLen; x++ {
			c := buf.GetChar(buffer.Position{X: x, Y: y})
			if !haveCur || c.Attr != cur {
				writeSGR(&out, cur, c.Attr, haveCur)
				cur = c.Attr
				haveCur = true
			}
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			out.Write(buffer.EncodeCP437([]rune{ch}))
		}
		if y < buf.Size.Height-1 {
			out.WriteString("\r\n")
		}
	}
	content := []byte(out.String())
	if opts.WriteSauce {
		content = buffer.WriteSauce(content, buf.SauceData, buf)
	}
	return content, nil
}

// writeSGR emits the SGR escape covering every attribute change between
// from and to; palette index 0-7 maps to the standard ANSI 30+/40+
// parameter, 8-15 additionally sets bold.
func writeSGR(out *strings.Builder, from, to attr.TextAttribute, haveFrom bool) {
	var params []string
	if !haveFrom {
		params = append(params, "0")
	}
	if to.Foreground < 16 {
		base := to.Foreground % 8
		params = append(params, fmt.Sprintf("%d", 30+base))
		if to.Foreground >= 8 {
			params = append(params, "1")
		}
	}
	if to.Background < 16 {
		params = append(params, fmt.Sprintf("%d", 40+to.Background%8))
	}
	if to.Has(attr.Bold) {
		params = append(params, "1")
	}
	if to.Has(attr.Underlined) {
		params = append(params, "4")
	}
	if to.Has(attr.Blinking) {
		params = append(params, "5")
	}
	if len(params) == 0 {
		return
	}
	out.WriteString("\x1b[")
	out.WriteString(strings.Join(params, ";"))
	out.WriteByte('m')
}
