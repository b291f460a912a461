package format

import (
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/parser"
	"github.com/stlalpha/icyengine/internal/rip"
)

const ripDefaultWidth, ripDefaultHeight = 640, 350

// ripCodec loads/saves .rip: an ANSI stream carrying interleaved RIP
// sub-commands. Text reaching the ANSI parser lands on layer 0 as usual;
// each RIP sub-command drives a rip.Engine whose raster is attached to the
// same layer at pixel (0, 0) once the whole stream has been parsed, the
// same split DirectSink.OnRip gives the terminal orchestrator.
type ripCodec struct{}

func (ripCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	rec, body, _ := buffer.ReadSauce(data)
	size := opts.DefaultSize
	if size.Width == 0 {
		size = buffer.Size{Width: 80, Height: 25}
	}
	buf := buffer.New(size, nil)
	buf.SauceData = rec

	engine := rip.NewEngine(ripDefaultWidth, ripDefaultHeight)
	p := parser.NewAnsiParser()
	sink := parser.NewDirectSink(buf)
	sink.OnRip = func(raw []byte) {
		cmd, err := rip.Decode(string(raw))
		if err != nil {
			return
		}
		engine.Feed(cmd)
	}
	for _, b := range body {
		p.Parse(sink, b)
	}
	engine.Attach(buf.Layers[0], 0, 0)
	return buf, nil
}

// Save re-emits the buffer's text content as plain ANSI; RIP graphics are
// not re-encoded from raster back to sub-commands (the inverse transform
// this format would need is out of scope: recovering vector commands from
// a rasterized image is lossy in a way the load direction is not).
func (ripCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	return ansiCodec{}.Save(buf, opts)
}
