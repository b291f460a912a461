package format

import (
	"encoding/json"
	"fmt"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/color"
)

// icyDrawDocument is the .icd on-disk shape: a JSON manifest describing
// buffer metadata and layers, each layer's cells inlined as a flat array
// (this engine skips the optional thumbnail the format allows).
type icyDrawDocument struct {
	Width, Height int
	IceMode       int
	PaletteMode   int
	Palette       []icyDrawColor
	Layers        []icyDrawLayer
	Sauce         buffer.SauceData
}

type icyDrawColor struct{ R, G, B uint8 }

type icyDrawLayer struct {
	Title      string
	OffsetX    int
	OffsetY    int
	Width      int
	Height     int
	IsVisible  bool
	IsLocked   bool
	Mode       int
	Cells      []icyDrawCell
}

type icyDrawCell struct {
	Ch    rune
	Fg    uint32
	Bg    uint32
	Bits  uint16
	Font  uint
}

// icyDrawCodec loads/saves .icd: IcyDraw's native JSON container.
type icyDrawCodec struct{}

func (icyDrawCodec) Load(data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	var doc icyDrawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("format: decode icydraw json: %w", err)
	}
	size := buffer.Size{Width: doc.Width, Height: doc.Height}
	buf := buffer.New(size, nil)
	buf.IceMode = buffer.IceMode(doc.IceMode)
	buf.SauceData = doc.Sauce

	if len(doc.Palette) > 0 {
		pal := color.New(color.Mode(doc.PaletteMode))
		for _, c := range doc.Palette {
			pal.InsertColor(color.RGB(c.R, c.G, c.B))
		}
		buf.Palette = pal
	}

	layers := make([]*buffer.Layer, 0, len(doc.Layers))
	for _, dl := range doc.Layers {
		l := buffer.NewLayer(dl.Title, buffer.Size{Width: dl.Width, Height: dl.Height})
		l.Offset = buffer.Position{X: dl.OffsetX, Y: dl.OffsetY}
		l.Properties.IsVisible = dl.IsVisible
		l.Properties.IsLocked = dl.IsLocked
		l.Properties.Mode = buffer.LayerMode(dl.Mode)
		for i, cell := range dl.Cells {
			if i >= dl.Width*dl.Height {
				break
			}
			x, y := i%dl.Width, i/dl.Width
			a := attr.New(cell.Fg, cell.Bg)
			a = a.WithBits(cell.Bits)
			a.FontPage = cell.Font
			l.SetChar(buffer.Position{X: x, Y: y}, attr.AttributedChar{Ch: cell.Ch, Attr: a})
		}
		layers = append(layers, l)
	}
	if len(layers) > 0 {
		buf.Layers = layers
	}
	return buf, nil
}

func (icyDrawCodec) Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	doc := icyDrawDocument{
		Width:       buf.Size.Width,
		Height:      buf.Size.Height,
		IceMode:     int(buf.IceMode),
		PaletteMode: int(buf.PaletteMode),
		Sauce:       buf.SauceData,
	}
	if buf.Palette != nil {
		for _, c := range buf.Palette.All() {
			r, g, b := c.Resolve(buf.Palette)
			doc.Palette = append(doc.Palette, icyDrawColor{R: r, G: g, B: b})
		}
	}
	for _, l := range buf.Layers {
		size := l.Size()
		dl := icyDrawLayer{
			Title:     l.Title,
			OffsetX:   l.Offset.X,
			OffsetY:   l.Offset.Y,
			Width:     size.Width,
			Height:    size.Height,
			IsVisible: l.Properties.IsVisible,
			IsLocked:  l.Properties.IsLocked,
			Mode:      int(l.Properties.Mode),
		}
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				c := l.GetChar(buffer.Position{X: x, Y: y})
				dl.Cells = append(dl.Cells, icyDrawCell{Ch: c.Ch, Fg: c.Attr.Foreground, Bg: c.Attr.Background, Bits: c.Attr.Bits(), Font: c.Attr.FontPage})
			}
		}
		doc.Layers = append(doc.Layers, dl)
	}
	return json.MarshalIndent(doc, "", "  ")
}
