package edit

import (
	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/errs"
)

// SelectionShape distinguishes a rectangular marquee from a single-row
// line selection.
type SelectionShape int

const (
	SelectionRectangle SelectionShape = iota
	SelectionLine
)

// Selection is an anchor/lead pair with a shape and a locked flag; locked
// selections still report their extent but refuse further drag updates
// (enforced by the caller, not here).
type Selection struct {
	Anchor, Lead buffer.Position
	Shape        SelectionShape
	Locked       bool
}

// Rectangle returns the minimal bounding box of the selection.
func (s Selection) Rectangle() buffer.Rectangle {
	if s.Shape == SelectionLine {
		y0, y1 := s.Anchor.Y, s.Lead.Y
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		return buffer.Rectangle{Pos: buffer.Position{X: 0, Y: y0}, Size: buffer.Size{Width: 0, Height: y1 - y0 + 1}}
	}
	return buffer.RectangleFromPoints(s.Anchor, s.Lead)
}

// SetSelection installs sel as the active selection.
func (e *EditState) SetSelection(sel Selection) error {
	return e.do("set selection", func() error {
		cp := sel
		e.Selection = &cp
		return nil
	})
}

// ClearSelection drops the active selection, if any.
func (e *EditState) ClearSelection() error {
	return e.do("clear selection", func() error {
		e.Selection = nil
		return nil
	})
}

// InverseSelection swaps anchor and lead, which for a locked drag flips
// which corner subsequent drag updates move.
func (e *EditState) InverseSelection() error {
	return e.do("inverse selection", func() error {
		if e.Selection == nil {
			return nil
		}
		e.Selection.Anchor, e.Selection.Lead = e.Selection.Lead, e.Selection.Anchor
		return nil
	})
}

// selectionRect returns the active selection's rectangle, or the full
// current layer if there is none.
func (e *EditState) selectionRect() (buffer.Rectangle, error) {
	layer, err := e.layer(e.CurrentLayer)
	if err != nil {
		return buffer.Rectangle{}, err
	}
	if e.Selection != nil {
		return e.Selection.Rectangle(), nil
	}
	size := layer.Size()
	return buffer.Rectangle{Pos: buffer.Position{}, Size: size}, nil
}

func (e *EditState) layer(idx int) (*buffer.Layer, error) {
	if idx < 0 || idx >= len(e.Buf.Layers) {
		return nil, errs.ErrLayerIndexOutOfRange
	}
	return e.Buf.Layers[idx], nil
}

// SetChar stores ch at pos on layer idx, bounds-checked against both the
// layer index and the layer's own size.
func (e *EditState) SetChar(idx int, pos buffer.Position, ch attr.AttributedChar) error {
	return e.do("set char", func() error {
		layer, err := e.layer(idx)
		if err != nil {
			return err
		}
		size := layer.Size()
		if pos.X < 0 || pos.Y < 0 || pos.X >= size.Width || pos.Y >= size.Height {
			return errs.ErrPositionOutOfLayer
		}
		layer.SetChar(pos, ch)
		return nil
	})
}

// FlipX mirrors the selection rectangle's content horizontally in place.
func (e *EditState) FlipX() error {
	return e.do("flip x", func() error {
		layer, err := e.layer(e.CurrentLayer)
		if err != nil {
			return err
		}
		rect, err := e.selectionRect()
		if err != nil {
			return err
		}
		for y := rect.Pos.Y; y < rect.Pos.Y+rect.Size.Height; y++ {
			row := make([]attr.AttributedChar, rect.Size.Width)
			for i := 0; i < rect.Size.Width; i++ {
				row[i] = layer.GetChar(buffer.Position{X: rect.Pos.X + i, Y: y})
			}
			for i := 0; i < rect.Size.Width; i++ {
				layer.SetChar(buffer.Position{X: rect.Pos.X + i, Y: y}, row[rect.Size.Width-1-i])
			}
		}
		return nil
	})
}

// FlipY mirrors the selection rectangle's content vertically in place.
func (e *EditState) FlipY() error {
	return e.do("flip y", func() error {
		layer, err := e.layer(e.CurrentLayer)
		if err != nil {
			return err
		}
		rect, err := e.selectionRect()
		if err != nil {
			return err
		}
		for x := rect.Pos.X; x < rect.Pos.X+rect.Size.Width; x++ {
			col := make([]attr.AttributedChar, rect.Size.Height)
			for i := 0; i < rect.Size.Height; i++ {
				col[i] = layer.GetChar(buffer.Position{X: x, Y: rect.Pos.Y + i})
			}
			for i := 0; i < rect.Size.Height; i++ {
				layer.SetChar(buffer.Position{X: x, Y: rect.Pos.Y + i}, col[rect.Size.Height-1-i])
			}
		}
		return nil
	})
}

// Justify is a horizontal alignment target for Justify/JustifyLine.
type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

// Justify shifts each row's content within the selection rectangle to the
// requested alignment, based on that row's trimmed content width.
func (e *EditState) Justify(j Justify) error {
	return e.do("justify", func() error {
		layer, err := e.layer(e.CurrentLayer)
		if err != nil {
			return err
		}
		rect, err := e.selectionRect()
		if err != nil {
			return err
		}
		for y := rect.Pos.Y; y < rect.Pos.Y+rect.Size.Height; y++ {
			justifyRow(layer, rect.Pos.X, rect.Size.Width, y, j)
		}
		return nil
	})
}

// JustifyLine is Justify restricted to the single given row.
func (e *EditState) JustifyLine(row int, j Justify) error {
	return e.do("justify line", func() error {
		layer, err := e.layer(e.CurrentLayer)
		if err != nil {
			return err
		}
		rect, err := e.selectionRect()
		if err != nil {
			return err
		}
		justifyRow(layer, rect.Pos.X, rect.Size.Width, row, j)
		return nil
	})
}

func justifyRow(layer *buffer.Layer, left, width, y int, j Justify) {
	cells := make([]attr.AttributedChar, width)
	content := 0
	for i := 0; i < width; i++ {
		cells[i] = layer.GetChar(buffer.Position{X: left + i, Y: y})
		if !cells[i].IsInvisible() {
			content = i + 1
		}
	}
	var shift int
	switch j {
	case JustifyCenter:
		shift = (width - content) / 2
	case JustifyRight:
		shift = width - content
	default:
		shift = 0
	}
	out := make([]attr.AttributedChar, width)
	for i := range out {
		out[i] = attr.Invisible()
	}
	for i := 0; i < content; i++ {
		dst := i + shift
		if dst >= 0 && dst < width {
			out[dst] = cells[i]
		}
	}
	for i := 0; i < width; i++ {
		layer.SetChar(buffer.Position{X: left + i, Y: y}, out[i])
	}
}

// Crop resizes the current layer down to the selection rectangle,
// discarding everything outside it and re-anchoring the layer's offset.
func (e *EditState) Crop() error {
	return e.do("crop", func() error {
		layer, err := e.layer(e.CurrentLayer)
		if err != nil {
			return err
		}
		rect, err := e.selectionRect()
		if err != nil {
			return err
		}
		cropped := buffer.NewLayer(layer.Title, rect.Size)
		for y := 0; y < rect.Size.Height; y++ {
			for x := 0; x < rect.Size.Width; x++ {
				cropped.SetChar(buffer.Position{X: x, Y: y}, layer.GetChar(buffer.Position{X: rect.Pos.X + x, Y: rect.Pos.Y + y}))
			}
		}
		cropped.Offset = buffer.Position{X: layer.Offset.X + rect.Pos.X, Y: layer.Offset.Y + rect.Pos.Y}
		cropped.Properties = layer.Properties
		cropped.Role = layer.Role
		e.Buf.Layers[e.CurrentLayer] = cropped
		return nil
	})
}

// EraseSelection blanks every cell within the selection rectangle on the
// current layer.
func (e *EditState) EraseSelection() error {
	return e.do("erase selection", func() error {
		layer, err := e.layer(e.CurrentLayer)
		if err != nil {
			return err
		}
		rect, err := e.selectionRect()
		if err != nil {
			return err
		}
		for y := rect.Pos.Y; y < rect.Pos.Y+rect.Size.Height; y++ {
			for x := rect.Pos.X; x < rect.Pos.X+rect.Size.Width; x++ {
				layer.SetChar(buffer.Position{X: x, Y: y}, attr.Invisible())
			}
		}
		return nil
	})
}
