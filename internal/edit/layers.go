package edit

import (
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/errs"
)

// AddLayer appends a new visible layer of the given title and size above
// the topmost existing layer and makes it current.
func (e *EditState) AddLayer(title string, size buffer.Size) error {
	return e.do("add layer", func() error {
		e.Buf.Layers = append(e.Buf.Layers, buffer.NewLayer(title, size))
		e.CurrentLayer = len(e.Buf.Layers) - 1
		return nil
	})
}

// RemoveLayer deletes the layer at idx. Removing the only remaining layer
// is refused with ErrLayerIndexOutOfRange: a buffer always keeps at least
// one layer.
func (e *EditState) RemoveLayer(idx int) error {
	return e.do("remove layer", func() error {
		if idx < 0 || idx >= len(e.Buf.Layers) {
			return errs.ErrLayerIndexOutOfRange
		}
		if len(e.Buf.Layers) == 1 {
			return errs.ErrLayerIndexOutOfRange
		}
		e.Buf.Layers = append(e.Buf.Layers[:idx], e.Buf.Layers[idx+1:]...)
		if e.CurrentLayer >= len(e.Buf.Layers) {
			e.CurrentLayer = len(e.Buf.Layers) - 1
		}
		return nil
	})
}

// DuplicateLayer inserts a clone of the layer at idx directly above it.
func (e *EditState) DuplicateLayer(idx int) error {
	return e.do("duplicate layer", func() error {
		if idx < 0 || idx >= len(e.Buf.Layers) {
			return errs.ErrLayerIndexOutOfRange
		}
		dup := e.Buf.Layers[idx].Clone()
		dup.Title = dup.Title + " copy"
		layers := make([]*buffer.Layer, 0, len(e.Buf.Layers)+1)
		layers = append(layers, e.Buf.Layers[:idx+1]...)
		layers = append(layers, dup)
		layers = append(layers, e.Buf.Layers[idx+1:]...)
		e.Buf.Layers = layers
		e.CurrentLayer = idx + 1
		return nil
	})
}

// MergeDown copies every non-invisible cell of the layer at idx onto idx-1
// (glyph and attribute together), then removes idx. The upper layer's
// composition mode and transparent color indices are not applied.
func (e *EditState) MergeDown(idx int) error {
	return e.do("merge down", func() error {
		if idx <= 0 || idx >= len(e.Buf.Layers) {
			return errs.ErrLayerIndexOutOfRange
		}
		top := e.Buf.Layers[idx]
		below := e.Buf.Layers[idx-1]
		size := below.Size()
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				local := buffer.Position{X: x, Y: y}
				topLocal := buffer.Position{X: x + below.Offset.X - top.Offset.X, Y: y + below.Offset.Y - top.Offset.Y}
				cell := top.GetChar(topLocal)
				if cell.IsInvisible() {
					continue
				}
				below.SetChar(local, cell)
			}
		}
		e.Buf.Layers = append(e.Buf.Layers[:idx], e.Buf.Layers[idx+1:]...)
		if e.CurrentLayer >= len(e.Buf.Layers) {
			e.CurrentLayer = len(e.Buf.Layers) - 1
		}
		return nil
	})
}

// RaiseLayer swaps idx with the layer above it.
func (e *EditState) RaiseLayer(idx int) error {
	return e.do("raise layer", func() error {
		if idx < 0 || idx >= len(e.Buf.Layers)-1 {
			return errs.ErrLayerIndexOutOfRange
		}
		e.Buf.Layers[idx], e.Buf.Layers[idx+1] = e.Buf.Layers[idx+1], e.Buf.Layers[idx]
		return nil
	})
}

// LowerLayer swaps idx with the layer below it.
func (e *EditState) LowerLayer(idx int) error {
	return e.do("lower layer", func() error {
		if idx <= 0 || idx >= len(e.Buf.Layers) {
			return errs.ErrLayerIndexOutOfRange
		}
		e.Buf.Layers[idx], e.Buf.Layers[idx-1] = e.Buf.Layers[idx-1], e.Buf.Layers[idx]
		return nil
	})
}

// LayerPropertyUpdate is the set of mutable, non-content layer fields.
type LayerPropertyUpdate struct {
	Title            *string
	IsVisible        *bool
	IsLocked         *bool
	IsPositionLocked *bool
	Offset           *buffer.Position
}

// UpdateLayerProperties applies whichever fields of upd are non-nil to the
// layer at idx.
func (e *EditState) UpdateLayerProperties(idx int, upd LayerPropertyUpdate) error {
	return e.do("update layer properties", func() error {
		layer, err := e.layer(idx)
		if err != nil {
			return err
		}
		if upd.Title != nil {
			layer.Title = *upd.Title
		}
		if upd.IsVisible != nil {
			layer.Properties.IsVisible = *upd.IsVisible
		}
		if upd.IsLocked != nil {
			layer.Properties.IsLocked = *upd.IsLocked
		}
		if upd.IsPositionLocked != nil {
			layer.Properties.IsPositionLocked = *upd.IsPositionLocked
		}
		if upd.Offset != nil {
			layer.Offset = *upd.Offset
		}
		return nil
	})
}

// SetLayerSize resizes the layer at idx, preserving overlapping content.
func (e *EditState) SetLayerSize(idx int, size buffer.Size) error {
	return e.do("set layer size", func() error {
		layer, err := e.layer(idx)
		if err != nil {
			return err
		}
		layer.SetSize(size)
		return nil
	})
}
