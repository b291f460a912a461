package edit

import (
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/errs"
)

// StartFloatingLayer begins a floating layer at origin holding content. A
// paste or a selection drag both start one; content is typically a clone
// of cropped selection content or pasted clipboard data.
func (e *EditState) StartFloatingLayer(origin buffer.Position, content *buffer.Layer) error {
	return e.do("start floating layer", func() error {
		e.FloatingLayer = content
		e.floatingAt = origin
		return nil
	})
}

// AnchorFloatingLayer merges the floating layer onto the current layer at
// its recorded origin and clears it.
func (e *EditState) AnchorFloatingLayer() error {
	return e.do("anchor floating layer", func() error {
		if e.FloatingLayer == nil {
			return errs.ErrLayerIndexOutOfRange
		}
		target, err := e.layer(e.CurrentLayer)
		if err != nil {
			return err
		}
		size := e.FloatingLayer.Size()
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				cell := e.FloatingLayer.GetChar(buffer.Position{X: x, Y: y})
				if cell.IsInvisible() {
					continue
				}
				target.SetChar(buffer.Position{X: e.floatingAt.X + x - target.Offset.X, Y: e.floatingAt.Y + y - target.Offset.Y}, cell)
			}
		}
		e.FloatingLayer = nil
		return nil
	})
}

// CancelFloatingLayer discards the floating layer without merging it.
func (e *EditState) CancelFloatingLayer() error {
	return e.do("cancel floating layer", func() error {
		e.FloatingLayer = nil
		return nil
	})
}
