package edit

import (
	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/color"
	"github.com/stlalpha/icyengine/internal/errs"
)

// SwitchPalette replaces the buffer's palette with next, remapping every
// cell's foreground/background index to next's index for the same color
// (inserting it if next has room). TransparentIndex passes through
// unchanged. If any color in use has no home in next, the switch is
// refused with ErrPaletteIncompatible and nothing changes.
func (e *EditState) SwitchPalette(next *color.Palette) error {
	return e.do("switch palette", func() error {
		remap := map[uint32]uint32{}
		for _, layer := range e.Buf.Layers {
			if err := collectRemap(layer, e.Buf.Palette, next, remap); err != nil {
				return err
			}
		}
		for _, layer := range e.Buf.Layers {
			applyRemap(layer, remap)
		}
		e.Buf.Palette = next
		return nil
	})
}

func collectRemap(layer *buffer.Layer, from, to *color.Palette, remap map[uint32]uint32) error {
	size := layer.Size()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			cell := layer.GetChar(buffer.Position{X: x, Y: y})
			for _, idx := range [2]uint32{cell.Attr.Foreground, cell.Attr.Background} {
				if idx == buffer.TransparentIndex {
					continue
				}
				if _, ok := remap[idx]; ok {
					continue
				}
				c, ok := from.At(int(idx))
				if !ok {
					continue
				}
				newIdx, err := to.InsertColor(c)
				if err != nil {
					return errs.ErrPaletteIncompatible
				}
				remap[idx] = uint32(newIdx)
			}
		}
	}
	return nil
}

func applyRemap(layer *buffer.Layer, remap map[uint32]uint32) {
	size := layer.Size()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			pos := buffer.Position{X: x, Y: y}
			cell := layer.GetChar(pos)
			if cell.IsInvisible() {
				continue
			}
			remapped := remapCell(cell, remap)
			layer.SetChar(pos, remapped)
		}
	}
}

func remapCell(cell attr.AttributedChar, remap map[uint32]uint32) attr.AttributedChar {
	if cell.Attr.Foreground != buffer.TransparentIndex {
		if v, ok := remap[cell.Attr.Foreground]; ok {
			cell.Attr.Foreground = v
		}
	}
	if cell.Attr.Background != buffer.TransparentIndex {
		if v, ok := remap[cell.Attr.Background]; ok {
			cell.Attr.Background = v
		}
	}
	return cell
}
