// Package color implements the indexed/RGB color model used by attributed
// characters: a palette slot, an extended-palette slot, a direct RGB triple,
// or the transparent sentinel that defers to whatever lies beneath it during
// layer composition.
package color

// Kind discriminates the variant held by a Color.
type Kind int

const (
	KindPalette Kind = iota
	KindExtendedPalette
	KindRGB
	KindTransparent
)

// Color is a small tagged union. It is a value type so Colors compare with
// ==, the way the teacher compares its other small attribute structs.
type Color struct {
	kind  Kind
	index uint32
	r, g, b uint8
}

// PaletteIndex returns a Color referencing slot index in the active palette.
func PaletteIndex(index uint32) Color { return Color{kind: KindPalette, index: index} }

// ExtendedPalette returns a Color referencing slot index in an extended
// (beyond 16/256) palette space.
func ExtendedPalette(index uint32) Color { return Color{kind: KindExtendedPalette, index: index} }

// RGB returns a direct-color Color.
func RGB(r, g, b uint8) Color { return Color{kind: KindRGB, r: r, g: g, b: b} }

// Transparent is the sentinel meaning "defer to the layer underneath".
var Transparent = Color{kind: KindTransparent}

// IsTransparent reports whether c is the transparent sentinel.
func (c Color) IsTransparent() bool { return c.kind == KindTransparent }

// Kind returns the variant tag.
func (c Color) Kind() Kind { return c.kind }

// Index returns the palette/extended-palette slot. Only meaningful when
// Kind is KindPalette or KindExtendedPalette.
func (c Color) Index() uint32 { return c.index }

// RGBValues returns the direct-color components. Only meaningful when Kind
// is KindRGB.
func (c Color) RGBValues() (r, g, b uint8) { return c.r, c.g, c.b }

// Resolve returns the 24-bit RGB this color represents against the given
// palette. Transparent resolves to (0,0,0); callers needing composition
// semantics should check IsTransparent before calling Resolve.
func (c Color) Resolve(p *Palette) (r, g, b uint8) {
	switch c.kind {
	case KindRGB:
		return c.r, c.g, c.b
	case KindPalette, KindExtendedPalette:
		if p == nil {
			return 0, 0, 0
		}
		if col, ok := p.At(int(c.index)); ok {
			return col.Resolve(nil)
		}
		return 0, 0, 0
	default:
		return 0, 0, 0
	}
}
