package color

import "github.com/stlalpha/icyengine/internal/errs"

// Mode constrains how many slots a Palette may hold and whether slots past
// 16 may be appended, mirroring Buffer.palette_mode in spec.md.
type Mode int

const (
	ModeRGB Mode = iota
	ModeFixed16
	ModeFree8
	ModeFree16
)

// Palette is an ordered, index-addressable list of colors with an
// insert-or-find operation.
type Palette struct {
	mode    Mode
	colors  []Color
}

// New creates an empty palette in the given mode.
func New(mode Mode) *Palette {
	return &Palette{mode: mode}
}

// DOSDefault returns the canonical 16-color VGA palette.
func DOSDefault() *Palette {
	p := New(ModeFixed16)
	for _, rgb := range dosDefaultColors {
		p.colors = append(p.colors, RGB(rgb[0], rgb[1], rgb[2]))
	}
	return p
}

var dosDefaultColors = [16][3]uint8{
	{0x00, 0x00, 0x00}, {0xAA, 0x00, 0x00}, {0x00, 0xAA, 0x00}, {0xAA, 0x55, 0x00},
	{0x00, 0x00, 0xAA}, {0xAA, 0x00, 0xAA}, {0x00, 0xAA, 0xAA}, {0xAA, 0xAA, 0xAA},
	{0x55, 0x55, 0x55}, {0xFF, 0x55, 0x55}, {0x55, 0xFF, 0x55}, {0xFF, 0xFF, 0x55},
	{0x55, 0x55, 0xFF}, {0xFF, 0x55, 0xFF}, {0x55, 0xFF, 0xFF}, {0xFF, 0xFF, 0xFF},
}

// Len returns the number of entries.
func (p *Palette) Len() int { return len(p.colors) }

// Mode returns the palette mode.
func (p *Palette) Mode() Mode { return p.mode }

// At returns the color at index i.
func (p *Palette) At(i int) (Color, bool) {
	if i < 0 || i >= len(p.colors) {
		return Color{}, false
	}
	return p.colors[i], true
}

// All returns a copy of the palette's entries in order.
func (p *Palette) All() []Color {
	out := make([]Color, len(p.colors))
	copy(out, p.colors)
	return out
}

// InsertColor returns the existing index for c if present, else appends it
// and returns the new index. In ModeFixed16, appending past 16 entries
// fails with ErrPaletteFull.
func (p *Palette) InsertColor(c Color) (int, error) {
	for i, existing := range p.colors {
		if existing == c {
			return i, nil
		}
	}
	if p.mode == ModeFixed16 && len(p.colors) >= 16 {
		return -1, errs.ErrPaletteFull
	}
	p.colors = append(p.colors, c)
	return len(p.colors) - 1, nil
}

// SetColor overwrites the entry at index i. In ModeFixed16, i must already
// be within the first 16 entries.
func (p *Palette) SetColor(i int, c Color) error {
	if i < 0 || i >= len(p.colors) {
		return errs.ErrInvalidPaletteIndex
	}
	if p.mode == ModeFixed16 && i >= 16 {
		return errs.ErrInvalidPaletteIndex
	}
	p.colors[i] = c
	return nil
}

// Equal reports whether two palettes hold the same colors in the same
// order and mode.
func (p *Palette) Equal(other *Palette) bool {
	if other == nil || p.mode != other.mode || len(p.colors) != len(other.colors) {
		return false
	}
	for i, c := range p.colors {
		if other.colors[i] != c {
			return false
		}
	}
	return true
}
