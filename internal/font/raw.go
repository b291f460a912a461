package font

import "fmt"

// LoadRaw parses a raw fixed-height font blob: width is always 8, height is
// one of 8, 14, or 16, and data is exactly 256*height bytes (one row byte
// per scanline, 256 consecutive glyphs starting at code point 0). This is
// the format embedded in classic VGA ROM font dumps.
func LoadRaw(name string, height int, data []byte) (*BitFont, error) {
	switch height {
	case 8, 14, 16:
	default:
		return nil, fmt.Errorf("font: raw loader only supports height 8, 14, or 16, got %d", height)
	}
	want := 256 * height
	if len(data) != want {
		return nil, fmt.Errorf("font: raw blob is %d bytes, want %d for height %d", len(data), want, height)
	}

	f := New(name, 8, height)
	for ch := 0; ch < 256; ch++ {
		start := ch * height
		rows := make([]byte, height)
		copy(rows, data[start:start+height])
		if err := f.SetGlyph(rune(ch), rows); err != nil {
			return nil, err
		}
	}
	return f, nil
}
