package font

import (
	"encoding/binary"
	"fmt"
)

var psf2Magic = [4]byte{0x72, 0xb5, 0x4a, 0x86}

// LoadPSF2 parses a PSF2 console font blob (the format used by Linux
// consolefonts) into a BitFont. Unicode table entries in the trailing
// section, if present, are ignored: glyphs are indexed by their ordinal
// position, which PSF2 fonts intended for CP437-style use treat as the
// code point directly.
func LoadPSF2(name string, data []byte) (*BitFont, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("font: psf2 blob too short (%d bytes)", len(data))
	}
	var magic [4]byte
	copy(magic[:], data[0:4])
	if magic != psf2Magic {
		return nil, fmt.Errorf("font: not a PSF2 blob (bad magic)")
	}

	headerSize := binary.LittleEndian.Uint32(data[8:12])
	numGlyphs := binary.LittleEndian.Uint32(data[16:20])
	bytesPerGlyph := binary.LittleEndian.Uint32(data[20:24])
	height := binary.LittleEndian.Uint32(data[24:28])
	width := binary.LittleEndian.Uint32(data[28:32])

	if width == 0 || width > 8 {
		return nil, fmt.Errorf("font: psf2 width %d unsupported (only 1..8 px wide glyphs)", width)
	}
	rowBytes := (int(width) + 7) / 8
	if rowBytes != 1 || uint32(rowBytes)*height != bytesPerGlyph {
		return nil, fmt.Errorf("font: psf2 bytes-per-glyph %d inconsistent with %dx%d", bytesPerGlyph, width, height)
	}

	f := New(name, int(width), int(height))
	offset := int(headerSize)
	for g := uint32(0); g < numGlyphs; g++ {
		start := offset + int(g*bytesPerGlyph)
		end := start + int(bytesPerGlyph)
		if end > len(data) {
			return nil, fmt.Errorf("font: psf2 glyph %d truncated", g)
		}
		rows := make([]byte, height)
		copy(rows, data[start:end])
		if err := f.SetGlyph(rune(g), rows); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ToPSF2 serializes f into a PSF2 blob, assigning glyph ordinals by
// ascending code point.
func ToPSF2(f *BitFont) ([]byte, error) {
	if f.Width == 0 || f.Width > 8 {
		return nil, fmt.Errorf("font: psf2 export only supports widths 1..8, got %d", f.Width)
	}
	codePoints := f.GlyphCodePoints()
	sortRunes(codePoints)

	const headerSize = 32
	bytesPerGlyph := uint32(f.Height)
	buf := make([]byte, headerSize)
	copy(buf[0:4], psf2Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], 0) // version
	binary.LittleEndian.PutUint32(buf[8:12], headerSize)
	binary.LittleEndian.PutUint32(buf[12:16], 0) // flags
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(codePoints)))
	binary.LittleEndian.PutUint32(buf[20:24], bytesPerGlyph)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(f.Height))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(f.Width))

	for _, r := range codePoints {
		rows, _ := f.Glyph(r)
		buf = append(buf, rows...)
	}
	return buf, nil
}

func sortRunes(rs []rune) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j-1] > rs[j]; j-- {
			rs[j-1], rs[j] = rs[j], rs[j-1]
		}
	}
}
