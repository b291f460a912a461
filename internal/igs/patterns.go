package igs

// Fill pattern tables backing AttributeForFills (IGS command "AF"). Each
// pattern is 16 rows of a 16-bit mask; fillPixel tiles it over the
// surface by testing bit (0x8000 >> x%16) of row y%16, the same
// tiling rule BGI's pattern/hatch fills use.
//
// The original driver's exact TYPE_PATTERN/HATCH_PATTERN/
// HATCH_WIDE_PATTERN bitmaps live in a source file outside this repo's
// retrieval pack (paint.rs only imports them, it doesn't define them),
// so the tables below are generated rather than transcribed bit-for-bit
// from the original art. See DESIGN.md.
var (
	hollowPattern     = [16]uint16{}
	solidPattern      = solidRows()
	randomPattern     = randomRows()
	typePatterns      = genTypePatterns()
	hatchPatterns     = genHatchPatterns(false)
	hatchWidePatterns = genHatchPatterns(true)
)

func solidRows() [16]uint16 {
	var p [16]uint16
	for i := range p {
		p[i] = 0xFFFF
	}
	return p
}

// randomRows is a fixed "noisy" mask standing in for BGI's dithered
// RANDOM_PATTERN fill (AttributeForFills type=2, pattern=0).
func randomRows() [16]uint16 {
	return [16]uint16{
		0xA5A5, 0x5A5A, 0xC3C3, 0x3C3C, 0x9966, 0x6699, 0xF00F, 0x0FF0,
		0x55AA, 0xAA55, 0x3366, 0x6633, 0x0F0F, 0xF0F0, 0x1E1E, 0xE1E1,
	}
}

// genTypePatterns builds the 24 numbered "Pattern" fill styles
// (AttributeForFills type=2, pattern 1-24): dot density cycles through
// 1-8 dots per row every 8 patterns, and each row is rotated by its row
// index plus the pattern number mod 16, so patterns n and n+16 come out
// identical.
func genTypePatterns() [24][16]uint16 {
	var out [24][16]uint16
	for n := 0; n < 24; n++ {
		density := uint(n%8) + 1
		step := uint16(16) / uint16(density)
		if step == 0 {
			step = 1
		}
		var row uint16
		for b := uint16(0); b < uint16(density); b++ {
			row |= 1 << ((b * step) % 16)
		}
		shift := uint(n % 16)
		for y := 0; y < 16; y++ {
			out[n][y] = rotl16(row, (uint(y)+shift)%16)
		}
	}
	return out
}

// genHatchPatterns builds the 6 narrow (single-pixel line) or 6 wide
// (two-pixel line) hatch styles (AttributeForFills type=3, 1-6 narrow /
// 7-12 wide): parallel diagonal lines at increasing spacing.
func genHatchPatterns(wide bool) [6][16]uint16 {
	var out [6][16]uint16
	for n := 0; n < 6; n++ {
		spacing := n + 2
		for y := 0; y < 16; y++ {
			if y%spacing != 0 {
				continue
			}
			bit := rotl16(0x8000, uint(y))
			if wide {
				bit |= rotl16(bit, 1)
			}
			out[n][y] = bit
		}
	}
	return out
}

func rotl16(v uint16, n uint) uint16 {
	n %= 16
	if n == 0 {
		return v
	}
	return (v << n) | (v >> (16 - n))
}
