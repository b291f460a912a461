package parser

import (
	"strconv"
	"strings"

	"github.com/stlalpha/icyengine/internal/buffer"
)

// DecodeSixel interprets a DCS payload (the bytes between "Pq" and the
// closing ST) as a Sixel image and returns the decoded raster, the same
// six-pixel-column encoding DEC terminals and most BBS-era sixel viewers
// use: each data byte in 0x3f-0x7e packs six vertical pixel bits, '#'
// selects or defines a palette color, '$' returns to the start of the
// current six-row band, '-' advances to the next band, and '!' repeats
// the following sixel character count times.
func DecodeSixel(data []byte) buffer.Sixel {
	palette := map[int][3]byte{}
	cur := 0
	x, y := 0, 0
	maxX := 0
	var pixels []byte // growable RGBA8888, width tracked separately once known
	width, height := 0, 0

	ensureSize := func(w, h int) {
		if w <= width && h <= height {
			return
		}
		nw, nh := width, height
		if w > nw {
			nw = w
		}
		if h > nh {
			nh = h
		}
		np := make([]byte, nw*nh*4)
		for row := 0; row < height; row++ {
			copy(np[row*nw*4:row*nw*4+width*4], pixels[row*width*4:(row+1)*width*4])
		}
		pixels, width, height = np, nw, nh
	}

	setPixel := func(px, py, colorIdx int) {
		ensureSize(px+1, py+1)
		c := palette[colorIdx]
		i := (py*width + px) * 4
		pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = c[0], c[1], c[2], 255
	}

	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == '#':
			j := i + 1
			for j < len(data) && (data[j] == ';' || isDigit(data[j])) {
				j++
			}
			parts := strings.Split(string(data[i+1:j]), ";")
			if len(parts) >= 1 {
				idx, _ := strconv.Atoi(parts[0])
				cur = idx
			}
			if len(parts) >= 5 {
				pu, _ := strconv.Atoi(parts[1])
				px, _ := strconv.Atoi(parts[2])
				py, _ := strconv.Atoi(parts[3])
				pz, _ := strconv.Atoi(parts[4])
				if pu == 2 { // RGB, percentages 0-100
					palette[cur] = [3]byte{
						byte(px * 255 / 100), byte(py * 255 / 100), byte(pz * 255 / 100),
					}
				}
			}
			i = j
		case b == '$':
			x = 0
			i++
		case b == '-':
			x = 0
			y += 6
			i++
		case b == '!':
			j := i + 1
			for j < len(data) && isDigit(data[j]) {
				j++
			}
			count, _ := strconv.Atoi(string(data[i+1 : j]))
			if j < len(data) {
				bits := data[j] - '?'
				for n := 0; n < count; n++ {
					emitSixelColumn(bits, x, y, cur, setPixel)
					x++
				}
				j++
			}
			i = j
		case b >= '?' && b <= '~':
			emitSixelColumn(b-'?', x, y, cur, setPixel)
			x++
			i++
		default:
			i++
		}
		if x > maxX {
			maxX = x
		}
	}
	if maxX > width {
		ensureSize(maxX, height)
	}
	if pixels == nil {
		return buffer.Sixel{}
	}
	return buffer.Sixel{Width: width, Height: height, Pixels: pixels}
}

func emitSixelColumn(bits byte, x, y, colorIdx int, setPixel func(px, py, colorIdx int)) {
	for row := 0; row < 6; row++ {
		if bits&(1<<uint(row)) != 0 {
			setPixel(x, y+row, colorIdx)
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
