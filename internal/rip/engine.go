package rip

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/stlalpha/icyengine/internal/buffer"
)

// WriteMode mirrors the BGI pixel combine rules RIP's 'W' command selects.
type WriteMode int

const (
	WriteCopy WriteMode = iota
	WriteXor
	WriteOr
	WriteAnd
	WriteNot
)

// Engine is a pixel surface plus pen/fill state, driven by decoded RIP
// Commands. It fills the role the original BGI graphics driver played:
// every drawing primitive ultimately reduces to pixel writes through
// writeMode.
type Engine struct {
	Width, Height int
	pixels        []byte // RGBA8888, len == Width*Height*4

	penColor  [4]byte
	fillColor [4]byte
	fillOn    bool
	writeMode WriteMode

	lineStyle     int
	linePattern   uint16
	lineThickness int
}

// NewEngine allocates a transparent width x height surface.
func NewEngine(width, height int) *Engine {
	return &Engine{
		Width:         width,
		Height:        height,
		pixels:        make([]byte, width*height*4),
		penColor:      [4]byte{255, 255, 255, 255},
		fillColor:     [4]byte{255, 255, 255, 255},
		writeMode:     WriteCopy,
		linePattern:   linePatterns[0],
		lineThickness: 1,
	}
}

// linePatterns are the four named BGI dash masks plus the slot a 'User'
// style (index 4) starts from before CmdLineStyle's Pattern overrides it,
// per original_source's bgi::LineStyle::LINE_PATTERNS.
var linePatterns = [5]uint16{0xFFFF, 0xCCCC, 0xF878, 0xF8F8, 0xFFFF}

// ButtonStyle.flags bits (spec.md §4.5).
const (
	buttonClipboard          = 1 << 0
	buttonInvertable         = 1 << 1
	buttonResetScreenOnClick = 1 << 2
	buttonChisel             = 1 << 3
	buttonRecessed           = 1 << 4
	buttonDropshadow         = 1 << 5
	buttonStampOnClipboard   = 1 << 6
	buttonIcon               = 1 << 7
	buttonPlain              = 1 << 8
	buttonBevel              = 1 << 9
	buttonMouse              = 1 << 10
	buttonUnderlineHotkey    = 1 << 11
	buttonUseHotkeyForIcon   = 1 << 12
	buttonAdjVerticalCenter  = 1 << 13
	buttonRadioGroup         = 1 << 14
	buttonSunken             = 1 << 15
)

var (
	buttonLight = [4]byte{255, 255, 255, 255}
	buttonDark  = [4]byte{85, 85, 85, 255}
)

// ega16 maps a RIP palette index (0-15) to an RGB triple, the way
// the BGI driver's EGA/VGA palette table does.
var ega16 = [16][3]byte{
	{0, 0, 0}, {0, 0, 170}, {0, 170, 0}, {0, 170, 170},
	{170, 0, 0}, {170, 0, 170}, {170, 85, 0}, {170, 170, 170},
	{85, 85, 85}, {85, 85, 255}, {85, 255, 85}, {85, 255, 255},
	{255, 85, 85}, {255, 85, 255}, {255, 255, 85}, {255, 255, 255},
}

// ColorFromIndex maps a 4-bit EGA/VGA palette index to its RGBA color, the
// same table igs.Engine reuses for its own pen/fill-color state.
func ColorFromIndex(idx int) [4]byte {
	c := ega16[idx&0x0f]
	return [4]byte{c[0], c[1], c[2], 255}
}

func colorFromIndex(idx int) [4]byte { return ColorFromIndex(idx) }

// Feed applies one decoded Command to the surface.
func (e *Engine) Feed(cmd Command) {
	switch cmd.Kind {
	case CmdLine:
		e.line(cmd.X1, cmd.Y1, cmd.X2, cmd.Y2)
	case CmdBar:
		e.bar(cmd.X1, cmd.Y1, cmd.X2, cmd.Y2)
	case CmdCircle:
		e.ellipse(cmd.X1, cmd.Y1, cmd.Radius, cmd.Radius)
	case CmdOval:
		e.ellipse(cmd.X1, cmd.Y1, cmd.X2, cmd.Y2)
	case CmdPolygon:
		e.polygon(cmd.Points)
	case CmdFloodFill:
		e.floodFill(cmd.X1, cmd.Y1)
	case CmdText:
		e.text(cmd.X1, cmd.Y1, cmd.Text)
	case CmdWriteMode:
		e.writeMode = WriteMode(cmd.Mode)
	case CmdFillStyle:
		e.fillOn = cmd.Mode != 0
		e.fillColor = colorFromIndex(cmd.Color)
	case CmdColor:
		e.penColor = colorFromIndex(cmd.Color)
	case CmdLineStyle:
		e.setLineStyle(cmd.Mode, cmd.Pattern)
		e.lineThickness = cmd.Thickness
		if e.lineThickness < 1 {
			e.lineThickness = 1
		}
	case CmdButton:
		e.button(cmd.X1, cmd.Y1, cmd.X2, cmd.Y2, cmd.Flags)
	case CmdLoadIcon, CmdUnknown:
		// Icon bitmap loading has no pixel-level effect here; the hit
		// rectangle for buttons/icons is registered by internal/rip's
		// caller via cmd.Raw.
	}
}

func (e *Engine) setPixel(x, y int, c [4]byte) {
	if x < 0 || y < 0 || x >= e.Width || y >= e.Height {
		return
	}
	i := (y*e.Width + x) * 4
	switch e.writeMode {
	case WriteXor:
		e.pixels[i] ^= c[0]
		e.pixels[i+1] ^= c[1]
		e.pixels[i+2] ^= c[2]
		e.pixels[i+3] = 255
	case WriteOr:
		e.pixels[i] |= c[0]
		e.pixels[i+1] |= c[1]
		e.pixels[i+2] |= c[2]
		e.pixels[i+3] = 255
	case WriteAnd:
		e.pixels[i] &= c[0]
		e.pixels[i+1] &= c[1]
		e.pixels[i+2] &= c[2]
		e.pixels[i+3] = 255
	case WriteNot:
		e.pixels[i] = ^c[0]
		e.pixels[i+1] = ^c[1]
		e.pixels[i+2] = ^c[2]
		e.pixels[i+3] = 255
	default:
		copy(e.pixels[i:i+4], c[:])
	}
}

// setLineStyle selects one of the four named dash masks (0-3), or a
// custom 16-bit mask when style is 4 (User) — the <user_pat> parameter
// is ignored for any other style, matching CmdLineStyle's RIP semantics.
func (e *Engine) setLineStyle(style, userPattern int) {
	if style < 0 || style > 4 {
		style = 0
	}
	e.lineStyle = style
	if style == 4 {
		e.linePattern = uint16(userPattern)
		return
	}
	e.linePattern = linePatterns[style]
}

// line draws a Bresenham segment with the current pen color, skipping
// pixels the active dash mask clears and widening the stroke to
// lineThickness, per spec.md §4.5's "Bresenham with pattern mask".
func (e *Engine) line(x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	step := 0
	for {
		if e.linePattern&(1<<uint(step%16)) != 0 {
			e.plotThick(x1, y1)
		}
		step++
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// plotThick draws a lineThickness x lineThickness square of pen color
// centered at (x, y), approximating BGI's "thickness > 1 renders as a
// perpendicular band."
func (e *Engine) plotThick(x, y int) {
	t := e.lineThickness
	if t < 1 {
		t = 1
	}
	half := t / 2
	for oy := -half; oy < t-half; oy++ {
		for ox := -half; ox < t-half; ox++ {
			e.setPixel(x+ox, y+oy, e.penColor)
		}
	}
}

// chiselInset returns the (x, y) inset a chiseled button of the given
// pixel height uses for its nested inner bevel, per spec.md §6's table.
func chiselInset(height int) (int, int) {
	switch {
	case height < 12:
		return 1, 1
	case height < 25:
		return 3, 2
	case height < 40:
		return 4, 3
	case height < 75:
		return 6, 5
	case height < 150:
		return 7, 5
	case height < 200:
		return 8, 6
	case height < 250:
		return 10, 7
	case height < 300:
		return 11, 8
	default:
		return 13, 9
	}
}

// button renders the §4.5 border styles (bevel/sunken/recessed/chisel,
// optionally backed by a dropshadow) for the rectangle (x0,y0)-(x1,y1).
// A plain button draws no border at all. Hit-test registration and the
// host command text are a caller concern, carried in cmd.Raw.
func (e *Engine) button(x0, y0, x1, y1, flags int) {
	if flags&buttonPlain != 0 {
		return
	}
	xi, yi := chiselInset(abs(y1 - y0))
	if flags&buttonDropshadow != 0 {
		e.filledRect(x0+xi, y0+yi, x1+xi, y1+yi, buttonDark)
	}
	switch {
	case flags&buttonChisel != 0:
		e.bevelRect(x0, y0, x1, y1, false)
		e.bevelRect(x0+xi, y0+yi, x1-xi, y1-yi, true)
	case flags&buttonSunken != 0 || flags&buttonRecessed != 0:
		e.bevelRect(x0, y0, x1, y1, true)
	default:
		// buttonBevel, or no style bit set: BGI's default button chrome
		// is a plain raised bevel.
		e.bevelRect(x0, y0, x1, y1, false)
	}
}

// bevelRect draws a two-tone border: light on the top/left edges and
// dark on the bottom/right when sunken is false (raised), swapped when
// sunken is true (inset) — the light-source convention BGI's button
// chrome uses for bevel/chisel/sunken/recessed styles alike.
func (e *Engine) bevelRect(x0, y0, x1, y1 int, sunken bool) {
	light, dark := buttonLight, buttonDark
	if sunken {
		light, dark = dark, light
	}
	e.hline(x0, x1, y0, light)
	e.vline(y0, y1, x0, light)
	e.hline(x0, x1, y1, dark)
	e.vline(y0, y1, x1, dark)
}

func (e *Engine) hline(x0, x1, y int, c [4]byte) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		e.setPixel(x, y, c)
	}
}

func (e *Engine) vline(y0, y1, x int, c [4]byte) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		e.setPixel(x, y, c)
	}
}

func (e *Engine) filledRect(x0, y0, x1, y1 int, c [4]byte) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			e.setPixel(x, y, c)
		}
	}
}

func (e *Engine) bar(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if e.fillOn {
				e.setPixel(x, y, e.fillColor)
			}
		}
	}
	e.line(x1, y1, x2, y1)
	e.line(x2, y1, x2, y2)
	e.line(x2, y2, x1, y2)
	e.line(x1, y2, x1, y1)
}

// ellipse draws a midpoint ellipse centered at (cx,cy) with the given
// radii, filling it first if a fill style is active.
func (e *Engine) ellipse(cx, cy, rx, ry int) {
	if rx == 0 || ry == 0 {
		return
	}
	if e.fillOn {
		for y := -ry; y <= ry; y++ {
			for x := -rx; x <= rx; x++ {
				if (x*x)*(ry*ry)+(y*y)*(rx*rx) <= (rx*rx)*(ry*ry) {
					e.setPixel(cx+x, cy+y, e.fillColor)
				}
			}
		}
	}
	steps := 720
	prevX, prevY := cx+rx, cy
	for i := 1; i <= steps; i++ {
		theta := float64(i) * 2 * 3.14159265358979 / float64(steps)
		x := cx + int(float64(rx)*Cos(theta))
		y := cy + int(float64(ry)*Sin(theta))
		e.line(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
}

func (e *Engine) polygon(pts []Point) {
	if len(pts) < 2 {
		return
	}
	for i := 0; i < len(pts); i++ {
		j := (i + 1) % len(pts)
		e.line(pts[i].X, pts[i].Y, pts[j].X, pts[j].Y)
	}
	if e.fillOn {
		e.scanFillPolygon(pts)
	}
}

// scanFillPolygon does an even-odd scanline fill, the same rule BGI's
// fillpoly used.
func (e *Engine) scanFillPolygon(pts []Point) {
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	for y := minY; y <= maxY; y++ {
		var xs []int
		n := len(pts)
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			if (y >= a.Y && y < b.Y) || (y >= b.Y && y < a.Y) {
				t := float64(y-a.Y) / float64(b.Y-a.Y)
				xs = append(xs, a.X+int(t*float64(b.X-a.X)))
			}
		}
		for i := 0; i+1 < len(xs); i += 2 {
			x0, x1 := xs[i], xs[i+1]
			if x0 > x1 {
				x0, x1 = x1, x0
			}
			for x := x0; x <= x1; x++ {
				e.setPixel(x, y, e.fillColor)
			}
		}
	}
}

// floodFill is a stack-based 4-way flood fill of the region whose pixels
// match the seed pixel's color; any other color bounds it. Seeding on a
// fill- or pen-colored pixel does nothing.
func (e *Engine) floodFill(x, y int) {
	if x < 0 || y < 0 || x >= e.Width || y >= e.Height {
		return
	}
	target := e.pixelAt(x, y)
	if target == e.fillColor || target == e.penColor {
		return
	}
	stack := []Point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.X < 0 || p.Y < 0 || p.X >= e.Width || p.Y >= e.Height {
			continue
		}
		if e.pixelAt(p.X, p.Y) != target {
			continue
		}
		e.setPixel(p.X, p.Y, e.fillColor)
		stack = append(stack,
			Point{p.X + 1, p.Y}, Point{p.X - 1, p.Y},
			Point{p.X, p.Y + 1}, Point{p.X, p.Y - 1})
	}
}

func (e *Engine) pixelAt(x, y int) [4]byte {
	i := (y*e.Width + x) * 4
	return [4]byte{e.pixels[i], e.pixels[i+1], e.pixels[i+2], e.pixels[i+3]}
}

// At returns the color at (x, y), or transparent black if out of bounds.
// Exported so igs.Engine can read the shared surface directly when
// implementing its own drawing-mode combine rules instead of rip's
// writeMode.
func (e *Engine) At(x, y int) [4]byte {
	if x < 0 || y < 0 || x >= e.Width || y >= e.Height {
		return [4]byte{}
	}
	return e.pixelAt(x, y)
}

// PlotRaw writes c at (x, y) unconditionally, ignoring writeMode. Exported
// for igs.Engine's fill_pixel-equivalent, which applies its own
// Replace/Transparent/Xor/ReverseTransparent rule before ever reaching the
// surface.
func (e *Engine) PlotRaw(x, y int, c [4]byte) {
	if x < 0 || y < 0 || x >= e.Width || y >= e.Height {
		return
	}
	i := (y*e.Width + x) * 4
	copy(e.pixels[i:i+4], c[:])
}

// text draws s using the stroke-font fallback when no BGI vector font is
// loaded, matching the original driver's "no SET FONT loaded" default.
func (e *Engine) text(x, y int, s string) {
	face := basicfont.Face7x13
	pen := fixed.P(x, y+face.Height)
	for _, r := range s {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv = fixed.I(face.Advance)
		}
		e.drawGlyph(face, r, pen)
		pen.X += adv
	}
}

func (e *Engine) drawGlyph(face *basicfont.Face, r rune, pen fixed.Point26_6) {
	dr, mask, maskp, _, ok := face.Glyph(pen, r)
	if !ok {
		return
	}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			_, _, _, a := mask.At(x-dr.Min.X+maskp.X, y-dr.Min.Y+maskp.Y).RGBA()
			if a != 0 {
				e.setPixel(x, y, e.penColor)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func cos(theta float64) float64 { return Cos(theta) }

func sin(theta float64) float64 { return Sin(theta) }

// Cos is a Bhaskara I approximation that keeps the ellipse tracer (and
// igs.Engine's arc sampler) free of math.Cos while staying within a
// fraction of a degree across [0, 2pi].
func Cos(theta float64) float64 {
	for theta > 2*3.14159265358979 {
		theta -= 2 * 3.14159265358979
	}
	for theta < 0 {
		theta += 2 * 3.14159265358979
	}
	return sinInternal(theta + 3.14159265358979/2)
}

// Sin is Cos's companion approximation.
func Sin(theta float64) float64 {
	return sinInternal(theta)
}

func sinInternal(x float64) float64 {
	for x > 2*3.14159265358979 {
		x -= 2 * 3.14159265358979
	}
	for x < 0 {
		x += 2 * 3.14159265358979
	}
	if x > 3.14159265358979 {
		return -sinInternal(x - 3.14159265358979)
	}
	pi := 3.14159265358979
	y := 4 * x * (pi - x)
	return (16 * y) / (5*pi*pi - 4*y)
}

// Attach copies the surface into layer as a Sixel raster positioned at
// (x, y), the same way internal/parser's Sixel sub-decoder hands off a
// decoded raster.
func (e *Engine) Attach(layer *buffer.Layer, x, y int) {
	px := make([]byte, len(e.pixels))
	copy(px, e.pixels)
	layer.Sixels = append(layer.Sixels, buffer.Sixel{
		X: x, Y: y, Width: e.Width, Height: e.Height, Pixels: px,
	})
}
