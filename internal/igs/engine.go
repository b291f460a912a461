package igs

import (
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/rip"
)

// Resolution mirrors the three ST screen modes IGS commands select
// between; each fixes the pixel surface size QuickPause and drawing
// coordinates are measured against.
type Resolution int

const (
	ResolutionLow Resolution = iota
	ResolutionMedium
	ResolutionHigh
)

func (r Resolution) Size() (width, height int) {
	switch r {
	case ResolutionMedium:
		return 640, 200
	case ResolutionHigh:
		return 640, 400
	default:
		return 320, 200
	}
}

// yRadiusScale is the resolution-dependent aspect-ratio numerator
// calc_circle_y_rad uses to derive a circle/ellipse's y-radius from its
// x-radius (spec.md §4.6): Low=338/372, Medium=169/372, High=372/372.
func (r Resolution) yRadiusScale() int {
	switch r {
	case ResolutionMedium:
		return 169
	case ResolutionHigh:
		return 372
	default:
		return 338
	}
}

// DrawingMode selects how fillPixel combines a pattern bit with the
// existing surface pixel, per spec.md §4.6.
type DrawingMode int

const (
	DrawReplace DrawingMode = iota + 1
	DrawTransparent
	DrawXor
	DrawReverseTransparent
)

// Engine drives rip.Engine's pixel primitives from decoded IGS commands.
// IGS and RIP target the same kind of raster surface (a BGI/VDI-style
// pen-and-fill pixel plane), so the line/bar/ellipse/polygon/flood-fill
// math is shared rather than re-derived. Pattern fills, drawing-mode
// combine rules, arcs/pieslices, and the memory<->screen blit are IGS-
// specific and implemented directly against rip.Engine's exported pixel
// accessors (At/PlotRaw) rather than through rip.Command, since rip has
// no notion of a fill pattern or a second write mode.
type Engine struct {
	*rip.Engine
	resolution Resolution
	cursorX    int
	cursorY    int

	penColor  int
	fillColor int

	fillPattern []uint16
	drawBorder  bool
	hollow      bool

	drawingMode DrawingMode

	// PauseMS and DoubleStep record the most recent QuickPause command
	// (spec.md §4.6): a plain pause in milliseconds, or one of the
	// 9995-9999 sentinel values selecting a double-step count (-1 means
	// off) applied to subsequent GrabScreen blits. The engine itself
	// never blocks; the caller's event loop is expected to honor these.
	PauseMS    int
	DoubleStep float64

	memory     []byte
	memW, memH int
}

// NewEngine allocates a surface sized for resolution.
func NewEngine(resolution Resolution) *Engine {
	w, h := resolution.Size()
	return &Engine{
		Engine:      rip.NewEngine(w, h),
		resolution:  resolution,
		penColor:    1,
		fillColor:   1,
		fillPattern: solidPattern[:],
		drawingMode: DrawReplace,
		DoubleStep:  -1,
	}
}

// Feed applies one decoded Command to the surface.
func (e *Engine) Feed(cmd Command) {
	p := cmd.Params
	switch cmd.Kind {
	case CmdSetResolution:
		if len(p) >= 1 {
			e.resolution = Resolution(p[0])
			w, h := e.resolution.Size()
			e.Engine = rip.NewEngine(w, h)
		}
	case CmdScreenClear:
		w, h := e.resolution.Size()
		e.Engine = rip.NewEngine(w, h)
	case CmdSetPenColor:
		if len(p) >= 2 {
			e.penColor = p[1]
		}
	case CmdColorSet:
		// ColorSet ("CS") selects which of the four color roles to set:
		// 0 polymarker, 1 line/pen, 2 fill, 3 text — only line and fill
		// affect this engine's drawing, grounded on paint.rs's ColorSet
		// match arm.
		if len(p) >= 2 {
			switch p[0] {
			case 1:
				e.penColor = p[1]
			case 2:
				e.fillColor = p[1]
			}
		}
	case CmdDrawLine:
		if len(p) >= 4 {
			e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.penColor})
			e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: p[0], Y1: p[1], X2: p[2], Y2: p[3]})
		}
	case CmdLineDrawTo:
		if len(p) >= 2 {
			e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.penColor})
			e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: e.cursorX, Y1: e.cursorY, X2: p[0], Y2: p[1]})
			e.cursorX, e.cursorY = p[0], p[1]
		}
	case CmdPolyLine:
		e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.penColor})
		e.Engine.Feed(rip.Command{Kind: rip.CmdPolygon, Points: pairPoints(p)})
	case CmdPolyFill:
		e.fillPoly(pairPoints(p))
	case CmdBox:
		if len(p) >= 4 {
			e.fillRect(p[0], p[1], p[2], p[3])
			if e.drawBorder {
				e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.fillColor})
				e.rectOutline(p[0], p[1], p[2], p[3])
			}
		}
	case CmdFilledRectangle:
		if len(p) >= 4 {
			e.fillRect(p[0], p[1], p[2], p[3])
		}
	case CmdCircle:
		if len(p) >= 3 {
			yr := e.circleYRadius(p[2])
			e.fillEllipse(p[0], p[1], p[2], yr)
			if e.drawBorder {
				e.strokeArc(p[0], p[1], p[2], yr, 0, 360)
			}
		}
	case CmdEllipse:
		if len(p) >= 4 {
			e.fillEllipse(p[0], p[1], p[2], p[3])
			if e.drawBorder {
				e.strokeArc(p[0], p[1], p[2], p[3], 0, 360)
			}
		}
	case CmdArc:
		if len(p) >= 5 {
			yr := e.circleYRadius(p[2])
			e.strokeArc(p[0], p[1], p[2], yr, p[3], p[4])
		}
	case CmdPieslice:
		if len(p) >= 5 {
			yr := e.circleYRadius(p[2])
			e.fillPie(p[0], p[1], p[2], yr, p[3], p[4])
			if e.drawBorder {
				e.strokePie(p[0], p[1], p[2], yr, p[3], p[4])
			}
		}
	case CmdFloodFill:
		if len(p) >= 2 {
			e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.fillColor})
			e.Engine.Feed(rip.Command{Kind: rip.CmdFloodFill, X1: p[0], Y1: p[1]})
		}
	case CmdAttributeForFills:
		if len(p) >= 3 {
			e.setFillPattern(p[0], p[1])
			e.drawBorder = p[2] != 0
		}
	case CmdHollowSet:
		if len(p) >= 1 {
			e.hollow = p[0] != 0
		}
	case CmdDrawingMode:
		if len(p) >= 1 && p[0] >= 1 && p[0] <= 4 {
			e.drawingMode = DrawingMode(p[0])
		}
	case CmdQuickPause:
		if len(p) >= 1 {
			switch p[0] {
			case 9995:
				e.DoubleStep = 4
			case 9996:
				e.DoubleStep = 3
			case 9997:
				e.DoubleStep = 2
			case 9998:
				e.DoubleStep = 1
			case 9999:
				e.DoubleStep = -1
			default:
				if p[0] < 180 {
					e.PauseMS = p[0] * 1000 / 60
				}
			}
		}
	case CmdGrabScreen:
		e.grabScreen(p)
	case CmdWriteText:
		if len(p) >= 2 {
			e.cursorX, e.cursorY = p[0], p[1]
		}
	case CmdCursor, CmdInitialize, CmdTextEffects, CmdUnknown:
		// Cursor visibility, palette initialization, and text styling have
		// no pixel-surface effect.
	}
}

// FeedText draws s at the position last set by a WriteText command.
func (e *Engine) FeedText(s string) {
	e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.penColor})
	e.Engine.Feed(rip.Command{Kind: rip.CmdText, X1: e.cursorX, Y1: e.cursorY, Text: s})
}

func pairPoints(p []int) []rip.Point {
	n := len(p) / 2
	pts := make([]rip.Point, n)
	for i := 0; i < n; i++ {
		pts[i] = rip.Point{X: p[i*2], Y: p[i*2+1]}
	}
	return pts
}

// circleYRadius derives a y-radius from an x-radius using the current
// resolution's aspect ratio (spec.md §4.6), matching
// original_source's calc_circle_y_rad.
func (e *Engine) circleYRadius(xRadius int) int {
	yr := xRadius * e.resolution.yRadiusScale() / 372
	if yr < 1 {
		yr = 1
	}
	return yr
}

// setFillPattern selects fillPattern from AttributeForFills' type (0
// Hollow, 1 Solid, 2 Pattern 1-24 or 0=random, 3 Hatch 1-6 narrow/7-12
// wide, 4 UserDefined) and index parameters.
func (e *Engine) setFillPattern(kind, index int) {
	switch kind {
	case 0:
		e.fillPattern = hollowPattern[:]
	case 1:
		e.fillPattern = solidPattern[:]
	case 2:
		switch {
		case index == 0:
			e.fillPattern = randomPattern[:]
		case index >= 1 && index <= 24:
			e.fillPattern = typePatterns[index-1][:]
		default:
			e.fillPattern = solidPattern[:]
		}
	case 3:
		switch {
		case index >= 1 && index <= 6:
			e.fillPattern = hatchPatterns[index-1][:]
		case index >= 7 && index <= 12:
			e.fillPattern = hatchWidePatterns[index-7][:]
		default:
			e.fillPattern = solidPattern[:]
		}
	case 4:
		// User-defined pattern bitmaps are loaded out of band (not part
		// of the IGS command stream this engine decodes); fall back to
		// solid rather than silently drawing nothing.
		e.fillPattern = solidPattern[:]
	default:
		e.fillPattern = solidPattern[:]
	}
}

// fillPixel applies the current fill pattern and drawing mode at (x, y),
// the IGS analogue of rip.Engine's solid fillColor writes. Grounded on
// original_source/.../igs/paint.rs's fill_pixel: Replace and Transparent
// both just paint where the pattern bit is set (they differ only for a
// destination surface this engine doesn't separately model), Xor
// combines the fill color into the existing pixel, and
// ReverseTransparent paints where the pattern bit is clear.
func (e *Engine) fillPixel(x, y int) {
	pattern := e.fillPattern
	if len(pattern) == 0 {
		return
	}
	row := pattern[y%len(pattern)]
	set := row&(0x8000>>uint(x%16)) != 0
	fc := rip.ColorFromIndex(e.fillColor)
	switch e.drawingMode {
	case DrawXor:
		cur := e.Engine.At(x, y)
		var s [3]byte
		if set {
			s = [3]byte{fc[0], fc[1], fc[2]}
		}
		e.Engine.PlotRaw(x, y, [4]byte{cur[0] ^ s[0], cur[1] ^ s[1], cur[2] ^ s[2], 255})
	case DrawReverseTransparent:
		if !set {
			e.Engine.PlotRaw(x, y, fc)
		}
	default: // DrawReplace, DrawTransparent
		if set {
			e.Engine.PlotRaw(x, y, fc)
		}
	}
}

func (e *Engine) fillRect(x0, y0, x1, y1 int) {
	if e.hollow {
		e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.fillColor})
		e.rectOutline(x0, y0, x1, y1)
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			e.fillPixel(x, y)
		}
	}
}

func (e *Engine) rectOutline(x0, y0, x1, y1 int) {
	e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: x0, Y1: y0, X2: x1, Y2: y0})
	e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: x1, Y1: y0, X2: x1, Y2: y1})
	e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: x1, Y1: y1, X2: x0, Y2: y1})
	e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: x0, Y1: y1, X2: x0, Y2: y0})
}

func (e *Engine) fillEllipse(cx, cy, rx, ry int) {
	if e.hollow || rx == 0 || ry == 0 {
		return
	}
	for y := -ry; y <= ry; y++ {
		for x := -rx; x <= rx; x++ {
			if (x*x)*(ry*ry)+(y*y)*(rx*rx) <= (rx*rx)*(ry*ry) {
				e.fillPixel(cx+x, cy+y)
			}
		}
	}
}

func (e *Engine) fillPoly(pts []rip.Point) {
	if len(pts) < 3 {
		return
	}
	if e.hollow {
		e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.fillColor})
		e.Engine.Feed(rip.Command{Kind: rip.CmdPolygon, Points: pts})
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	n := len(pts)
	for y := minY; y <= maxY; y++ {
		var xs []int
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
				e.fillPixel(x, y)
			}
		}
	}
}

// strokeArc draws the ellipse boundary from begAngle to endAngle degrees
// (0 = +x axis, counter-clockwise), a genuine partial sweep rather than
// the full-ellipse stand-in this engine used to collapse Arc/Pieslice
// into.
func (e *Engine) strokeArc(cx, cy, rx, ry, begAngle, endAngle int) {
	e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.penColor})
	pts := arcPoints(cx, cy, rx, ry, begAngle, endAngle)
	for i := 0; i+1 < len(pts); i++ {
		e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: pts[i].X, Y1: pts[i].Y, X2: pts[i+1].X, Y2: pts[i+1].Y})
	}
}

func (e *Engine) strokePie(cx, cy, rx, ry, begAngle, endAngle int) {
	pts := arcPoints(cx, cy, rx, ry, begAngle, endAngle)
	pts = append(pts, rip.Point{X: cx, Y: cy})
	e.Engine.Feed(rip.Command{Kind: rip.CmdColor, Color: e.penColor})
	for i := 0; i+1 < len(pts); i++ {
		e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: pts[i].X, Y1: pts[i].Y, X2: pts[i+1].X, Y2: pts[i+1].Y})
	}
	if len(pts) > 1 {
		e.Engine.Feed(rip.Command{Kind: rip.CmdLine, X1: pts[len(pts)-1].X, Y1: pts[len(pts)-1].Y, X2: pts[0].X, Y2: pts[0].Y})
	}
}

func (e *Engine) fillPie(cx, cy, rx, ry, begAngle, endAngle int) {
	pts := arcPoints(cx, cy, rx, ry, begAngle, endAngle)
	pts = append(pts, rip.Point{X: cx, Y: cy})
	e.fillPoly(pts)
}

// arcPoints samples the ellipse boundary in 2-degree steps from begAngle
// to endAngle (wrapping forward through 360 if endAngle < begAngle).
func arcPoints(cx, cy, rx, ry, begAngle, endAngle int) []rip.Point {
	const step = 2
	span := endAngle - begAngle
	for span <= 0 {
		span += 360
	}
	n := span/step + 1
	pts := make([]rip.Point, 0, n)
	const pi = 3.14159265358979
	for i := 0; i <= span; i += step {
		theta := float64(begAngle+i) * pi / 180
		x := cx + int(float64(rx)*rip.Cos(theta))
		y := cy - int(float64(ry)*rip.Sin(theta))
		pts = append(pts, rip.Point{X: x, Y: y})
	}
	return pts
}

// grabScreen implements the four GrabScreen ("GS") blit modes: 0
// screen-to-screen, 1 screen-to-memory, 2 whole-memory-to-screen, 3
// piece-of-memory-to-screen, each combined through writeMode the same
// way fillPixel combines a fill pattern.
func (e *Engine) grabScreen(p []int) {
	if len(p) < 2 {
		return
	}
	mode, writeMode := p[0], DrawingMode(p[1])
	switch mode {
	case 0:
		if len(p) < 8 {
			return
		}
		e.blitScreenToScreen(writeMode, p[2], p[3], p[4], p[5], p[6], p[7])
	case 1:
		if len(p) < 6 {
			return
		}
		e.blitScreenToMemory(p[2], p[3], p[4], p[5])
	case 2:
		if len(p) < 4 {
			return
		}
		e.blitMemoryToScreen(writeMode, 0, 0, e.memW, e.memH, p[2], p[3])
	case 3:
		if len(p) < 8 {
			return
		}
		e.blitMemoryToScreen(writeMode, p[2], p[3], p[4], p[5], p[6], p[7])
	}
}

func (e *Engine) blitScreenToScreen(writeMode DrawingMode, fx0, fy0, fx1, fy1, dx, dy int) {
	for y := fy0; y <= fy1; y++ {
		for x := fx0; x <= fx1; x++ {
			c := e.Engine.At(x, y)
			e.blitPixel(dx+(x-fx0), dy+(y-fy0), c, writeMode)
		}
	}
}

func (e *Engine) blitScreenToMemory(fx0, fy0, fx1, fy1 int) {
	w, h := fx1-fx0+1, fy1-fy0+1
	if w <= 0 || h <= 0 {
		return
	}
	e.memory = make([]byte, w*h*4)
	e.memW, e.memH = w, h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := e.Engine.At(fx0+x, fy0+y)
			i := (y*w + x) * 4
			copy(e.memory[i:i+4], c[:])
		}
	}
}

func (e *Engine) blitMemoryToScreen(writeMode DrawingMode, fx0, fy0, fx1, fy1, dx, dy int) {
	if e.memory == nil || e.memW == 0 {
		return
	}
	for y := fy0; y <= fy1 && y < e.memH; y++ {
		for x := fx0; x <= fx1 && x < e.memW; x++ {
			i := (y*e.memW + x) * 4
			c := [4]byte{e.memory[i], e.memory[i+1], e.memory[i+2], e.memory[i+3]}
			e.blitPixel(dx+(x-fx0), dy+(y-fy0), c, writeMode)
		}
	}
}

func (e *Engine) blitPixel(x, y int, c [4]byte, writeMode DrawingMode) {
	switch writeMode {
	case DrawXor:
		cur := e.Engine.At(x, y)
		e.Engine.PlotRaw(x, y, [4]byte{cur[0] ^ c[0], cur[1] ^ c[1], cur[2] ^ c[2], 255})
	case DrawTransparent:
		if c != ([4]byte{}) {
			e.Engine.PlotRaw(x, y, c)
		}
	case DrawReverseTransparent:
		if c == ([4]byte{}) {
			e.Engine.PlotRaw(x, y, c)
		}
	default:
		e.Engine.PlotRaw(x, y, c)
	}
}

// Attach copies the surface into layer as a Sixel raster, same as
// internal/rip.Engine.Attach.
func (e *Engine) Attach(layer *buffer.Layer, x, y int) {
	e.Engine.Attach(layer, x, y)
}
