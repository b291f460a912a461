package buffer

// Position is a zero-based (column, row) coordinate.
type Position struct {
	X, Y int
}

// Size is a non-negative (width, height) pair.
type Size struct {
	Width, Height int
}

// Rectangle is the minimal bounding box described by two corner positions.
type Rectangle struct {
	Pos  Position
	Size Size
}

// RectangleFromPoints returns the minimal rectangle spanning anchor and
// lead, inclusive of both.
func RectangleFromPoints(anchor, lead Position) Rectangle {
	x0, x1 := anchor.X, lead.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := anchor.Y, lead.Y
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle{Pos: Position{X: x0, Y: y0}, Size: Size{Width: x1 - x0 + 1, Height: y1 - y0 + 1}}
}

// Contains reports whether p lies within r.
func (r Rectangle) Contains(p Position) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Size.Width &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Size.Height
}
