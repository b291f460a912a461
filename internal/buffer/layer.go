package buffer

import (
	"github.com/google/uuid"

	"github.com/stlalpha/icyengine/internal/attr"
)

// LayerMode controls how a layer's cells replace the composite during
// Buffer.GetChar.
type LayerMode int

const (
	// Normal: visible cells replace; transparent colors defer.
	LayerModeNormal LayerMode = iota
	// Chars: only glyph+font page replace; attribute is kept.
	LayerModeChars
	// Attributes: only the attribute replaces; glyph is kept.
	LayerModeAttributes
)

// LayerRole distinguishes the background layer (always index 0) from
// ordinary drawn layers.
type LayerRole int

const (
	LayerRoleNormal LayerRole = iota
	LayerRoleBackground
)

// Sixel is a raster image attached to a layer at a pixel position, as
// produced by the Sixel parser.
type Sixel struct {
	X, Y   int // pixel position within the layer
	Width  int
	Height int
	Pixels []byte // width*height RGBA8888
}

// Hyperlink records a URI attached to a rectangular region of a layer.
type Hyperlink struct {
	Area Rectangle
	URI  string
}

// LayerProperties bundles the boolean/enum flags a layer carries.
type LayerProperties struct {
	IsVisible         bool
	IsLocked          bool
	IsPositionLocked  bool
	HasAlphaChannel   bool
	Mode              LayerMode
}

// Layer is an ordered grid of cells with an offset, composition mode, and
// its own palette-independent metadata.
type Layer struct {
	ID           uuid.UUID
	Title        string
	Offset       Position
	size         Size
	lines        []*Line
	Transparency uint8
	Properties   LayerProperties
	Role         LayerRole
	Sixels       []Sixel
	Hyperlinks   []Hyperlink
}

// NewLayer creates a visible, unlocked layer of the given size.
func NewLayer(title string, size Size) *Layer {
	l := &Layer{
		ID:    uuid.New(),
		Title: title,
		size:  size,
		Properties: LayerProperties{
			IsVisible: true,
			Mode:      LayerModeNormal,
		},
	}
	l.lines = make([]*Line, size.Height)
	for i := range l.lines {
		l.lines[i] = NewLine()
	}
	return l
}

// Size returns the layer's size.
func (l *Layer) Size() Size { return l.size }

// GetChar returns the cell at localPos, or Invisible() if the line is too
// short (or out of vertical range).
func (l *Layer) GetChar(localPos Position) attr.AttributedChar {
	if localPos.Y < 0 || localPos.Y >= len(l.lines) {
		return attr.Invisible()
	}
	return l.lines[localPos.Y].CharAt(localPos.X)
}

// SetChar grows the target line if necessary and stores ch.
func (l *Layer) SetChar(localPos Position, ch attr.AttributedChar) {
	if localPos.Y < 0 || localPos.Y >= len(l.lines) {
		return
	}
	l.lines[localPos.Y].SetChar(localPos.X, ch)
}

// SetCharUnchecked is the fast path: no bounds check, usable only after
// PreallocateLines has grown every line to at least localPos.X+1 cells.
func (l *Layer) SetCharUnchecked(localPos Position, ch attr.AttributedChar) {
	l.lines[localPos.Y].SetCharUnchecked(localPos.X, ch)
}

// PreallocateLines grows every line up to width cells so SetCharUnchecked
// is safe across the full row.
func (l *Layer) PreallocateLines(width int) {
	for _, line := range l.lines {
		line.TrimToWidth(width)
	}
}

// SetSize resizes the layer, preserving the overlapping region. Lines are
// truncated or extended to h, and each line is truncated or padded to w.
func (l *Layer) SetSize(newSize Size) {
	if newSize.Height < len(l.lines) {
		l.lines = l.lines[:newSize.Height]
	} else {
		for len(l.lines) < newSize.Height {
			l.lines = append(l.lines, NewLine())
		}
	}
	for _, line := range l.lines {
		line.TrimToWidth(newSize.Width)
	}
	l.size = newSize
}

// SetOffset is pure metadata; buffer composition applies it.
func (l *Layer) SetOffset(off Position) { l.Offset = off }

// GetLineLength returns the index past the last non-invisible cell on row
// y, or 0 if y is out of range.
func (l *Layer) GetLineLength(y int) int {
	if y < 0 || y >= len(l.lines) {
		return 0
	}
	return l.lines[y].LineLength()
}

// Line returns the raw Line at row y (for callers building a Buffer-level
// view), or nil if out of range.
func (l *Layer) Line(y int) *Line {
	if y < 0 || y >= len(l.lines) {
		return nil
	}
	return l.lines[y]
}

// ScrollLines shifts rows [top, bottom] (inclusive) by amount: positive
// scrolls content up (toward row top), negative scrolls it down. Rows
// vacated at the trailing edge become blank lines.
func (l *Layer) ScrollLines(top, bottom, amount int) {
	if top < 0 {
		top = 0
	}
	if bottom >= len(l.lines) {
		bottom = len(l.lines) - 1
	}
	if top > bottom || amount == 0 {
		return
	}
	region := l.lines[top : bottom+1]
	n := len(region)
	if amount > 0 {
		if amount > n {
			amount = n
		}
		copy(region, region[amount:])
		for i := n - amount; i < n; i++ {
			region[i] = NewLine()
		}
	} else {
		amount = -amount
		if amount > n {
			amount = n
		}
		copy(region[amount:], region[:n-amount])
		for i := 0; i < amount; i++ {
			region[i] = NewLine()
		}
	}
}

// Clone returns a deep copy of the layer, used by EditState for floating
// layers and undo snapshots. The clone keeps the source layer's ID: it
// is the same logical layer at a different point in undo history, not
// a new one.
func (l *Layer) Clone() *Layer {
	cp := &Layer{
		ID:           l.ID,
		Title:        l.Title,
		Offset:       l.Offset,
		size:         l.size,
		Transparency: l.Transparency,
		Properties:   l.Properties,
		Role:         l.Role,
	}
	cp.lines = make([]*Line, len(l.lines))
	for i, line := range l.lines {
		cp.lines[i] = line.Clone()
	}
	cp.Sixels = append(cp.Sixels, l.Sixels...)
	cp.Hyperlinks = append(cp.Hyperlinks, l.Hyperlinks...)
	return cp
}
