package buffer

import (
	"math"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/color"
	"github.com/stlalpha/icyengine/internal/font"
)

// TransparentIndex is the reserved fg/bg index meaning "defer to the layer
// beneath during composition" (spec.md's Color::Transparent sentinel,
// stored inline in TextAttribute's plain uint32 fg/bg fields).
const TransparentIndex uint32 = math.MaxUint32

// Half-block glyphs used by the transparency post-process in GetChar.
const (
	HalfBlockTop    rune = 0x2580 // ▀
	HalfBlockBottom rune = 0x2584 // ▄
)

// BufferType selects the character-set/semantics family of the buffer's
// content.
type BufferType int

const (
	BufferUnicode BufferType = iota
	BufferCP437
	BufferPetscii
	BufferAtascii
	BufferViewdata
)

// IceMode controls whether the high-intensity background bit is
// interpreted as blink or as an extra background color.
type IceMode int

const (
	IceUnlimited IceMode = iota
	IceBlink
	IceIce
)

// FontMode constrains how many distinct fonts a buffer may reference.
type FontMode int

const (
	FontUnlimited FontMode = iota
	FontSauce
	FontSingle
	FontFixedSize
)

// SauceData is the subset of a SAUCE record carried on a Buffer in memory;
// see sauce.go for the on-disk codec.
type SauceData struct {
	Title    string
	Author   string
	Group    string
	Comments []string
	FontName string
	Flags    SauceFlags
	DataType byte
	FileType byte
	TInfo1   uint16
	TInfo2   uint16
	TInfo3   uint16
	TInfo4   uint16
}

// SauceFlags holds the ANSiFlags bitfield for Character-type SAUCE records.
type SauceFlags struct {
	IceColors        bool
	LetterSpacing    LetterSpacing
	AspectRatio      AspectRatio
}

type LetterSpacing int

const (
	LetterSpacingLegacy LetterSpacing = iota
	LetterSpacingNinePixel
)

type AspectRatio int

const (
	AspectRatioLegacy AspectRatio = iota
	AspectRatioLegacyDevice
)

// Buffer composes layers, a palette, a font table, and metadata into the
// single document a renderer displays.
type Buffer struct {
	Size          Size
	OriginalSize  Size
	FileName      string

	TerminalState *TerminalState
	Caret         *Caret

	BufferType   BufferType
	IceMode      IceMode
	PaletteMode  color.Mode
	FontMode     FontMode

	Palette    *color.Palette
	FontTable  map[uint]*font.BitFont

	Layers       []*Layer
	OverlayLayer *Layer
	OverlayIndex int

	SauceData SauceData
	Tags      []Tag

	scrollback         []*Line
	maxScrollbackLines int

	UseLetterSpacing bool
	UseAspectRatio   bool
	ShowTags         bool
}

// New creates a buffer of the given size with one background layer, the
// DOS default 16-color palette, and font slot 0 populated with f.
func New(size Size, f *font.BitFont) *Buffer {
	b := &Buffer{
		Size:          size,
		OriginalSize:  size,
		TerminalState: NewTerminalState(size.Width, size.Height),
		Caret:         NewCaret(),
		BufferType:    BufferCP437,
		IceMode:       IceBlink,
		PaletteMode:   color.ModeFixed16,
		FontMode:      FontSauce,
		Palette:       color.DOSDefault(),
		FontTable:     make(map[uint]*font.BitFont),
		OverlayIndex:  -1,
	}
	bg := NewLayer("Background", size)
	bg.Role = LayerRoleBackground
	b.Layers = []*Layer{bg}
	if f != nil {
		b.FontTable[0] = f
	}
	return b
}

// GetChar implements §4.1's composition contract: for any in-range
// position, return the cell a renderer would display.
func (b *Buffer) GetChar(pos Position) attr.AttributedChar {
	if b.ShowTags {
		for _, t := range b.Tags {
			if t.IsEnabled && t.Contains(pos) {
				return t.synthesizedChar(pos)
			}
		}
	}

	found := attr.Invisible()
	for i, layer := range b.Layers {
		if !layer.Properties.IsVisible {
			continue
		}
		local := Position{X: pos.X - layer.Offset.X, Y: pos.Y - layer.Offset.Y}
		size := layer.Size()
		if local.X < 0 || local.Y < 0 || local.X >= size.Width || local.Y >= size.Height {
			continue
		}
		cell := layer.GetChar(local)
		if !layer.Properties.HasAlphaChannel {
			cell = forceOpaque(cell)
		}
		found = mergeCell(found, cell, layer.Properties.Mode)

		if i == b.OverlayIndex && b.OverlayLayer != nil {
			ov := b.OverlayLayer.GetChar(local)
			if !b.OverlayLayer.Properties.HasAlphaChannel {
				ov = forceOpaque(ov)
			}
			found = mergeCell(found, ov, b.OverlayLayer.Properties.Mode)
		}
	}

	return resolveTransparency(found)
}

// forceOpaque replaces any transparent fg/bg channel with palette index 0
// and clears the invisible flag, per the has_alpha_channel rule in §4.1.
// The empty-cell sentinel (Invisible()) passes through unchanged, so unset
// cells of an opaque layer still compose as "no change".
func forceOpaque(c attr.AttributedChar) attr.AttributedChar {
	if c.IsInvisible() {
		return c
	}
	if c.Attr.Foreground == TransparentIndex {
		c.Attr.Foreground = 0
	}
	if c.Attr.Background == TransparentIndex {
		c.Attr.Background = 0
	}
	c.Attr.Clear(attr.InvisibleBit)
	return c
}

// mergeCell merges incoming onto found per the layer's composition mode.
func mergeCell(found, incoming attr.AttributedChar, mode LayerMode) attr.AttributedChar {
	switch mode {
	case LayerModeChars:
		if incoming.IsInvisible() {
			return found
		}
		result := found
		result.Ch = incoming.Ch
		result.Attr.FontPage = incoming.Attr.FontPage
		return result
	case LayerModeAttributes:
		if incoming.IsInvisible() {
			return found
		}
		result := found
		result.Attr = mergeAttr(found.Attr, incoming.Attr)
		return result
	default: // Normal
		if incoming.IsInvisible() {
			return found
		}
		result := incoming
		result.Attr = mergeAttr(found.Attr, incoming.Attr)
		return result
	}
}

// mergeAttr keeps the underlying channel wherever incoming's channel is the
// transparent sentinel.
func mergeAttr(under, incoming attr.TextAttribute) attr.TextAttribute {
	result := incoming
	if incoming.Foreground == TransparentIndex {
		result.Foreground = under.Foreground
	}
	if incoming.Background == TransparentIndex {
		result.Background = under.Background
	}
	return result
}

// resolveTransparency implements the half-block fallback: if a channel is
// still transparent after composing every layer, there was nothing beneath
// the bottom layer to defer to. Half-block glyphs collapse to a single
// solid color in that case; everything else defaults to index 0.
func resolveTransparency(c attr.AttributedChar) attr.AttributedChar {
	if c.Attr.Foreground != TransparentIndex && c.Attr.Background != TransparentIndex {
		return c
	}
	switch c.Ch {
	case HalfBlockTop, HalfBlockBottom:
		if c.Attr.Foreground == TransparentIndex {
			c.Attr.Foreground = c.Attr.Background
		}
		if c.Attr.Background == TransparentIndex {
			c.Attr.Background = c.Attr.Foreground
		}
	default:
		if c.Attr.Foreground == TransparentIndex {
			c.Attr.Foreground = 0
		}
		if c.Attr.Background == TransparentIndex {
			c.Attr.Background = 0
		}
	}
	return c
}

// GetLineLength returns the composed line length at row y: the index past
// the last non-transparent cell, clamped to the buffer width, honoring any
// tag extending past the layer content.
func (b *Buffer) GetLineLength(y int) int {
	length := 0
	for x := b.Size.Width - 1; x >= 0; x-- {
		c := b.GetChar(Position{X: x, Y: y})
		if !c.IsInvisible() {
			length = x + 1
			break
		}
	}
	for _, t := range b.Tags {
		if t.IsEnabled && t.Position.Y == y {
			end := t.Position.X + t.Length
			if end > length {
				length = end
			}
		}
	}
	if length > b.Size.Width {
		length = b.Size.Width
	}
	return length
}

// PushScrollback appends a line to the scrollback ring, evicting the
// oldest line once MaxScrollbackLines is exceeded (0 means unlimited).
func (b *Buffer) PushScrollback(l *Line) {
	b.scrollback = append(b.scrollback, l)
	if b.maxScrollbackLines > 0 && len(b.scrollback) > b.maxScrollbackLines {
		b.scrollback = b.scrollback[len(b.scrollback)-b.maxScrollbackLines:]
	}
}

// SetMaxScrollbackLines sets the cap and immediately trims any excess.
func (b *Buffer) SetMaxScrollbackLines(n int) {
	b.maxScrollbackLines = n
	if n > 0 && len(b.scrollback) > n {
		b.scrollback = b.scrollback[len(b.scrollback)-n:]
	}
}

// Scrollback returns the retained scrollback lines, oldest first.
func (b *Buffer) Scrollback() []*Line { return b.scrollback }

// ResetTerminal clears layer 0, resets the caret, and reinitializes
// TerminalState — the effect of RIS (ESC c).
func (b *Buffer) ResetTerminal() {
	b.Layers[0] = NewLayer("Background", b.Size)
	b.Layers[0].Role = LayerRoleBackground
	b.Caret = NewCaret()
	b.TerminalState = NewTerminalState(b.Size.Width, b.Size.Height)
}

// ClearScreen blanks layer 0 in place (used by ED 2J), leaving the caret
// untouched.
func (b *Buffer) ClearScreen() {
	b.Layers[0] = NewLayer(b.Layers[0].Title, b.Layers[0].Size())
	b.Layers[0].Role = LayerRoleBackground
	b.TerminalState.ClearedScreen = true
}
