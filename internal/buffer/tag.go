package buffer

import (
	"github.com/google/uuid"

	"github.com/stlalpha/icyengine/internal/attr"
)

// TagAlignment selects how a tag's preview text is justified within its
// reserved width.
type TagAlignment int

const (
	TagAlignLeft TagAlignment = iota
	TagAlignCenter
	TagAlignRight
)

// TagPlacement selects whether a tag is positioned inline with surrounding
// text or by an explicit cursor move.
type TagPlacement int

const (
	TagPlacementInText TagPlacement = iota
	TagPlacementWithGotoXY
)

// TagRole distinguishes a plain display placeholder from a hyperlink.
type TagRole int

const (
	TagRoleDisplaycode TagRole = iota
	TagRoleHyperlink
)

// Tag is a user-defined rectangular placeholder: it shows a preview glyph
// run but carries a separate replacement string for export.
type Tag struct {
	ID               uuid.UUID
	IsEnabled        bool
	Preview          string
	ReplacementValue string
	Position         Position
	Length           int
	Alignment        TagAlignment
	Placement        TagPlacement
	Role             TagRole
	Attribute        attr.TextAttribute
}

// NewTag builds an enabled tag at pos reserving width cells, identified
// by a fresh ID so later edits (retarget, delete) can reference it
// without relying on its position staying put.
func NewTag(pos Position, width int, preview, replacement string, attribute attr.TextAttribute) Tag {
	return Tag{
		ID:               uuid.New(),
		IsEnabled:        true,
		Preview:          preview,
		ReplacementValue: replacement,
		Position:         pos,
		Length:           width,
		Attribute:        attribute,
	}
}

// Contains reports whether pos falls within the tag's reserved span on its
// row.
func (t Tag) Contains(pos Position) bool {
	return pos.Y == t.Position.Y && pos.X >= t.Position.X && pos.X < t.Position.X+t.Length
}

// synthesizedChar returns the glyph the tag displays at pos, honoring
// alignment within its reserved width and forcing the underline bit on for
// hyperlink tags.
func (t Tag) synthesizedChar(pos Position) attr.AttributedChar {
	preview := []rune(t.Preview)
	offset := pos.X - t.Position.X

	pad := t.Length - len(preview)
	if pad < 0 {
		pad = 0
	}
	var leading int
	switch t.Alignment {
	case TagAlignCenter:
		leading = pad / 2
	case TagAlignRight:
		leading = pad
	default:
		leading = 0
	}

	a := t.Attribute
	if t.Role == TagRoleHyperlink {
		a.Set(attr.Underlined)
	}

	idx := offset - leading
	if idx < 0 || idx >= len(preview) {
		return attr.AttributedChar{Ch: ' ', Attr: a}
	}
	return attr.AttributedChar{Ch: preview[idx], Attr: a}
}
