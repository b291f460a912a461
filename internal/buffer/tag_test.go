package buffer

import (
	"testing"

	"github.com/google/uuid"

	"github.com/stlalpha/icyengine/internal/attr"
)

func TestTagOverridesLayerComposition(t *testing.T) {
	b := New(Size{Width: 10, Height: 2}, nil)
	b.Layers[0].SetChar(Position{X: 2, Y: 0}, attr.AttributedChar{Ch: 'Z', Attr: attr.New(1, 0)})
	b.ShowTags = true
	b.Tags = append(b.Tags, Tag{
		IsEnabled: true,
		Preview:   "AB",
		Position:  Position{X: 2, Y: 0},
		Length:    2,
	})

	got := b.GetChar(Position{X: 2, Y: 0})
	if got.Ch != 'A' {
		t.Fatalf("expected tag preview to override layer content, got %q", got.Ch)
	}
}

func TestHyperlinkTagForcesUnderline(t *testing.T) {
	tag := Tag{
		IsEnabled: true,
		Preview:   "link",
		Position:  Position{X: 0, Y: 0},
		Length:    4,
		Role:      TagRoleHyperlink,
	}
	c := tag.synthesizedChar(Position{X: 0, Y: 0})
	if !c.Attr.Has(attr.Underlined) {
		t.Fatalf("expected hyperlink tag to force the underline bit")
	}
}

func TestTagDisabledDoesNotIntercept(t *testing.T) {
	b := New(Size{Width: 10, Height: 2}, nil)
	b.Layers[0].SetChar(Position{X: 2, Y: 0}, attr.AttributedChar{Ch: 'Z', Attr: attr.New(1, 0)})
	b.ShowTags = true
	b.Tags = append(b.Tags, Tag{
		IsEnabled: false,
		Preview:   "AB",
		Position:  Position{X: 2, Y: 0},
		Length:    2,
	})
	got := b.GetChar(Position{X: 2, Y: 0})
	if got.Ch != 'Z' {
		t.Fatalf("expected disabled tag to not intercept, got %q", got.Ch)
	}
}

func TestNewTagAssignsDistinctIDs(t *testing.T) {
	a := NewTag(Position{X: 0, Y: 0}, 3, "AB", "replacement", attr.New(1, 0))
	b := NewTag(Position{X: 0, Y: 0}, 3, "AB", "replacement", attr.New(1, 0))
	if a.ID == (uuid.UUID{}) {
		t.Fatal("expected a non-zero tag ID")
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct tags to get distinct IDs")
	}
	if !a.IsEnabled {
		t.Fatal("expected NewTag to produce an enabled tag")
	}
}
