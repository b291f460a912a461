package buffer

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewLayerAssignsDistinctIDs(t *testing.T) {
	a := NewLayer("a", Size{Width: 4, Height: 2})
	b := NewLayer("b", Size{Width: 4, Height: 2})
	if a.ID == (uuid.UUID{}) {
		t.Fatal("expected a non-zero layer ID")
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct layers to get distinct IDs")
	}
}

func TestLayerCloneKeepsSourceID(t *testing.T) {
	l := NewLayer("floating", Size{Width: 4, Height: 2})
	cp := l.Clone()
	if cp.ID != l.ID {
		t.Fatal("expected Clone to preserve the source layer's ID")
	}
}
