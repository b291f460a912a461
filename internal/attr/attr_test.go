package attr

import "testing"

func TestSetGetDoesNotDisturbOtherBits(t *testing.T) {
	a := New(1, 2)
	a.Set(Bold)
	a.Set(Underlined)
	if !a.Has(Bold) || !a.Has(Underlined) {
		t.Fatalf("expected both Bold and Underlined set")
	}
	a.Clear(Bold)
	if a.Has(Bold) {
		t.Fatalf("Bold should be cleared")
	}
	if !a.Has(Underlined) {
		t.Fatalf("clearing Bold should not disturb Underlined")
	}
}

func TestAttributeEquality(t *testing.T) {
	a := New(1, 2)
	a.Set(Bold)
	b := New(1, 2)
	b.Set(Bold)
	if a != b {
		t.Fatalf("expected structurally equal attributes to compare equal")
	}
}

func TestInvisibleComposesAsNoChange(t *testing.T) {
	c := Invisible()
	if !c.IsInvisible() {
		t.Fatalf("expected invisible sentinel")
	}
	if c.Ch != 0 {
		t.Fatalf("expected zero glyph")
	}
}
