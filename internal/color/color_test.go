package color

import "testing"

func TestTransparentSentinel(t *testing.T) {
	c := Transparent
	if !c.IsTransparent() {
		t.Fatalf("expected Transparent to report IsTransparent")
	}
	if RGB(1, 2, 3).IsTransparent() {
		t.Fatalf("RGB color should not be transparent")
	}
}

func TestPaletteInsertIsIdempotent(t *testing.T) {
	p := New(ModeRGB)
	c := RGB(10, 20, 30)

	i1, err := p.InsertColor(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i2, err := p.InsertColor(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i1 != i2 {
		t.Fatalf("expected same index on repeat insert, got %d and %d", i1, i2)
	}
	if p.Len() != 1 {
		t.Fatalf("expected palette length 1, got %d", p.Len())
	}
}

func TestFixed16RejectsOverflow(t *testing.T) {
	p := DOSDefault()
	if p.Len() != 16 {
		t.Fatalf("expected 16 default colors, got %d", p.Len())
	}
	if _, err := p.InsertColor(RGB(1, 1, 1)); err == nil {
		t.Fatalf("expected PaletteFull error inserting a 17th color in Fixed16 mode")
	}
}

func TestSetColorRespectsFixed16Bound(t *testing.T) {
	p := DOSDefault()
	if err := p.SetColor(0, RGB(9, 9, 9)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.SetColor(20, RGB(1, 1, 1)); err == nil {
		t.Fatalf("expected error setting out-of-range index in Fixed16 mode")
	}
}
