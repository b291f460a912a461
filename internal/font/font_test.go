package font

import "testing"

func TestSetGlyphRejectsWrongHeight(t *testing.T) {
	f := New("test", 8, 8)
	if err := f.SetGlyph('A', []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for mismatched row count")
	}
}

func TestPixelReadsMSBFirst(t *testing.T) {
	f := New("test", 8, 1)
	// 0b10000001 -> leftmost and rightmost pixels set
	if err := f.SetGlyph('A', []byte{0x81}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Pixel('A', 0, 0) {
		t.Fatalf("expected pixel (0,0) set")
	}
	if f.Pixel('A', 1, 0) {
		t.Fatalf("expected pixel (1,0) unset")
	}
	if !f.Pixel('A', 7, 0) {
		t.Fatalf("expected pixel (7,0) set")
	}
}

func TestLoadPSF2RoundTrip(t *testing.T) {
	f := New("roundtrip", 8, 8)
	for ch := rune(0); ch < 4; ch++ {
		rows := make([]byte, 8)
		for i := range rows {
			rows[i] = byte(ch) + byte(i)
		}
		if err := f.SetGlyph(ch, rows); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	blob, err := ToPSF2(f)
	if err != nil {
		t.Fatalf("ToPSF2: %v", err)
	}
	loaded, err := LoadPSF2("roundtrip", blob)
	if err != nil {
		t.Fatalf("LoadPSF2: %v", err)
	}
	if loaded.Len() != f.Len() {
		t.Fatalf("expected %d glyphs, got %d", f.Len(), loaded.Len())
	}
	for ch := rune(0); ch < 4; ch++ {
		want, _ := f.Glyph(ch)
		got, ok := loaded.Glyph(ch)
		if !ok {
			t.Fatalf("missing glyph %d after round trip", ch)
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("glyph %d row %d mismatch: want %x got %x", ch, i, want[i], got[i])
			}
		}
	}
}

func TestLoadYAFFParsesGlyphs(t *testing.T) {
	src := `0x41:
    .XXX.
    X...X
    XXXXX
    X...X
    X...X

0x42:
    XXXX.
    X...X
    XXXX.
    X...X
    XXXX.
`
	f, err := LoadYAFF("test", []byte(src))
	if err != nil {
		t.Fatalf("LoadYAFF: %v", err)
	}
	if f.Height != 5 || f.Width != 5 {
		t.Fatalf("expected 5x5 glyphs, got %dx%d", f.Width, f.Height)
	}
	if !f.Pixel('A', 1, 0) {
		t.Fatalf("expected top-middle pixel of A set")
	}
	if f.Pixel('A', 0, 0) {
		t.Fatalf("expected top-left pixel of A unset")
	}
}

func TestLoadRawRejectsWrongSize(t *testing.T) {
	if _, err := LoadRaw("test", 8, make([]byte, 100)); err == nil {
		t.Fatalf("expected error for wrong-sized raw blob")
	}
}

func TestLoadRawProducesAllCP437Slots(t *testing.T) {
	data := make([]byte, 256*16)
	f, err := LoadRaw("vga16", 16, data)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if f.Len() != 256 {
		t.Fatalf("expected 256 glyphs, got %d", f.Len())
	}
}
