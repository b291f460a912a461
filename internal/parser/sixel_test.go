package parser

import "testing"

func TestDecodeSixelSingleColumn(t *testing.T) {
	// color 1 defined as pure red, then a column with rows 0 and 1 set.
	data := []byte("#1;2;100;0;0#1" + string(rune('?'+0x03)))
	s := DecodeSixel(data)
	if s.Width == 0 || s.Height == 0 {
		t.Fatalf("expected a decoded raster, got %+v", s)
	}
	if s.Pixels[0] != 255 || s.Pixels[1] != 0 || s.Pixels[2] != 0 {
		t.Fatalf("expected red pixel at (0,0), got %v", s.Pixels[:4])
	}
}

func TestDecodeSixelCarriageReturnResetsColumn(t *testing.T) {
	data := []byte("#0;2;100;100;100#0??$??")
	s := DecodeSixel(data)
	if s.Width != 2 {
		t.Fatalf("expected width 2 after carriage return replay, got %d", s.Width)
	}
}
