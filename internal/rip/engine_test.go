package rip

import "testing"

func TestDecodeLineFields(t *testing.T) {
	cmd, err := Decode("L00000A0A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Kind != CmdLine {
		t.Fatalf("expected CmdLine, got %v", cmd.Kind)
	}
	if cmd.X1 != 0 || cmd.Y1 != 0 || cmd.X2 != 10 || cmd.Y2 != 10 {
		t.Fatalf("unexpected fields: %+v", cmd)
	}
}

func TestDecodePolygonVariableLength(t *testing.T) {
	cmd, err := Decode("P03" + "0000" + "0A00" + "0A0A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Kind != CmdPolygon {
		t.Fatalf("expected CmdPolygon, got %v", cmd.Kind)
	}
	if len(cmd.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(cmd.Points))
	}
	if cmd.Points[1].X != 10 || cmd.Points[1].Y != 0 {
		t.Fatalf("unexpected point 1: %+v", cmd.Points[1])
	}
}

func TestDecodeUnknownPreservesRaw(t *testing.T) {
	cmd, err := Decode("Zfoo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Kind != CmdUnknown || cmd.Raw != "Zfoo" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestEngineLineDrawsPenColor(t *testing.T) {
	e := NewEngine(20, 20)
	e.Feed(Command{Kind: CmdColor, Color: 15})
	e.Feed(Command{Kind: CmdLine, X1: 0, Y1: 0, X2: 10, Y2: 0})

	if px := e.pixelAt(5, 0); px != ([4]byte{255, 255, 255, 255}) {
		t.Fatalf("expected white pixel on the line, got %v", px)
	}
	if px := e.pixelAt(5, 5); px != ([4]byte{0, 0, 0, 0}) {
		t.Fatalf("expected untouched pixel off the line, got %v", px)
	}
}

func TestEngineBarFillsInterior(t *testing.T) {
	e := NewEngine(20, 20)
	e.Feed(Command{Kind: CmdFillStyle, Mode: 1, Color: 4})
	e.Feed(Command{Kind: CmdBar, X1: 2, Y1: 2, X2: 8, Y2: 8})

	want := colorFromIndex(4)
	if px := e.pixelAt(5, 5); px != want {
		t.Fatalf("expected fill color at bar interior, got %v", px)
	}
}

func TestDecodeLineStyleFields(t *testing.T) {
	// style=04 (User), user_pat=00FF, thick=02
	cmd, err := Decode("=" + "04" + "00FF" + "02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Kind != CmdLineStyle {
		t.Fatalf("expected CmdLineStyle, got %v", cmd.Kind)
	}
	if cmd.Mode != 4 || cmd.Pattern != 0xFF || cmd.Thickness != 2 {
		t.Fatalf("unexpected fields: %+v", cmd)
	}
}

func TestEngineLineStyleDottedSkipsPixels(t *testing.T) {
	e := NewEngine(20, 20)
	e.Feed(Command{Kind: CmdColor, Color: 15})
	e.Feed(Command{Kind: CmdLineStyle, Mode: 1, Thickness: 1}) // Dotted: 0xCCCC
	e.Feed(Command{Kind: CmdLine, X1: 0, Y1: 0, X2: 15, Y2: 0})

	white := [4]byte{255, 255, 255, 255}
	blank := [4]byte{0, 0, 0, 0}
	if px := e.pixelAt(2, 0); px != white {
		t.Fatalf("expected pixel 2 set by dotted mask 0xCCCC, got %v", px)
	}
	if px := e.pixelAt(0, 0); px != blank {
		t.Fatalf("expected pixel 0 cleared by dotted mask 0xCCCC, got %v", px)
	}
}

func TestEngineButtonChiselDrawsNestedBevel(t *testing.T) {
	e := NewEngine(40, 40)
	e.Feed(Command{Kind: CmdButton, X1: 2, Y1: 2, X2: 30, Y2: 20, Flags: buttonChisel})

	blank := [4]byte{0, 0, 0, 0}
	if px := e.pixelAt(2, 2); px == blank {
		t.Fatal("expected outer bevel corner to be drawn")
	}
	xi, yi := chiselInset(18)
	if px := e.pixelAt(2+xi, 2+yi); px == blank {
		t.Fatal("expected inner chiseled bevel to be drawn")
	}
}

func TestEngineButtonPlainDrawsNothing(t *testing.T) {
	e := NewEngine(20, 20)
	e.Feed(Command{Kind: CmdButton, X1: 2, Y1: 2, X2: 15, Y2: 10, Flags: buttonPlain})

	blank := [4]byte{0, 0, 0, 0}
	if px := e.pixelAt(2, 2); px != blank {
		t.Fatalf("expected plain button to draw no border, got %v", px)
	}
}

func TestEngineFloodFillBoundedByPenLine(t *testing.T) {
	e := NewEngine(10, 10)
	e.Feed(Command{Kind: CmdColor, Color: 15})
	e.Feed(Command{Kind: CmdLine, X1: 2, Y1: 2, X2: 7, Y2: 2})
	e.Feed(Command{Kind: CmdLine, X1: 7, Y1: 2, X2: 7, Y2: 7})
	e.Feed(Command{Kind: CmdLine, X1: 7, Y1: 7, X2: 2, Y2: 7})
	e.Feed(Command{Kind: CmdLine, X1: 2, Y1: 7, X2: 2, Y2: 2})
	e.Feed(Command{Kind: CmdFillStyle, Mode: 1, Color: 9})
	e.Feed(Command{Kind: CmdFloodFill, X1: 4, Y1: 4})

	want := colorFromIndex(9)
	if px := e.pixelAt(4, 4); px != want {
		t.Fatalf("expected fill color inside the bounded region, got %v", px)
	}
	if px := e.pixelAt(0, 0); px != ([4]byte{0, 0, 0, 0}) {
		t.Fatalf("expected outside region untouched, got %v", px)
	}
}
