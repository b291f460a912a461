package igs

import "testing"

func TestEngineDrawLineUsesResolutionSurface(t *testing.T) {
	e := NewEngine(ResolutionLow)
	if e.Width != 320 || e.Height != 200 {
		t.Fatalf("expected 320x200 low-resolution surface, got %dx%d", e.Width, e.Height)
	}
	e.Feed(Command{Kind: CmdSetPenColor, Params: []int{0, 15}})
	e.Feed(Command{Kind: CmdDrawLine, Params: []int{0, 0, 10, 0}})
}

func TestEngineSetResolutionReallocatesSurface(t *testing.T) {
	e := NewEngine(ResolutionLow)
	e.Feed(Command{Kind: CmdSetResolution, Params: []int{2}})
	if e.Width != 640 || e.Height != 400 {
		t.Fatalf("expected 640x400 high-resolution surface, got %dx%d", e.Width, e.Height)
	}
}

func TestEngineLineDrawToTracksCursor(t *testing.T) {
	e := NewEngine(ResolutionLow)
	e.Feed(Command{Kind: CmdLineDrawTo, Params: []int{5, 5}})
	if e.cursorX != 5 || e.cursorY != 5 {
		t.Fatalf("expected cursor at (5,5), got (%d,%d)", e.cursorX, e.cursorY)
	}
}

func TestCircleYRadiusUsesResolutionAspectRatio(t *testing.T) {
	low := NewEngine(ResolutionLow)
	if got := low.circleYRadius(372); got != 338 {
		t.Fatalf("expected low-res y-radius 338, got %d", got)
	}
	med := NewEngine(ResolutionMedium)
	if got := med.circleYRadius(372); got != 169 {
		t.Fatalf("expected medium-res y-radius 169, got %d", got)
	}
	high := NewEngine(ResolutionHigh)
	if got := high.circleYRadius(372); got != 372 {
		t.Fatalf("expected high-res y-radius 372, got %d", got)
	}
}

func TestEngineEllipseFillsWithoutBorderByDefault(t *testing.T) {
	e := NewEngine(ResolutionLow)
	e.Feed(Command{Kind: CmdAttributeForFills, Params: []int{1, 0, 0}}) // solid, no border
	e.Feed(Command{Kind: CmdSetPenColor, Params: []int{0, 9}})
	e.Feed(Command{Kind: CmdEllipse, Params: []int{50, 50, 10, 10}})

	blank := [4]byte{0, 0, 0, 0}
	if px := e.At(50, 50); px == blank {
		t.Fatal("expected ellipse interior to be filled")
	}
}

func TestEngineArcDrawsPartialSweepNotFullEllipse(t *testing.T) {
	e := NewEngine(ResolutionLow)
	e.Feed(Command{Kind: CmdSetPenColor, Params: []int{0, 15}})
	e.Feed(Command{Kind: CmdArc, Params: []int{50, 50, 20, 0, 90}})

	blank := [4]byte{0, 0, 0, 0}
	// A point on the opposite side of the ellipse from the 0-90 degree
	// sweep should be untouched; the old full-ellipse collapse would
	// have drawn here too.
	if px := e.At(30, 50); px != blank {
		t.Fatalf("expected arc to leave the far side of the ellipse untouched, got %v", px)
	}
}

func TestEngineDrawingModeXorCombinesFill(t *testing.T) {
	e := NewEngine(ResolutionLow)
	e.Feed(Command{Kind: CmdAttributeForFills, Params: []int{1, 0, 0}})
	e.Feed(Command{Kind: CmdSetPenColor, Params: []int{0, 15}})
	e.Feed(Command{Kind: CmdFilledRectangle, Params: []int{0, 0, 5, 5}})
	before := e.At(2, 2)

	e.Feed(Command{Kind: CmdDrawingMode, Params: []int{3}}) // Xor
	e.Feed(Command{Kind: CmdFilledRectangle, Params: []int{0, 0, 5, 5}})
	after := e.At(2, 2)

	if before == after {
		t.Fatalf("expected Xor fill to change the pixel, got same value %v twice", before)
	}
}

func TestEngineGrabScreenMemoryRoundTrip(t *testing.T) {
	e := NewEngine(ResolutionLow)
	e.Feed(Command{Kind: CmdAttributeForFills, Params: []int{1, 0, 0}})
	e.Feed(Command{Kind: CmdSetPenColor, Params: []int{0, 12}})
	e.Feed(Command{Kind: CmdFilledRectangle, Params: []int{0, 0, 9, 9}})
	src := e.At(3, 3)

	// mode 1: screen-to-memory, grabbing (0,0)-(9,9).
	e.Feed(Command{Kind: CmdGrabScreen, Params: []int{1, int(DrawReplace), 0, 0, 9, 9}})
	// mode 2: whole-memory-to-screen at (20,20).
	e.Feed(Command{Kind: CmdGrabScreen, Params: []int{2, int(DrawReplace), 20, 20}})

	if got := e.At(23, 23); got != src {
		t.Fatalf("expected blitted pixel %v at destination, got %v", src, got)
	}
}
