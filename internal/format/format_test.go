package format

import (
	"strings"
	"testing"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/color"
	"github.com/stlalpha/icyengine/internal/errs"
)

func TestRegistryUnknownExtension(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Load(".zzz", "x.zzz", nil, LoadOptions{}); err == nil {
		t.Fatal("expected error for unknown extension")
	} else if !strings.Contains(err.Error(), `load "x.zzz"`) {
		t.Fatalf("expected wrapped LoadingError, got %v", err)
	} else if _, ok := err.(*errs.LoadingError); !ok {
		t.Fatalf("expected *errs.LoadingError, got %T", err)
	}
}

func TestRegistryDispatchesByExtension(t *testing.T) {
	r := NewRegistry()
	buf := buffer.New(buffer.Size{Width: 4, Height: 2}, nil)
	buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'A', Attr: attr.New(7, 0)})

	data, err := r.Save(".asc", "out.asc", buf, SaveOptions{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := r.Load(".asc", "out.asc", data, LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c := got.GetChar(buffer.Position{X: 0, Y: 0}); c.Ch != 'A' {
		t.Fatalf("expected 'A', got %q", c.Ch)
	}
}

func TestAnsiSaveLoadRoundTrips(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 3, Height: 1}, nil)
	buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'X', Attr: attr.New(4, 0)})
	buf.Layers[0].SetChar(buffer.Position{X: 1, Y: 0}, attr.AttributedChar{Ch: 'Y', Attr: attr.New(4, 0)})
	buf.Layers[0].SetChar(buffer.Position{X: 2, Y: 0}, attr.AttributedChar{Ch: 'Z', Attr: attr.New(2, 0)})

	data, err := ansiCodec{}.Save(buf, SaveOptions{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := ansiCodec{}.Load(data, LoadOptions{DefaultSize: buffer.Size{Width: 3, Height: 1}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for x, want := range []rune{'X', 'Y', 'Z'} {
		if c := out.GetChar(buffer.Position{X: x, Y: 0}); c.Ch != want {
			t.Fatalf("cell %d: want %q, got %q", x, want, c.Ch)
		}
	}
}

func TestAnsiWriteSGRCoalescesRepeatedAttribute(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 2, Height: 1}, nil)
	buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'A', Attr: attr.New(4, 0)})
	buf.Layers[0].SetChar(buffer.Position{X: 1, Y: 0}, attr.AttributedChar{Ch: 'B', Attr: attr.New(4, 0)})

	data, err := ansiCodec{}.Save(buf, SaveOptions{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Count(string(data), "\x1b[") != 1 {
		t.Fatalf("expected exactly one SGR sequence for unchanged attribute run, got %q", data)
	}
}

func TestBinRoundTripsCharAndAttribute(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 2, Height: 2}, nil)
	buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'Q', Attr: attr.New(12, 3)})

	data, err := binCodec{}.Save(buf, SaveOptions{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := binCodec{}.Load(data, LoadOptions{DefaultSize: buffer.Size{Width: 2}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := out.GetChar(buffer.Position{X: 0, Y: 0})
	if c.Ch != 'Q' || c.Attr.Foreground != 12 || c.Attr.Background != 3 {
		t.Fatalf("unexpected cell: %+v", c)
	}
}

func TestXBinRoundTripsRawBody(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 2, Height: 1}, nil)
	buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'H', Attr: attr.New(15, 1)})
	buf.Layers[0].SetChar(buffer.Position{X: 1, Y: 0}, attr.AttributedChar{Ch: 'I', Attr: attr.New(15, 1)})

	data, err := xbinCodec{}.Save(buf, SaveOptions{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if string(data[:5]) != xbinMagic {
		t.Fatalf("missing XBin magic, got %q", data[:5])
	}
	out, err := xbinCodec{}.Load(data, LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Size.Width != 2 || out.Size.Height != 1 {
		t.Fatalf("unexpected size: %+v", out.Size)
	}
	if c := out.GetChar(buffer.Position{X: 0, Y: 0}); c.Ch != 'H' {
		t.Fatalf("cell 0: got %q", c.Ch)
	}
	if c := out.GetChar(buffer.Position{X: 1, Y: 0}); c.Ch != 'I' {
		t.Fatalf("cell 1: got %q", c.Ch)
	}
}

func TestXBinRLERoundTripsRepeatedRun(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 4, Height: 1}, nil)
	for x := 0; x < 4; x++ {
		buf.Layers[0].SetChar(buffer.Position{X: x, Y: 0}, attr.AttributedChar{Ch: '*', Attr: attr.New(7, 0)})
	}
	body := decodeXBinRLE([]byte{0xC3, '*', binAttributeByte(attr.New(7, 0))}, 4)
	if len(body) != 4 {
		t.Fatalf("expected 4 decoded cells, got %d", len(body))
	}
	for _, cell := range body {
		if cell.ch != '*' {
			t.Fatalf("expected '*' repeated, got %q", cell.ch)
		}
	}
}

func TestIcyDrawRoundTripsLayersAndPalette(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 2, Height: 2}, nil)
	buf.Palette = color.DOSDefault()
	buf.Layers[0].SetChar(buffer.Position{X: 1, Y: 1}, attr.AttributedChar{Ch: 'Z', Attr: attr.New(9, 0)})

	data, err := icyDrawCodec{}.Save(buf, SaveOptions{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := icyDrawCodec{}.Load(data, LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c := out.GetChar(buffer.Position{X: 1, Y: 1}); c.Ch != 'Z' || c.Attr.Foreground != 9 {
		t.Fatalf("unexpected cell: %+v", c)
	}
	if len(out.Layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(out.Layers))
	}
}

func TestAvatarDecodesRepeatCommand(t *testing.T) {
	a := attr.New(4, 0)
	body := []byte{avatarEscape, avatarRepeat, binAttributeByte(a), 'Q', 3}
	out, err := avatarCodec{}.Load(body, LoadOptions{DefaultSize: buffer.Size{Width: 10, Height: 1}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for x := 0; x < 3; x++ {
		if c := out.GetChar(buffer.Position{X: x, Y: 0}); c.Ch != 'Q' {
			t.Fatalf("cell %d: want 'Q', got %q", x, c.Ch)
		}
	}
}

func TestPCBoardDecodesColorCode(t *testing.T) {
	body := []byte("@X1FHi")
	out, err := pcboardCodec{}.Load(body, LoadOptions{DefaultSize: buffer.Size{Width: 10, Height: 1}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := out.GetChar(buffer.Position{X: 0, Y: 0})
	if c.Ch != 'H' || c.Attr.Foreground != 0xF || c.Attr.Background != 0x1 {
		t.Fatalf("unexpected cell: %+v", c)
	}
}

func TestPCBoardSkipsUnrecognizedToken(t *testing.T) {
	body := []byte("@POFF@Hi")
	out, err := pcboardCodec{}.Load(body, LoadOptions{DefaultSize: buffer.Size{Width: 10, Height: 1}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c := out.GetChar(buffer.Position{X: 0, Y: 0}); c.Ch != 'H' {
		t.Fatalf("want 'H' after skipped token, got %q", c.Ch)
	}
}

func TestCBMSeqLoadSetsPetsciiBufferType(t *testing.T) {
	out, err := cbmSeqCodec{}.Load([]byte("HELLO"), LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.BufferType != buffer.BufferPetscii {
		t.Fatalf("expected BufferPetscii, got %v", out.BufferType)
	}
}

func TestTundraReusesAnsiCodec(t *testing.T) {
	buf := buffer.New(buffer.Size{Width: 1, Height: 1}, nil)
	buf.Layers[0].SetChar(buffer.Position{X: 0, Y: 0}, attr.AttributedChar{Ch: 'T', Attr: attr.New(7, 0)})
	data, err := tundraCodec{}.Save(buf, SaveOptions{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := tundraCodec{}.Load(data, LoadOptions{DefaultSize: buffer.Size{Width: 1, Height: 1}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c := out.GetChar(buffer.Position{X: 0, Y: 0}); c.Ch != 'T' {
		t.Fatalf("want 'T', got %q", c.Ch)
	}
}
