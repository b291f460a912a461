package parser

// ViewdataParser translates a Prestel/Viewdata (World System Teletext)
// byte stream: control codes below 0x20 select a display attribute that
// applies from the next character cell onward rather than changing the
// cell it appears in, matching how teletext alpha/graphics attributes work.
type ViewdataParser struct {
	attr    byte // last attribute control code seen; Parse does not read it back
	hasAttr bool
}

// NewViewdataParser returns a Viewdata parser.
func NewViewdataParser() *ViewdataParser { return &ViewdataParser{} }

const (
	vdAlphaBlack     = 0x00
	vdAlphaRed       = 0x01
	vdAlphaGreen     = 0x02
	vdAlphaYellow    = 0x03
	vdAlphaBlue      = 0x04
	vdAlphaMagenta   = 0x05
	vdAlphaCyan      = 0x06
	vdAlphaWhite     = 0x07
	vdFlash          = 0x08
	vdSteady         = 0x09
	vdNormalHeight   = 0x0c
	vdDoubleHeight   = 0x0d
	vdGraphicsBlack  = 0x10
	vdGraphicsRed    = 0x11
	vdGraphicsGreen  = 0x12
	vdGraphicsYellow = 0x13
	vdGraphicsBlue   = 0x14
	vdGraphicsMagent = 0x15
	vdGraphicsCyan   = 0x16
	vdGraphicsWhite  = 0x17
	vdConcealed      = 0x18
)

var viewdataColors = map[byte]uint32{
	vdAlphaBlack: 0, vdAlphaRed: 1, vdAlphaGreen: 2, vdAlphaYellow: 3,
	vdAlphaBlue: 4, vdAlphaMagenta: 5, vdAlphaCyan: 6, vdAlphaWhite: 7,
	vdGraphicsBlack: 0, vdGraphicsRed: 1, vdGraphicsGreen: 2, vdGraphicsYellow: 3,
	vdGraphicsBlue: 4, vdGraphicsMagent: 5, vdGraphicsCyan: 6, vdGraphicsWhite: 7,
}

// Parse feeds one Viewdata byte to sink.
func (p *ViewdataParser) Parse(sink Sink, b byte) {
	switch {
	case b == 0x0d:
		sink.Emit(Command{Kind: CmdMoveCursorColumn, Int1: 0})
		sink.Emit(Command{Kind: CmdIndex})
	case b == 0x0c:
		sink.Emit(Command{Kind: CmdEraseInDisplay, Int1: 2})
		sink.Emit(Command{Kind: CmdMoveCursorAbsolute, Int1: 0, Int2: 0})
	case b == 0x1f: // cursor right
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: 1, Int2: 0})
	case b == 0x1e: // cursor home
		sink.Emit(Command{Kind: CmdMoveCursorAbsolute, Int1: 0, Int2: 0})
	case b < 0x20:
		if fg, ok := viewdataColors[b]; ok {
			sink.Emit(Command{Kind: CmdSetForeground, Int1: int(fg)})
		}
		p.attr, p.hasAttr = b, true
	default:
		sink.Print([]rune{rune(b)}, false)
	}
}
