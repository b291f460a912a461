package parser

import (
	"strconv"
	"strings"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/errs"
)

// ansiState is the ANSI/VT escape state machine's current mode, named
// after the original engine's EngineState variants.
type ansiState int

const (
	stDefault ansiState = iota
	stEscape
	stCSI
	stOSC
	stOSCEscape
	stDCS
	stDCSData
	stAPS
	stAPSEscape
	stMusic
	stRIP
)

// AnsiParser recognizes ANSI/VT escape sequences and reports them to a
// Sink. It holds no Buffer reference; Apply (via a Sink) is what mutates
// state, so the same parser instance can feed a DirectSink or a deferring
// one.
type AnsiParser struct {
	state   ansiState
	private byte // '?', '=', '>', '!', or 0
	params  []int
	curNum  strings.Builder
	hasNum  bool

	oscBuf strings.Builder

	dcsParams       []int
	dcsIntermediate strings.Builder
	dcsFinal        byte
	dcsData         []byte

	apsData []byte

	musicBuf strings.Builder
	ripBuf   strings.Builder

	inverseVideo bool
	lastChar     rune
}

// NewAnsiParser returns a parser positioned at the start of a fresh
// stream.
func NewAnsiParser() *AnsiParser { return &AnsiParser{} }

// Parse advances the state machine by one byte, reporting any completed
// effect to sink.
func (p *AnsiParser) Parse(sink Sink, b byte) {
	switch p.state {
	case stDefault:
		p.parseDefault(sink, b)
	case stEscape:
		p.parseEscape(sink, b)
	case stCSI:
		p.parseCSI(sink, b)
	case stOSC:
		p.parseOSC(sink, b)
	case stOSCEscape:
		p.parseOSCEscape(sink, b)
	case stDCS:
		p.parseDCSParams(sink, b)
	case stDCSData:
		p.parseDCSData(sink, b)
	case stAPS:
		p.parseAPS(sink, b)
	case stAPSEscape:
		p.parseAPSEscape(sink, b)
	case stMusic:
		p.parseMusic(sink, b)
	case stRIP:
		p.parseRIP(sink, b)
	}
}

func (p *AnsiParser) parseDefault(sink Sink, b byte) {
	switch b {
	case 0x1b:
		p.resetSequence()
		p.state = stEscape
	case '\r':
		sink.Emit(Command{Kind: CmdMoveCursorColumn, Int1: 0})
	case '\n':
		sink.Emit(Command{Kind: CmdIndex})
	case '\a':
		sink.Bell()
	case '\b':
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: -1, Int2: 0})
	case '\t':
		sink.Emit(Command{Kind: CmdAdvanceTab})
	case '|':
		p.state = stRIP
		p.ripBuf.Reset()
	default:
		p.lastChar = rune(b)
		sink.Print([]rune{rune(b)}, p.inverseVideo)
	}
}

func (p *AnsiParser) resetSequence() {
	p.private = 0
	p.params = p.params[:0]
	p.curNum.Reset()
	p.hasNum = false
}

func (p *AnsiParser) parseEscape(sink Sink, b byte) {
	switch b {
	case '[':
		p.state = stCSI
	case ']':
		p.state = stOSC
		p.oscBuf.Reset()
	case 'P':
		p.state = stDCS
		p.dcsParams = p.dcsParams[:0]
		p.dcsIntermediate.Reset()
		p.dcsFinal = 0
		p.dcsData = p.dcsData[:0]
	case '_':
		p.state = stAPS
		p.apsData = p.apsData[:0]
	case 'c':
		sink.Emit(Command{Kind: CmdReset})
		p.state = stDefault
	case 'D':
		sink.Emit(Command{Kind: CmdIndex})
		p.state = stDefault
	case 'M':
		sink.Emit(Command{Kind: CmdReverseIndex})
		p.state = stDefault
	case 'E':
		sink.Emit(Command{Kind: CmdNextLine})
		p.state = stDefault
	case '7':
		sink.Emit(Command{Kind: CmdSaveCursor})
		p.state = stDefault
	case '8':
		sink.Emit(Command{Kind: CmdRestoreCursor})
		p.state = stDefault
	case 'H':
		sink.Emit(Command{Kind: CmdTabSet})
		p.state = stDefault
	default:
		sink.ReportError(&errs.ParserError{Kind: errs.UnsupportedEscapeSequence})
		p.state = stDefault
	}
}

func (p *AnsiParser) pushDigit(b byte) {
	p.curNum.WriteByte(b)
	p.hasNum = true
}

func (p *AnsiParser) commitParam() {
	if p.hasNum {
		n, _ := strconv.Atoi(p.curNum.String())
		p.params = append(p.params, n)
	} else {
		p.params = append(p.params, 0)
	}
	p.curNum.Reset()
	p.hasNum = false
}

func (p *AnsiParser) param(i, def int) int {
	if i >= len(p.params) {
		return def
	}
	if p.params[i] == 0 {
		return def
	}
	return p.params[i]
}

func (p *AnsiParser) paramRaw(i, def int) int {
	if i >= len(p.params) {
		return def
	}
	return p.params[i]
}

func (p *AnsiParser) parseCSI(sink Sink, b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.pushDigit(b)
		return
	case b == ';':
		p.commitParam()
		return
	case b == '?' || b == '=' || b == '>' || b == '!':
		if len(p.params) == 0 && !p.hasNum {
			p.private = b
			return
		}
	}
	p.commitParam()
	p.dispatchCSI(sink, b)
	p.state = stDefault
}

func (p *AnsiParser) dispatchCSI(sink Sink, final byte) {
	switch final {
	case 'A':
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: 0, Int2: -p.param(0, 1)})
	case 'B':
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: 0, Int2: p.param(0, 1)})
	case 'C', 'a':
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: p.param(0, 1), Int2: 0})
	case 'D':
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: -p.param(0, 1), Int2: 0})
	case 'G', '`':
		sink.Emit(Command{Kind: CmdMoveCursorColumn, Int1: p.param(0, 1) - 1})
	case 'd':
		sink.Emit(Command{Kind: CmdMoveCursorLine, Int1: p.param(0, 1) - 1})
	case 'H', 'f':
		sink.Emit(Command{Kind: CmdMoveCursorAbsolute, Int1: p.param(1, 1) - 1, Int2: p.param(0, 1) - 1})
	case 'E':
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: 0, Int2: p.param(0, 1)})
		sink.Emit(Command{Kind: CmdMoveCursorColumn, Int1: 0})
	case 'F':
		sink.Emit(Command{Kind: CmdMoveCursorRelative, Int1: 0, Int2: -p.param(0, 1)})
		sink.Emit(Command{Kind: CmdMoveCursorColumn, Int1: 0})
	case 'J':
		sink.Emit(Command{Kind: CmdEraseInDisplay, Int1: p.param(0, 0)})
	case 'K':
		sink.Emit(Command{Kind: CmdEraseInLine, Int1: p.param(0, 0)})
	case 'X':
		sink.Emit(Command{Kind: CmdEraseCharacters, Int1: p.param(0, 1)})
	case 'L':
		sink.Emit(Command{Kind: CmdInsertLines, Int1: p.param(0, 1)})
	case 'M':
		sink.Emit(Command{Kind: CmdDeleteLines, Int1: p.param(0, 1)})
	case '@':
		sink.Emit(Command{Kind: CmdInsertCharacters, Int1: p.param(0, 1)})
	case 'P':
		sink.Emit(Command{Kind: CmdDeleteCharacters, Int1: p.param(0, 1)})
	case 'S':
		sink.Emit(Command{Kind: CmdScrollUp, Int1: p.param(0, 1)})
	case 'T':
		sink.Emit(Command{Kind: CmdScrollDown, Int1: p.param(0, 1)})
	case 'b':
		sink.Emit(Command{Kind: CmdRepeatLastCharacter, Int1: p.param(0, 1), Int2: int(p.lastChar)})
	case 'r':
		if p.private == '?' {
			break
		}
		top := p.param(0, 1) - 1
		bottom := p.paramRaw(1, 0)
		if bottom == 0 {
			sink.Emit(Command{Kind: CmdSetScrollRegion, Int1: 0, Int2: 0})
		} else {
			sink.Emit(Command{Kind: CmdSetScrollRegion, Int1: top, Int2: bottom - 1})
		}
	case 's':
		sink.Emit(Command{Kind: CmdSaveCursor})
	case 'u':
		sink.Emit(Command{Kind: CmdRestoreCursor})
	case 'g':
		sink.Emit(Command{Kind: CmdTabClear, Int1: p.param(0, 0)})
	case 'q':
		style := p.param(0, 0)
		shape := 0
		blink := true
		switch style {
		case 1, 2:
			shape, blink = 0, style == 1
		case 3, 4:
			shape, blink = 1, style == 3
		case 5, 6:
			shape, blink = 2, style == 5
		}
		sink.Emit(Command{Kind: CmdSetCursorStyle, Int1: shape, Bool1: blink})
	case 'm':
		p.dispatchSGR(sink)
	case 'h':
		p.dispatchModeToggle(sink, true)
	case 'l':
		p.dispatchModeToggle(sink, false)
	case 'c':
		switch p.private {
		case '>':
			sink.Request(TerminalRequest{Kind: ReqSecondaryDeviceAttributes})
		case '=':
			sink.Request(TerminalRequest{Kind: ReqTertiaryDeviceAttributes})
		default:
			sink.Request(TerminalRequest{Kind: ReqPrimaryDeviceAttributes})
		}
	case 'n':
		p.dispatchDSR(sink)
	case '|':
		p.state = stMusic
		p.musicBuf.Reset()
		return
	default:
		sink.ReportError(&errs.ParserError{Kind: errs.UnsupportedEscapeSequence})
	}
}

func (p *AnsiParser) dispatchDSR(sink Sink) {
	if p.private == '=' && p.param(0, 0) == 1 {
		sink.Request(TerminalRequest{Kind: ReqFontStateReport})
		return
	}
	switch p.param(0, 0) {
	case 5:
		sink.Request(TerminalRequest{Kind: ReqDeviceStatusOK})
	case 6:
		sink.Request(TerminalRequest{Kind: ReqCursorPositionReport})
	case 255:
		sink.Request(TerminalRequest{Kind: ReqExtendedCursorPositionReport})
	case 62:
		sink.Request(TerminalRequest{Kind: ReqMacroSpaceReport})
	case 63:
		sink.Request(TerminalRequest{Kind: ReqMacroChecksum, Params: append([]int{}, p.params...)})
	}
}

func (p *AnsiParser) dispatchModeToggle(sink Sink, enabled bool) {
	kind := CmdResetMode
	if enabled {
		kind = CmdSetMode
	}
	for _, m := range p.params {
		if p.private == '?' {
			sink.Emit(Command{Kind: kind, Int1: m, Int2: 1})
		} else {
			sink.Emit(Command{Kind: kind, Int1: m, Int2: 0})
		}
	}
}

// dispatchSGR translates CSI ... m parameters into attribute state. Every
// parameter after the first mutates the same running attribute so e.g.
// "1;31;44" ends up as one Command.
func (p *AnsiParser) dispatchSGR(sink Sink) {
	// Ask the sink's current attribute indirectly: SGR is stateful, so we
	// emit one CmdSetAttribute per logical change rather than trying to
	// read state back out of the sink. Since consecutive SGR parameters
	// commonly arrive in one sequence, build the full attribute here
	// using a zero-valued accumulator seeded by reset semantics only when
	// the sequence starts with 0 (or is empty).
	a := attr.New(7, 0)
	if len(p.params) == 0 {
		sink.Emit(Command{Kind: CmdResetAttribute})
		return
	}
	i := 0
	for i < len(p.params) {
		switch n := p.params[i]; {
		case n == 0:
			a = attr.New(7, 0)
		case n == 1:
			a.Set(attr.Bold)
		case n == 4:
			a.Set(attr.Underlined)
		case n == 5:
			a.Set(attr.Blinking)
		case n == 7:
			a.Foreground, a.Background = a.Background, a.Foreground
		case n == 8:
			a.Set(attr.Concealed)
		case n == 9:
			a.Set(attr.CrossedOut)
		case n == 21:
			a.Set(attr.DoubleUnderlined)
		case n == 22:
			a.Clear(attr.Bold)
		case n == 24:
			a.Clear(attr.Underlined)
		case n == 25:
			a.Clear(attr.Blinking)
		case n >= 30 && n <= 37:
			a.Foreground = uint32(n - 30)
		case n == 38:
			if i+2 < len(p.params) && p.params[i+1] == 5 {
				a.Foreground = uint32(p.params[i+2])
				i += 2
			} else if i+4 < len(p.params) && p.params[i+1] == 2 {
				a.Foreground = rgbIndex(p.params[i+2], p.params[i+3], p.params[i+4])
				i += 4
			}
		case n == 39:
			a.Foreground = 7
		case n >= 40 && n <= 47:
			a.Background = uint32(n - 40)
		case n == 48:
			if i+2 < len(p.params) && p.params[i+1] == 5 {
				a.Background = uint32(p.params[i+2])
				i += 2
			} else if i+4 < len(p.params) && p.params[i+1] == 2 {
				a.Background = rgbIndex(p.params[i+2], p.params[i+3], p.params[i+4])
				i += 4
			}
		case n == 49:
			a.Background = 0
		case n >= 90 && n <= 97:
			a.Foreground = uint32(n - 90 + 8)
		case n >= 100 && n <= 107:
			a.Background = uint32(n - 100 + 8)
		}
		i++
	}
	sink.Emit(Command{Kind: CmdSetAttribute, Attr: a})
}

// rgbIndex packs an RGB triple into the uint32 attribute channel with the
// extended-palette sentinel bit (bit 24) set, so downstream palette
// resolution can distinguish it from a plain indexed color.
func rgbIndex(r, g, b int) uint32 {
	return 1<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func (p *AnsiParser) parseOSC(sink Sink, b byte) {
	switch b {
	case 0x07:
		p.finishOSC(sink)
	case 0x1b:
		p.state = stOSCEscape
	default:
		p.oscBuf.WriteByte(b)
	}
}

func (p *AnsiParser) parseOSCEscape(sink Sink, b byte) {
	if b == '\\' {
		p.finishOSC(sink)
		return
	}
	p.oscBuf.WriteByte(0x1b)
	p.oscBuf.WriteByte(b)
	p.state = stOSC
}

func (p *AnsiParser) finishOSC(sink Sink) {
	raw := p.oscBuf.String()
	code := 0
	data := raw
	if idx := strings.IndexByte(raw, ';'); idx >= 0 {
		code, _ = strconv.Atoi(raw[:idx])
		data = raw[idx+1:]
	}
	sink.OperatingSystemCommand(OperatingSystemCommand{Code: code, Data: data})
	p.state = stDefault
}

func (p *AnsiParser) parseDCSParams(sink Sink, b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.pushDigit(b)
	case b == ';':
		p.commitDCSParam()
	case b >= 0x20 && b <= 0x2f:
		p.dcsIntermediate.WriteByte(b)
	default:
		p.commitDCSParam()
		p.dcsFinal = b
		p.state = stDCSData
	}
}

func (p *AnsiParser) commitDCSParam() {
	if p.hasNum {
		n, _ := strconv.Atoi(p.curNum.String())
		p.dcsParams = append(p.dcsParams, n)
	}
	p.curNum.Reset()
	p.hasNum = false
}

func (p *AnsiParser) parseDCSData(sink Sink, b byte) {
	if b == 0x1b {
		p.state = stDefault
		sink.DeviceControl(DeviceControlString{
			Params:       append([]int{}, p.dcsParams...),
			Intermediate: p.dcsIntermediate.String(),
			Final:        p.dcsFinal,
			Data:         append([]byte{}, p.dcsData...),
		})
		return
	}
	p.dcsData = append(p.dcsData, b)
}

func (p *AnsiParser) parseAPS(sink Sink, b byte) {
	if b == 0x1b {
		p.state = stAPSEscape
		return
	}
	p.apsData = append(p.apsData, b)
}

func (p *AnsiParser) parseAPSEscape(sink Sink, b byte) {
	if b == '\\' {
		sink.Aps(append([]byte{}, p.apsData...))
		p.state = stDefault
		return
	}
	p.apsData = append(p.apsData, 0x1b, b)
	p.state = stAPS
}

// parseRIP captures one pipe-delimited RIP sub-command's raw text. Field
// widths vary per command code and spec.md leaves exact widths to the
// referenced source rather than pinning them, so the boundary used here is
// the next '|', ESC, or line ending, handing each segment to the sink
// whole for internal/rip to decode.
func (p *AnsiParser) parseRIP(sink Sink, b byte) {
	switch b {
	case '|':
		sink.EmitRip([]byte(p.ripBuf.String()))
		p.ripBuf.Reset()
	case 0x1b:
		sink.EmitRip([]byte(p.ripBuf.String()))
		p.resetSequence()
		p.state = stEscape
	case '\n', '\r':
		sink.EmitRip([]byte(p.ripBuf.String()))
		p.state = stDefault
		p.parseDefault(sink, b)
	default:
		p.ripBuf.WriteByte(b)
	}
}

// parseMusic captures raw ANSI-music note text until the 0x0e terminator,
// then hands a parsed note list to the sink. ParseAnsiMusicNotes in
// music.go interprets note letters A-G and the O, L, T and P directives;
// any other letter is skipped.
func (p *AnsiParser) parseMusic(sink Sink, b byte) {
	if b == 0x0e {
		sink.PlayMusic(ParseAnsiMusicNotes(p.musicBuf.String()))
		p.state = stDefault
		return
	}
	p.musicBuf.WriteByte(b)
}
