// Package igs parses IGS (Instant Graphics and Sound) command streams
// and drives a VDI-style pixel engine with them. Unlike RIP, IGS is
// selected as its own top-level terminal emulation mode rather than
// embedded inline in the ANSI byte stream, so its Parser never touches
// internal/parser.Sink.
package igs

import (
	"strconv"
	"strings"

	"github.com/stlalpha/icyengine/internal/errs"
)

// CommandKind tags a decoded IGS command by its two-letter mnemonic.
type CommandKind int

const (
	CmdInitialize CommandKind = iota
	CmdScreenClear
	CmdCursor
	CmdColorSet
	CmdSetPenColor
	CmdDrawLine
	CmdLineDrawTo
	CmdPolyLine
	CmdPolyFill
	CmdBox
	CmdFilledRectangle
	CmdCircle
	CmdEllipse
	CmdArc
	CmdPieslice
	CmdFloodFill
	CmdPolymarkerPlot
	CmdWriteText
	CmdTextEffects
	CmdDrawingMode
	CmdAttributeForFills
	CmdSetResolution
	CmdQuickPause
	CmdGrabScreen
	CmdHollowSet
	CmdUnknown
)

var mnemonics = map[string]CommandKind{
	"I@": CmdInitialize,
	"S@": CmdScreenClear,
	"C@": CmdCursor,
	"CS": CmdColorSet,
	"C1": CmdSetPenColor,
	"L@": CmdDrawLine,
	"LT": CmdLineDrawTo,
	"PL": CmdPolyLine,
	"PF": CmdPolyFill,
	"B@": CmdBox,
	"FR": CmdFilledRectangle,
	"C2": CmdCircle,
	"EL": CmdEllipse,
	"AR": CmdArc,
	"PS": CmdPieslice,
	"FF": CmdFloodFill,
	"PM": CmdPolymarkerPlot,
	"WT": CmdWriteText,
	"TE": CmdTextEffects,
	"DM": CmdDrawingMode,
	"AF": CmdAttributeForFills,
	"SR": CmdSetResolution,
	"QP": CmdQuickPause,
	"GS": CmdGrabScreen,
	"HS": CmdHollowSet,
}

// Command is one decoded IGS command: a two-letter mnemonic plus a
// variable-length list of comma-separated decimal parameters.
type Command struct {
	Kind   CommandKind
	Params []int
	Raw    string
}

// Decode parses "MN" + comma-separated decimal params (without the
// leading 'G' escape or trailing '#' terminator) into a Command.
func Decode(raw string) (Command, error) {
	if len(raw) < 2 {
		return Command{}, &errs.ParserError{Kind: errs.UnsupportedCustomCommand, Detail: raw}
	}
	mnemonic := raw[:2]
	kind, ok := mnemonics[mnemonic]
	if !ok {
		return Command{Kind: CmdUnknown, Raw: raw}, nil
	}
	paramStr := strings.TrimSuffix(raw[2:], ",")
	var params []int
	if paramStr != "" {
		for _, field := range strings.Split(paramStr, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return Command{}, &errs.ParserError{Kind: errs.UnsupportedCustomCommand, Detail: raw}
			}
			params = append(params, n)
		}
	}
	return Command{Kind: kind, Params: params}, nil
}

// parserState steps through a byte stream assembling one command at a
// time, terminated by '#' or the start of the next 'G' escape.
type parserState int

const (
	stateIdle parserState = iota
	stateCommand
)

// Parser recognizes IGS command boundaries in a raw byte stream; it does
// not itself understand graphics semantics, the same split internal/parser
// keeps between recognizing ANSI sequences and applying them.
type Parser struct {
	state parserState
	buf   strings.Builder
}

// NewParser returns a Parser ready to read from terminal-mode-IGS bytes.
func NewParser() *Parser { return &Parser{} }

// CommandFunc receives each decoded Command as the Parser completes one.
type CommandFunc func(Command)

// Feed advances the parser by one byte, invoking emit for each completed
// command.
func (p *Parser) Feed(b byte, emit CommandFunc) {
	switch p.state {
	case stateIdle:
		if b == 'G' {
			p.state = stateCommand
			p.buf.Reset()
		}
	case stateCommand:
		switch b {
		case '#':
			cmd, err := Decode(p.buf.String())
			if err == nil {
				emit(cmd)
			}
			p.state = stateIdle
			p.buf.Reset()
		case 'G':
			if p.buf.Len() > 0 {
				cmd, err := Decode(p.buf.String())
				if err == nil {
					emit(cmd)
				}
			}
			p.buf.Reset()
		default:
			p.buf.WriteByte(b)
		}
	}
}
