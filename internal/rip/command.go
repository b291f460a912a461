// Package rip decodes RIPscrip graphics commands captured by
// internal/parser's ANSI state machine and drives a BGI-style pixel
// engine with them.
package rip

import (
	"strconv"
	"strings"

	"github.com/stlalpha/icyengine/internal/errs"
)

// CommandKind tags a decoded RIP command.
type CommandKind int

const (
	CmdLine CommandKind = iota
	CmdBar
	CmdCircle
	CmdOval
	CmdPolygon
	CmdFloodFill
	CmdText
	CmdWriteMode
	CmdLineStyle
	CmdFillStyle
	CmdColor
	CmdButton
	CmdLoadIcon
	CmdUnknown
)

// Command is a decoded RIP sub-command. Fields beyond what a given Kind
// uses are zero.
type Command struct {
	Kind   CommandKind
	X1, Y1 int
	X2, Y2 int
	Radius int
	Points []Point
	Text   string
	Mode   int
	Color  int
	// Pattern and Thickness are set by CmdLineStyle: Pattern is the
	// 16-bit dash mask used when Mode (style) is 4 (User), and
	// Thickness is the pen width in pixels.
	Pattern   int
	Thickness int
	// Flags is CmdButton's ButtonStyle.flags bitmask (spec.md §4.5).
	Flags int
	Raw   string
}

// Point is one polygon/polyline vertex.
type Point struct{ X, Y int }

// Decode parses one pipe-delimited RIP sub-command's raw text (without the
// leading '|') into a Command. Field widths follow the two-base36-digit
// convention spec.md's worked example uses; commands whose exact field
// count the original BGI engine documents more precisely than spec.md
// pins (Define/Query and similar reserved-area commands) are decoded as
// CmdUnknown with Raw preserved, since inferring their layout would risk
// silently misreading bytes.
func Decode(raw string) (Command, error) {
	if raw == "" {
		return Command{}, &errs.ParserError{Kind: errs.UnsupportedCustomCommand, Detail: "empty RIP command"}
	}
	letter := raw[0]
	rest := raw[1:]
	switch letter {
	case 'L':
		f, err := fields(rest, 4)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdLine, X1: f[0], Y1: f[1], X2: f[2], Y2: f[3]}, nil
	case 'B':
		f, err := fields(rest, 4)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdBar, X1: f[0], Y1: f[1], X2: f[2], Y2: f[3]}, nil
	case 'C':
		f, err := fields(rest, 3)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdCircle, X1: f[0], Y1: f[1], Radius: f[2]}, nil
	case 'O':
		f, err := fields(rest, 4)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdOval, X1: f[0], Y1: f[1], X2: f[2], Y2: f[3]}, nil
	case 'P':
		if len(rest) < 2 {
			return Command{}, &errs.ParserError{Kind: errs.UnsupportedCustomCommand, Detail: raw}
		}
		n, err := base36(rest[:2])
		if err != nil {
			return Command{}, err
		}
		f, err := fields(rest[2:], n*2)
		if err != nil {
			return Command{}, err
		}
		pts := make([]Point, n)
		for i := 0; i < n; i++ {
			pts[i] = Point{X: f[i*2], Y: f[i*2+1]}
		}
		return Command{Kind: CmdPolygon, Points: pts}, nil
	case 'f':
		f, err := fields(rest, 2)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdFloodFill, X1: f[0], Y1: f[1]}, nil
	case 'T':
		f, err := fields(rest, 2)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdText, X1: f[0], Y1: f[1], Text: rest[4:]}, nil
	case 'W':
		f, err := fields(rest, 1)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdWriteMode, Mode: f[0]}, nil
	case '=':
		// style(2) + user_pat(4) + thick(2), per original_source's
		// parsers/rip/commands.rs LineStyle::parse field widths.
		if len(rest) < 8 {
			return Command{}, &errs.ParserError{Kind: errs.UnsupportedCustomCommand, Detail: raw}
		}
		style, err := base36(rest[0:2])
		if err != nil {
			return Command{}, err
		}
		pattern, err := base36(rest[2:6])
		if err != nil {
			return Command{}, err
		}
		thick, err := base36(rest[6:8])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdLineStyle, Mode: style, Pattern: pattern, Thickness: thick}, nil
	case 'S':
		f, err := fields(rest, 2)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdFillStyle, Mode: f[0], Color: f[1]}, nil
	case 'c':
		f, err := fields(rest, 1)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdColor, Color: f[0]}, nil
	default:
		if strings.HasPrefix(raw, "1U") {
			return decodeButton(raw[2:])
		}
		if strings.HasPrefix(raw, "1I") {
			return Command{Kind: CmdLoadIcon, Raw: raw[2:]}, nil
		}
		return Command{Kind: CmdUnknown, Raw: raw}, nil
	}
}

// decodeButton parses a "1U" button command's rectangle, hotkey, and
// ButtonStyle.flags. The trailing icon/text/host-command fields
// (delimited by "<>") are left in Raw; only the rectangle and flags
// drive §4.5's bevel/chisel/sunken/dropshadow rendering.
func decodeButton(rest string) (Command, error) {
	if len(rest) < 14 {
		return Command{}, &errs.ParserError{Kind: errs.UnsupportedCustomCommand, Detail: rest}
	}
	f, err := fields(rest[:10], 5)
	if err != nil {
		return Command{}, err
	}
	flags, err := base36(rest[10:14])
	if err != nil {
		return Command{}, err
	}
	return Command{
		Kind: CmdButton,
		X1:   f[0], Y1: f[1], X2: f[2], Y2: f[3],
		Mode:  f[4], // hotkey
		Flags: flags,
		Raw:   rest[14:],
	}, nil
}

// fields splits s into n two-character base36 fields.
func fields(s string, n int) ([]int, error) {
	if len(s) < n*2 {
		return nil, &errs.ParserError{Kind: errs.UnsupportedCustomCommand, Detail: s}
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := base36(s[i*2 : i*2+2])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func base36(s string) (int, error) {
	n, err := strconv.ParseInt(s, 36, 32)
	if err != nil {
		return 0, &errs.ParserError{Kind: errs.UnsupportedCustomCommand, Detail: s}
	}
	return int(n), nil
}
