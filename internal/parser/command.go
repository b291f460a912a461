// Package parser turns byte streams into mutations of an internal/buffer
// Buffer, following the split the teacher's internal/ansi and
// internal/terminal packages already draw between "recognize a sequence"
// and "do something about it": a Parser only recognizes; a Sink decides
// whether to apply immediately or defer for later, bounded-lock
// application (see internal/terminal's QueueingSink).
package parser

import "github.com/stlalpha/icyengine/internal/attr"

// CommandKind tags the variant carried by a Command.
type CommandKind int

const (
	CmdMoveCursorAbsolute CommandKind = iota
	CmdMoveCursorRelative
	CmdMoveCursorColumn
	CmdMoveCursorLine
	CmdSetAttribute
	CmdResetAttribute
	CmdSetForeground
	CmdSetBackground
	CmdEraseInDisplay
	CmdEraseInLine
	CmdEraseCharacters
	CmdInsertLines
	CmdDeleteLines
	CmdInsertCharacters
	CmdDeleteCharacters
	CmdScrollUp
	CmdScrollDown
	CmdSetScrollRegion
	CmdSetLeftRightMargins
	CmdSaveCursor
	CmdRestoreCursor
	CmdReset
	CmdIndex
	CmdReverseIndex
	CmdNextLine
	CmdTabSet
	CmdTabClear
	CmdAdvanceTab
	CmdRepeatLastCharacter
	CmdSetCursorVisible
	CmdSetCursorStyle
	CmdSetMode
	CmdResetMode
	CmdSetFontPage
	CmdInvokeCharset
	CmdFillRectangularArea
	CmdEraseRectangularArea
	CmdCopyRectangularArea
)

// Command is a flattened representation of one parsed terminal command,
// every field meaningful only for the kinds that use it.
type Command struct {
	Kind CommandKind

	// Generic integer/boolean payload slots, reused across kinds.
	Int1, Int2, Int3, Int4 int
	Bool1                  bool
	Ints                   []int

	Attr attr.TextAttribute
}

// AnsiMusic is the minimal captured form of an ANSI-music (ESC [ | ... \x0e)
// sequence: a list of notes to be realized by whatever sink understands
// sound, never by the parser itself.
type AnsiMusic struct {
	Notes []MusicNote
}

// MusicNote is one note: FrequencyHz 0 means a rest.
type MusicNote struct {
	FrequencyHz  int
	DurationMs   int
}

// DeviceControlString is a captured DCS payload (ESC P ... ST).
type DeviceControlString struct {
	Params       []int
	Intermediate string
	Final        byte // the byte that ended the parameter area, e.g. 'q' for Sixel
	Data         []byte
}

// OperatingSystemCommand is a captured OSC payload (ESC ] ... ST/BEL).
type OperatingSystemCommand struct {
	Code int
	Data string
}

// TerminalRequestKind enumerates the terminal-state queries a sink must
// answer by writing a reply back to the connection.
type TerminalRequestKind int

const (
	ReqDeviceStatusOK TerminalRequestKind = iota
	ReqCursorPositionReport
	ReqExtendedCursorPositionReport
	ReqFontStateReport
	ReqMacroSpaceReport
	ReqMacroChecksum
	ReqPrimaryDeviceAttributes
	ReqSecondaryDeviceAttributes
	ReqTertiaryDeviceAttributes
)

// TerminalRequest is a query that must be answered with an outbound reply;
// the parser never writes to a connection, it only surfaces the request.
type TerminalRequest struct {
	Kind TerminalRequestKind
	// Params carries request-specific parameters (e.g. DECCKSR's CSI
	// parameters: 63, then the pid echoed in the reply, then the page).
	Params []int
}
