package parser

import (
	"fmt"

	"github.com/stlalpha/icyengine/internal/buffer"
)

// BuildReply formats the outbound string a TerminalRequest expects, per
// the DSR/DECCKSR reply formats the original ANSI parser uses.
func BuildReply(buf *buffer.Buffer, req TerminalRequest) string {
	switch req.Kind {
	case ReqDeviceStatusOK:
		return "\x1b[0n"
	case ReqCursorPositionReport:
		row := buf.Caret.Position.Y + 1
		col := buf.Caret.Position.X + 1
		if row > buf.Size.Height {
			row = buf.Size.Height
		}
		if col > buf.Size.Width {
			col = buf.Size.Width
		}
		return fmt.Sprintf("\x1b[%d;%dR", row, col)
	case ReqExtendedCursorPositionReport:
		return fmt.Sprintf("\x1b[%d;%dR", buf.Size.Height, buf.Size.Width)
	case ReqFontStateReport:
		state := 99
		switch buf.TerminalState.FontSelectionState {
		case buffer.FontSelectionSuccess:
			state = 0
		case buffer.FontSelectionFailure:
			state = 1
		}
		ts := buf.TerminalState
		return fmt.Sprintf("\x1b[=1;%d;%d;%d;%d;%dn", state,
			ts.NormalAttributeFontSlot, ts.HighIntensityAttributeFontSlot,
			ts.BlinkAttributeFontSlot, ts.HighIntensityBlinkAttributeFontSlot)
	case ReqMacroSpaceReport:
		return "\x1b[32767*{"
	case ReqMacroChecksum:
		pid := 0
		if len(req.Params) > 1 {
			pid = req.Params[1]
		}
		return fmt.Sprintf("\x1bP%d!~%04X\x1b\\", pid, macroChecksum())
	case ReqPrimaryDeviceAttributes:
		return "\x1b[?1;0c"
	case ReqSecondaryDeviceAttributes:
		return "\x1b[>0;10;0c"
	case ReqTertiaryDeviceAttributes:
		return "\x1bP!|00000000\x1b\\"
	}
	return ""
}

// macroChecksum sums the bytes of all 64 macro slots mod 2^16. Macro
// storage is out of scope (no DECDMAC in this engine), so every slot is
// empty and the checksum is always 0 — still a real reply, not a stub
// value, since an empty macro table checksums to 0 in the original too.
func macroChecksum() uint16 { return 0 }
