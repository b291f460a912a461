package parser

import (
	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
)

// WriteRune places ch at the caret, advancing and wrapping/scrolling per
// TerminalState's AutoWrapMode and the active top/bottom margins.
func WriteRune(buf *buffer.Buffer, caret *buffer.Caret, ch rune) {
	ts := buf.TerminalState
	if caret.Position.X >= ts.Size.Width {
		if ts.AutoWrapMode == buffer.AutoWrap {
			LineFeed(buf, caret)
			caret.Position.X = 0
		} else {
			caret.Position.X = ts.Size.Width - 1
		}
	}
	buf.Layers[0].SetChar(caret.Position, attr.AttributedChar{Ch: ch, Attr: caret.Attribute})
	caret.Position.X++
}

// LineFeed advances the caret one row, scrolling the active margin region
// when it would run off the bottom. It does not touch the column.
func LineFeed(buf *buffer.Buffer, caret *buffer.Caret) {
	ts := buf.TerminalState
	bottom := ts.ScrollMarginBottom()
	if caret.Position.Y >= bottom {
		buf.Layers[0].ScrollLines(ts.ScrollMarginTop(), bottom, 1)
		caret.Position.Y = bottom
		return
	}
	caret.Position.Y++
}

// ReverseLineFeed is RI: the inverse of LineFeed.
func ReverseLineFeed(buf *buffer.Buffer, caret *buffer.Caret) {
	ts := buf.TerminalState
	top := ts.ScrollMarginTop()
	if caret.Position.Y <= top {
		buf.Layers[0].ScrollLines(top, ts.ScrollMarginBottom(), -1)
		caret.Position.Y = top
		return
	}
	caret.Position.Y--
}

// MoveCursorTo clamps and sets the caret's absolute position, honoring
// OriginMode's offset into the top/bottom margin when set.
func MoveCursorTo(buf *buffer.Buffer, caret *buffer.Caret, col, row int) {
	ts := buf.TerminalState
	if ts.OriginMode == buffer.OriginWithinMargins {
		row += ts.ScrollMarginTop()
	}
	if col < 0 {
		col = 0
	}
	if col >= ts.Size.Width {
		col = ts.Size.Width - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= ts.Size.Height {
		row = ts.Size.Height - 1
	}
	caret.Position = buffer.Position{X: col, Y: row}
}

// EraseInDisplay implements ED: mode 0 from caret to end, 1 from start to
// caret, 2 (and 3, scrollback not modeled here) the whole screen.
func EraseInDisplay(buf *buffer.Buffer, caret *buffer.Caret, mode int) {
	w, h := buf.Size.Width, buf.Size.Height
	blank := attr.AttributedChar{Ch: ' ', Attr: caret.Attribute}
	clearRange := func(fromY, fromX, toY, toX int) {
		for y := fromY; y <= toY; y++ {
			startX, endX := 0, w-1
			if y == fromY {
				startX = fromX
			}
			if y == toY {
				endX = toX
			}
			for x := startX; x <= endX; x++ {
				buf.Layers[0].SetChar(buffer.Position{X: x, Y: y}, blank)
			}
		}
	}
	switch mode {
	case 0:
		clearRange(caret.Position.Y, caret.Position.X, h-1, w-1)
	case 1:
		clearRange(0, 0, caret.Position.Y, caret.Position.X)
	default:
		clearRange(0, 0, h-1, w-1)
		buf.TerminalState.ClearedScreen = true
	}
}

// EraseInLine implements EL on the caret's current row.
func EraseInLine(buf *buffer.Buffer, caret *buffer.Caret, mode int) {
	w := buf.Size.Width
	blank := attr.AttributedChar{Ch: ' ', Attr: caret.Attribute}
	startX, endX := 0, w-1
	switch mode {
	case 0:
		startX = caret.Position.X
	case 1:
		endX = caret.Position.X
	}
	for x := startX; x <= endX; x++ {
		buf.Layers[0].SetChar(buffer.Position{X: x, Y: caret.Position.Y}, blank)
	}
}

// EraseCharacters implements ECH: blank n cells starting at the caret,
// without moving it.
func EraseCharacters(buf *buffer.Buffer, caret *buffer.Caret, n int) {
	if n < 1 {
		n = 1
	}
	blank := attr.AttributedChar{Ch: ' ', Attr: caret.Attribute}
	for x := caret.Position.X; x < caret.Position.X+n && x < buf.Size.Width; x++ {
		buf.Layers[0].SetChar(buffer.Position{X: x, Y: caret.Position.Y}, blank)
	}
}

// InsertLines implements IL: shift rows [caret.Y, bottom] down by n,
// discarding overflow past bottom.
func InsertLines(buf *buffer.Buffer, caret *buffer.Caret, n int) {
	if n < 1 {
		n = 1
	}
	ts := buf.TerminalState
	buf.Layers[0].ScrollLines(caret.Position.Y, ts.ScrollMarginBottom(), -n)
}

// DeleteLines implements DL: shift rows [caret.Y, bottom] up by n.
func DeleteLines(buf *buffer.Buffer, caret *buffer.Caret, n int) {
	if n < 1 {
		n = 1
	}
	ts := buf.TerminalState
	buf.Layers[0].ScrollLines(caret.Position.Y, ts.ScrollMarginBottom(), n)
}

// InsertCharacters implements ICH: shift cells on the caret's row right by
// n starting at the caret, discarding overflow past the right edge.
func InsertCharacters(buf *buffer.Buffer, caret *buffer.Caret, n int) {
	if n < 1 {
		n = 1
	}
	y := caret.Position.Y
	w := buf.Size.Width
	line := buf.Layers[0].Line(y)
	if line == nil {
		return
	}
	line.TrimToWidth(w)
	for x := w - 1; x >= caret.Position.X+n; x-- {
		line.Chars[x] = line.Chars[x-n]
	}
	blank := attr.AttributedChar{Ch: ' ', Attr: caret.Attribute}
	for x := caret.Position.X; x < caret.Position.X+n && x < w; x++ {
		line.Chars[x] = blank
	}
}

// DeleteCharacters implements DCH: shift cells on the caret's row left by
// n starting at the caret, padding vacated trailing cells with blanks.
func DeleteCharacters(buf *buffer.Buffer, caret *buffer.Caret, n int) {
	if n < 1 {
		n = 1
	}
	y := caret.Position.Y
	w := buf.Size.Width
	line := buf.Layers[0].Line(y)
	if line == nil {
		return
	}
	line.TrimToWidth(w)
	for x := caret.Position.X; x < w-n; x++ {
		line.Chars[x] = line.Chars[x+n]
	}
	blank := attr.AttributedChar{Ch: ' ', Attr: caret.Attribute}
	for x := w - n; x < w; x++ {
		if x >= 0 {
			line.Chars[x] = blank
		}
	}
}

// AdvanceTab moves the caret to the next set tab stop, or the last column
// if none remain.
func AdvanceTab(buf *buffer.Buffer, caret *buffer.Caret) {
	w := buf.Size.Width
	for x := caret.Position.X + 1; x < w; x++ {
		if buf.TerminalState.TabStops[x] {
			caret.Position.X = x
			return
		}
	}
	caret.Position.X = w - 1
}

// Apply mutates buf and caret for cmd, the direct (non-queued) path used
// by internal/edit, internal/format, and DirectSink.
func Apply(buf *buffer.Buffer, caret *buffer.Caret, cmd Command) {
	switch cmd.Kind {
	case CmdMoveCursorAbsolute:
		MoveCursorTo(buf, caret, cmd.Int1, cmd.Int2)
	case CmdMoveCursorRelative:
		MoveCursorTo(buf, caret, caret.Position.X+cmd.Int1, caret.Position.Y+cmd.Int2)
	case CmdMoveCursorColumn:
		MoveCursorTo(buf, caret, cmd.Int1, caret.Position.Y)
	case CmdMoveCursorLine:
		MoveCursorTo(buf, caret, caret.Position.X, cmd.Int1)
	case CmdSetAttribute:
		caret.Attribute = cmd.Attr
	case CmdResetAttribute:
		caret.Attribute = attr.New(7, 0)
	case CmdSetForeground:
		caret.Attribute.Foreground = uint32(cmd.Int1)
	case CmdSetBackground:
		caret.Attribute.Background = uint32(cmd.Int1)
	case CmdEraseInDisplay:
		EraseInDisplay(buf, caret, cmd.Int1)
	case CmdEraseInLine:
		EraseInLine(buf, caret, cmd.Int1)
	case CmdEraseCharacters:
		EraseCharacters(buf, caret, cmd.Int1)
	case CmdInsertLines:
		InsertLines(buf, caret, cmd.Int1)
	case CmdDeleteLines:
		DeleteLines(buf, caret, cmd.Int1)
	case CmdInsertCharacters:
		InsertCharacters(buf, caret, cmd.Int1)
	case CmdDeleteCharacters:
		DeleteCharacters(buf, caret, cmd.Int1)
	case CmdScrollUp:
		buf.Layers[0].ScrollLines(buf.TerminalState.ScrollMarginTop(), buf.TerminalState.ScrollMarginBottom(), cmd.Int1)
	case CmdScrollDown:
		buf.Layers[0].ScrollLines(buf.TerminalState.ScrollMarginTop(), buf.TerminalState.ScrollMarginBottom(), -cmd.Int1)
	case CmdSetScrollRegion:
		if cmd.Int1 == 0 && cmd.Int2 == 0 {
			buf.TerminalState.MarginsTopBottom = nil
		} else {
			buf.TerminalState.MarginsTopBottom = &buffer.Margins{First: cmd.Int1, Last: cmd.Int2}
		}
		MoveCursorTo(buf, caret, 0, 0)
	case CmdSetLeftRightMargins:
		if cmd.Int1 == 0 && cmd.Int2 == 0 {
			buf.TerminalState.MarginsLeftRight = nil
		} else {
			buf.TerminalState.MarginsLeftRight = &buffer.Margins{First: cmd.Int1, Last: cmd.Int2}
		}
	case CmdSaveCursor:
		buf.TerminalState.SaveCaret(caret)
	case CmdRestoreCursor:
		buf.TerminalState.RestoreCaret(caret)
	case CmdReset:
		buf.ResetTerminal()
		*caret = *buf.Caret
	case CmdIndex:
		LineFeed(buf, caret)
	case CmdReverseIndex:
		ReverseLineFeed(buf, caret)
	case CmdNextLine:
		LineFeed(buf, caret)
		caret.Position.X = 0
	case CmdTabSet:
		buf.TerminalState.TabStops[caret.Position.X] = true
	case CmdTabClear:
		if cmd.Int1 == 3 {
			buf.TerminalState.TabStops = make(map[int]bool)
		} else {
			delete(buf.TerminalState.TabStops, caret.Position.X)
		}
	case CmdAdvanceTab:
		AdvanceTab(buf, caret)
	case CmdRepeatLastCharacter:
		for i := 0; i < cmd.Int1; i++ {
			WriteRune(buf, caret, rune(cmd.Int2))
		}
	case CmdSetCursorVisible:
		caret.Visible = cmd.Bool1
	case CmdSetCursorStyle:
		caret.Shape = buffer.CaretShape(cmd.Int1)
		caret.Blinking = cmd.Bool1
	case CmdSetMode:
		applyMode(buf, caret, cmd.Int1, cmd.Int2 == 1, true)
	case CmdResetMode:
		applyMode(buf, caret, cmd.Int1, cmd.Int2 == 1, false)
	case CmdSetFontPage:
		caret.FontPage = uint(cmd.Int1)
	}
}

// applyMode toggles an ANSI mode (private == false, e.g. IRM) or a DECSET/
// DECRST private mode (private == true).
func applyMode(buf *buffer.Buffer, caret *buffer.Caret, mode int, private bool, enabled bool) {
	ts := buf.TerminalState
	if !private {
		if mode == 4 { // IRM insert mode
			caret.InsertMode = enabled
		}
		return
	}
	switch mode {
	case 25: // DECTCEM cursor visibility
		caret.Visible = enabled
	case 6: // DECOM
		if enabled {
			ts.OriginMode = buffer.OriginWithinMargins
		} else {
			ts.OriginMode = buffer.OriginUpperLeftCorner
		}
	case 7: // DECAWM
		if enabled {
			ts.AutoWrapMode = buffer.AutoWrap
		} else {
			ts.AutoWrapMode = buffer.NoWrap
		}
	case 69: // DECLRMM
		ts.DECMarginModeLeftRight = enabled
	case 1000:
		if enabled {
			ts.SetMouseMode(buffer.MouseVT200)
		} else {
			ts.SetMouseMode(buffer.MouseOff)
		}
	case 1002:
		if enabled {
			ts.SetMouseMode(buffer.MouseButtonEvents)
		} else {
			ts.SetMouseMode(buffer.MouseOff)
		}
	case 1003:
		if enabled {
			ts.SetMouseMode(buffer.MouseAnyEvents)
		} else {
			ts.SetMouseMode(buffer.MouseOff)
		}
	case 1006:
		if enabled {
			ts.MouseState.ExtendedMode = buffer.ExtMouseSGR
		} else {
			ts.MouseState.ExtendedMode = buffer.ExtMouseNone
		}
	case 1004:
		ts.MouseState.FocusOutEventEnabled = enabled
	}
}
