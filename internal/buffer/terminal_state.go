package buffer

// OriginMode selects whether cursor addressing is relative to the screen
// or to the current scrolling margins.
type OriginMode int

const (
	OriginUpperLeftCorner OriginMode = iota
	OriginWithinMargins
)

// AutoWrapMode toggles whether printing past the right margin wraps.
type AutoWrapMode int

const (
	AutoWrap AutoWrapMode = iota
	NoWrap
)

// ScrollState selects smooth vs. jump scrolling.
type ScrollState int

const (
	ScrollFast ScrollState = iota
	ScrollSmooth
)

// MouseMode selects which mouse events are reported.
type MouseMode int

const (
	MouseOff MouseMode = iota
	MouseX10
	MouseVT200
	MouseVT200Highlight
	MouseButtonEvents
	MouseAnyEvents
)

// ExtMouseMode selects the wire encoding used for mouse reports.
type ExtMouseMode int

const (
	ExtMouseNone ExtMouseMode = iota
	ExtMouseExtended
	ExtMouseSGR
	ExtMouseURXVT
	ExtMousePixelPosition
)

// FontSelectionState records whether the last font-selection request
// (DECSCA/font-loading sequence) succeeded, failed, or was never made.
type FontSelectionState int

const (
	FontSelectionNoRequest FontSelectionState = iota
	FontSelectionSuccess
	FontSelectionFailure
)

// MouseState bundles the mouse-reporting mode flags.
type MouseState struct {
	Mode                    MouseMode
	ExtendedMode            ExtMouseMode
	FocusOutEventEnabled    bool
	AlternateScrollEnabled  bool
}

// Margins is an inclusive [Top, Bottom] or [Left, Right] range.
type Margins struct {
	First, Last int
}

// TerminalState holds the mode flags, margins, tab stops, and mouse state
// that the ANSI/VT parser mutates. The scrollback and Caret are stored
// alongside it on Buffer.
type TerminalState struct {
	Size       Size
	FixedSize  bool

	OriginMode         OriginMode
	AutoWrapMode       AutoWrapMode
	ScrollState        ScrollState
	DECMarginModeLeftRight bool

	MarginsTopBottom *Margins
	MarginsLeftRight *Margins

	TabStops map[int]bool

	MouseState MouseState

	FontSelectionState FontSelectionState

	NormalAttributeFontSlot              uint
	HighIntensityAttributeFontSlot       uint
	BlinkAttributeFontSlot               uint
	HighIntensityBlinkAttributeFontSlot  uint

	IsTerminalBuffer bool
	ClearedScreen    bool

	saved savedCaretState
}

// NewTerminalState creates terminal state sized w x h with default tab
// stops every 8 columns.
func NewTerminalState(w, h int) *TerminalState {
	ts := &TerminalState{
		Size:         Size{Width: w, Height: h},
		AutoWrapMode: AutoWrap,
		TabStops:     make(map[int]bool),
	}
	for x := 8; x < w; x += 8 {
		ts.TabStops[x] = true
	}
	return ts
}

// Width and Height are convenience accessors mirroring the original's
// get_width()/get_height().
func (ts *TerminalState) Width() int  { return ts.Size.Width }
func (ts *TerminalState) Height() int { return ts.Size.Height }

// ScrollMarginTop returns the top scrolling margin row, honoring
// MarginsTopBottom if set.
func (ts *TerminalState) ScrollMarginTop() int {
	if ts.MarginsTopBottom != nil {
		return ts.MarginsTopBottom.First
	}
	return 0
}

// ScrollMarginBottom returns the bottom scrolling margin row.
func (ts *TerminalState) ScrollMarginBottom() int {
	if ts.MarginsTopBottom != nil {
		return ts.MarginsTopBottom.Last
	}
	return ts.Size.Height - 1
}

// SetMouseMode sets the reporting mode.
func (ts *TerminalState) SetMouseMode(m MouseMode) { ts.MouseState.Mode = m }

// SaveCaret stores caret plus origin/auto-wrap mode for a later RestoreCaret.
func (ts *TerminalState) SaveCaret(c *Caret) {
	ts.saved = savedCaretState{
		caret:        *c,
		originMode:   ts.OriginMode,
		autoWrapMode: ts.AutoWrapMode,
		valid:        true,
	}
}

// RestoreCaret restores a previously saved caret, or resets to defaults if
// no DECSC has ever been issued (the spec's documented RC-without-SC
// behavior).
func (ts *TerminalState) RestoreCaret(c *Caret) {
	if !ts.saved.valid {
		*c = *NewCaret()
		ts.OriginMode = OriginUpperLeftCorner
		ts.AutoWrapMode = AutoWrap
		return
	}
	*c = ts.saved.caret
	ts.OriginMode = ts.saved.originMode
	ts.AutoWrapMode = ts.saved.autoWrapMode
}
