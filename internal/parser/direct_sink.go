package parser

import (
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/logging"
)

// DirectSink applies every parsed effect to a Buffer immediately, on
// whatever goroutine calls Parse. internal/edit and internal/format use
// this; internal/terminal instead defers through its own queueing Sink so
// the connection-reading goroutine never blocks on buffer composition.
type DirectSink struct {
	Buf   *buffer.Buffer
	Caret *buffer.Caret

	// Replies is appended to whenever a TerminalRequest needs an
	// outbound answer; the caller (internal/terminal) is responsible for
	// actually writing these to a Connection.
	Replies []string

	// OnMusic, OnBell, OnRip, OnResize are optional hooks; nil
	// means "ignore". Kept as plain funcs rather than an interface since
	// most callers only care about one or two of these.
	OnMusic  func(AnsiMusic)
	OnBell   func()
	OnRip    func([]byte)
	OnResize func(width, height int)
}

// NewDirectSink returns a sink bound to buf's own caret.
func NewDirectSink(buf *buffer.Buffer) *DirectSink {
	return &DirectSink{Buf: buf, Caret: buf.Caret}
}

func (s *DirectSink) Print(text []rune, inverse bool) {
	for _, ch := range text {
		c := s.Caret.Attribute
		if inverse {
			c.Foreground, c.Background = c.Background, c.Foreground
		}
		saved := s.Caret.Attribute
		s.Caret.Attribute = c
		WriteRune(s.Buf, s.Caret, ch)
		s.Caret.Attribute = saved
	}
}

func (s *DirectSink) Emit(cmd Command) { Apply(s.Buf, s.Caret, cmd) }

func (s *DirectSink) PlayMusic(music AnsiMusic) {
	if s.OnMusic != nil {
		s.OnMusic(music)
	}
}

func (s *DirectSink) EmitRip(data []byte) {
	if s.OnRip != nil {
		s.OnRip(data)
	}
}

func (s *DirectSink) DeviceControl(dcs DeviceControlString) {
	if dcs.Final == 'q' {
		sixel := DecodeSixel(dcs.Data)
		if sixel.Width > 0 && sixel.Height > 0 {
			sixel.X, sixel.Y = s.Caret.Position.X*8, s.Caret.Position.Y*16
			s.Buf.Layers[0].Sixels = append(s.Buf.Layers[0].Sixels, sixel)
		}
		return
	}
	logging.Debug("parser: unhandled DCS params=%v intermediate=%q len=%d", dcs.Params, dcs.Intermediate, len(dcs.Data))
}

func (s *DirectSink) OperatingSystemCommand(osc OperatingSystemCommand) {
	logging.Debug("parser: unhandled OSC %d %q", osc.Code, osc.Data)
}

func (s *DirectSink) Aps(data []byte) {
	logging.Debug("parser: unhandled APS len=%d", len(data))
}

func (s *DirectSink) Request(req TerminalRequest) {
	s.Replies = append(s.Replies, BuildReply(s.Buf, req))
}

func (s *DirectSink) Bell() {
	if s.OnBell != nil {
		s.OnBell()
	}
}

func (s *DirectSink) ResizeTerminal(width, height int) {
	if s.OnResize != nil {
		s.OnResize(width, height)
	}
}

func (s *DirectSink) ReportError(err error) {
	logging.Debug("parser: %v", err)
}
