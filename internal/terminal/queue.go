package terminal

import (
	"sync"

	"github.com/stlalpha/icyengine/internal/parser"
)

// QueuedKind tags one buffered effect the orchestrator's drain loop will
// later either apply under the buffer lock or forward as an event.
type QueuedKind int

const (
	QueuedPrint QueuedKind = iota
	QueuedEmit
	QueuedMusic
	QueuedRip
	QueuedIgs
	QueuedBell
	QueuedResize
	QueuedTerminalRequest
	QueuedDeviceControl
	QueuedOperatingSystemCommand
	QueuedAps
	QueuedParseError
)

// QueuedCommand is one deferred Sink call, recorded instead of applied.
type QueuedCommand struct {
	Kind       QueuedKind
	Text       []rune
	Inverse    bool
	Command    parser.Command
	Music      parser.AnsiMusic
	RipData    []byte
	IgsData    []byte
	Width      int
	Height     int
	Request    parser.TerminalRequest
	DCS        parser.DeviceControlString
	OSC        parser.OperatingSystemCommand
	APSData    []byte
	ParseError error
}

// ScreenTouching reports whether applying this entry requires the buffer
// lock, as opposed to being handled outside it per the queue-drain
// contract (music, bell, terminal-request and parse-error entries bypass
// the lock and go straight to an event, a reply or the debug log).
func (q QueuedCommand) ScreenTouching() bool {
	switch q.Kind {
	case QueuedMusic, QueuedBell, QueuedTerminalRequest, QueuedParseError:
		return false
	default:
		return true
	}
}

// QueueingSink implements parser.Sink by recording every call as a
// QueuedCommand under a mutex, instead of mutating a Buffer inline. The
// orchestrator's drain loop pops entries in FIFO order and applies the
// screen-touching ones while holding the buffer's own lock, processing
// everything else immediately.
type QueueingSink struct {
	mu    sync.Mutex
	queue []QueuedCommand
}

// NewQueueingSink returns an empty QueueingSink.
func NewQueueingSink() *QueueingSink { return &QueueingSink{} }

func (s *QueueingSink) push(q QueuedCommand) {
	s.mu.Lock()
	s.queue = append(s.queue, q)
	s.mu.Unlock()
}

// Drain removes and returns up to max queued entries in FIFO order. A
// max of 0 drains everything currently queued.
func (s *QueueingSink) Drain(max int) []QueuedCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max <= 0 || max >= len(s.queue) {
		out := s.queue
		s.queue = nil
		return out
	}
	out := append([]QueuedCommand{}, s.queue[:max]...)
	s.queue = s.queue[max:]
	return out
}

func (s *QueueingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *QueueingSink) Print(text []rune, inverse bool) {
	cp := append([]rune{}, text...)
	s.push(QueuedCommand{Kind: QueuedPrint, Text: cp, Inverse: inverse})
}

func (s *QueueingSink) Emit(cmd parser.Command) {
	s.push(QueuedCommand{Kind: QueuedEmit, Command: cmd})
}

func (s *QueueingSink) PlayMusic(music parser.AnsiMusic) {
	s.push(QueuedCommand{Kind: QueuedMusic, Music: music})
}

func (s *QueueingSink) EmitRip(data []byte) {
	s.push(QueuedCommand{Kind: QueuedRip, RipData: append([]byte{}, data...)})
}

func (s *QueueingSink) DeviceControl(dcs parser.DeviceControlString) {
	s.push(QueuedCommand{Kind: QueuedDeviceControl, DCS: dcs})
}

func (s *QueueingSink) OperatingSystemCommand(osc parser.OperatingSystemCommand) {
	s.push(QueuedCommand{Kind: QueuedOperatingSystemCommand, OSC: osc})
}

func (s *QueueingSink) Aps(data []byte) {
	s.push(QueuedCommand{Kind: QueuedAps, APSData: append([]byte{}, data...)})
}

func (s *QueueingSink) Request(req parser.TerminalRequest) {
	s.push(QueuedCommand{Kind: QueuedTerminalRequest, Request: req})
}

func (s *QueueingSink) Bell() {
	s.push(QueuedCommand{Kind: QueuedBell})
}

func (s *QueueingSink) ResizeTerminal(width, height int) {
	s.push(QueuedCommand{Kind: QueuedResize, Width: width, Height: height})
}

func (s *QueueingSink) ReportError(err error) {
	s.push(QueuedCommand{Kind: QueuedParseError, ParseError: err})
}

var _ parser.Sink = (*QueueingSink)(nil)
