package terminal

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/logging"
	"github.com/stlalpha/icyengine/internal/parser"
	"github.com/stlalpha/icyengine/internal/transfer"
)

// TerminalCommand is one request the UI sends into the orchestrator.
type TerminalCommand struct {
	Kind          string // "connect", "disconnect", "send", "resize", "set_baud", "start_capture", "stop_capture", "start_transfer", "cancel_transfer"
	Config        SSHConfig
	Data          []byte
	Width, Height int
	BaudRate      int
	CapturePath   string
	Protocol      transfer.Protocol
	Direction     transfer.Direction
	Paths         []string
}

// TerminalEvent is one notification the orchestrator sends out to the UI.
type TerminalEvent struct {
	Kind      string // "connected", "disconnected", "error", "music", "bell", "auto_transfer", "emsi_login", "transfer_complete"
	Err       error
	Title     string
	Detail    string
	Music     parser.AnsiMusic
	Protocol  string
	SessionID uuid.UUID // set on "transfer_complete", correlates back to the start_transfer command
}

const (
	tickInterval     = 16 * time.Millisecond
	connPollInterval = 48 * time.Millisecond
	lockBudget       = 10 * time.Millisecond
	readChunkSize    = 64 * 1024
)

// Orchestrator owns a live Connection, a Parser, and the QueueingSink
// between them, running its drain loop on its own goroutine so a UI
// holding the same Buffer's lock only ever blocks for bounded batches.
type Orchestrator struct {
	Commands chan TerminalCommand
	Events   chan TerminalEvent

	mu   *sync.Mutex // guards Buf; supplied by the host, not owned here
	Buf  *buffer.Buffer
	caret *buffer.Caret

	conn   Connection
	parse  parser.Parser
	sink   *QueueingSink
	baud   *BaudEmulator
	modem  *EmulatedModem
	cap    *Capture
	utf8   *UTF8Reassembler
	xfer     *AutoFileTransfer
	transfer *activeTransfer
	emsi     *IEmsiAutoLogin
	utf8Mode bool

	lastPoll time.Time
	stop     chan struct{}
}

// NewOrchestrator builds an orchestrator over buf, guarded by mu (the
// same mutex a renderer locks before reading buf).
func NewOrchestrator(buf *buffer.Buffer, mu *sync.Mutex) *Orchestrator {
	return &Orchestrator{
		Commands: make(chan TerminalCommand, 64),
		Events:   make(chan TerminalEvent, 64),
		mu:       mu,
		Buf:      buf,
		caret:    buf.Caret,
		parse:    parser.NewAnsiParser(),
		sink:     NewQueueingSink(),
		baud:     NewBaudEmulator(0),
		modem:    NewEmulatedModem(),
		utf8:     &UTF8Reassembler{},
		xfer:     NewAutoFileTransfer(),
		stop:     make(chan struct{}),
	}
}

// SetParser swaps the active Parser, e.g. when the negotiated emulation
// changes from ANSI to PETSCII mid-session.
func (o *Orchestrator) SetParser(p parser.Parser) { o.parse = p }

// SetEmsiCredentials installs auto-login credentials; nil disables it.
func (o *Orchestrator) SetEmsiCredentials(creds *EmsiCredentials) {
	if creds == nil {
		o.emsi = nil
		return
	}
	o.emsi = NewIEmsiAutoLogin(*creds)
}

// Run executes the main loop until Stop is called; intended to be
// launched with `go o.Run()`.
func (o *Orchestrator) Run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	o.lastPoll = time.Now()
	for {
		select {
		case <-o.stop:
			return
		case cmd := <-o.Commands:
			o.handleCommand(cmd)
		case <-ticker.C:
			o.tick()
		}
	}
}

// Stop terminates Run's loop.
func (o *Orchestrator) Stop() { close(o.stop) }

func (o *Orchestrator) handleCommand(cmd TerminalCommand) {
	switch cmd.Kind {
	case "connect":
		conn, err := DialSSH(cmd.Config)
		if err != nil {
			o.Events <- TerminalEvent{Kind: "error", Title: "connect failed", Detail: err.Error(), Err: err}
			return
		}
		o.conn = conn
		o.modem.SetConnected(true)
		o.Events <- TerminalEvent{Kind: "connected"}
	case "disconnect":
		if o.conn != nil {
			o.conn.Close()
		}
		o.modem.SetConnected(false)
		o.Events <- TerminalEvent{Kind: "disconnected"}
	case "send":
		if o.conn != nil {
			o.conn.Write(cmd.Data)
		}
	case "resize":
		o.sink.ResizeTerminal(cmd.Width, cmd.Height)
	case "set_baud":
		o.baud.SetRate(cmd.BaudRate)
	case "start_capture":
		c, err := StartCapture(cmd.CapturePath)
		if err != nil {
			o.Events <- TerminalEvent{Kind: "error", Title: "capture failed", Detail: err.Error(), Err: err}
			return
		}
		o.cap = c
	case "stop_capture":
		o.cap.Stop()
		o.cap = nil
	case "start_transfer":
		if o.conn == nil || o.transfer != nil {
			return
		}
		sess := transfer.NewSession(cmd.Protocol, cmd.Direction, cmd.Paths)
		o.transfer = startTransfer(sess, o.conn)
	case "cancel_transfer":
		if o.transfer != nil {
			o.transfer.cancel()
		}
	}
}

func (o *Orchestrator) tick() {
	now := time.Now()
	released := o.baud.Release(now)
	for _, b := range released {
		o.parse.Parse(o.sink, b)
	}
	o.drainSink()

	if o.transfer != nil {
		id := o.transfer.id()
		if done, err := o.transfer.step(); done {
			o.transfer = nil
			o.Events <- TerminalEvent{Kind: "transfer_complete", Err: err, SessionID: id}
		}
		return
	}

	if o.conn == nil || now.Sub(o.lastPoll) < connPollInterval {
		return
	}
	o.lastPoll = now
	if !o.conn.Alive() {
		o.modem.SetConnected(false)
		o.Events <- TerminalEvent{Kind: "disconnected"}
		o.conn = nil
		return
	}

	buf := make([]byte, readChunkSize)
	n, err := o.conn.Read(buf)
	if n > 0 {
		data := buf[:n]
		if o.cap != nil {
			if werr := o.cap.Write(data); werr != nil {
				logging.Debug("terminal: capture write failed: %v", werr)
			}
		}
		if o.utf8Mode {
			data = o.utf8.Feed(data)
		}
		for _, b := range data {
			if proto, ok := o.xfer.Feed(b); ok {
				o.Events <- TerminalEvent{Kind: "auto_transfer", Protocol: proto}
			}
			if o.emsi != nil {
				if reply := o.emsi.Feed(b); reply != "" {
					o.conn.Write([]byte(reply))
					o.Events <- TerminalEvent{Kind: "emsi_login"}
				}
			}
			if modemReply := o.modem.Feed(b); modemReply != "" {
				o.conn.Write([]byte(modemReply))
				continue
			}
			o.baud.Feed([]byte{b})
		}
	}
	if err != nil {
		o.modem.SetConnected(false)
		o.Events <- TerminalEvent{Kind: "disconnected", Err: err}
		o.conn = nil
	}
}

// drainSink applies queued screen-touching entries in lock-bounded
// batches, handling the always-outside-the-lock kinds (music, bell,
// terminal replies) immediately regardless of batch boundaries.
func (o *Orchestrator) drainSink() {
	for {
		entries := o.sink.Drain(256)
		if len(entries) == 0 {
			return
		}
		deadline := time.Now().Add(lockBudget)
		o.mu.Lock()
		locked := true
		for i, e := range entries {
			if !e.ScreenTouching() {
				if locked {
					o.mu.Unlock()
					locked = false
				}
				o.handleSideEffect(e)
				continue
			}
			if !locked {
				o.mu.Lock()
				locked = true
			}
			o.applyScreenTouching(e)
			if time.Now().After(deadline) && i < len(entries)-1 {
				o.mu.Unlock()
				locked = false
				time.Sleep(0)
				o.mu.Lock()
				locked = true
				deadline = time.Now().Add(lockBudget)
			}
		}
		if locked {
			o.mu.Unlock()
		}
	}
}

func (o *Orchestrator) applyScreenTouching(e QueuedCommand) {
	switch e.Kind {
	case QueuedPrint:
		ds := parser.DirectSink{Buf: o.Buf, Caret: o.caret}
		ds.Print(e.Text, e.Inverse)
	case QueuedEmit:
		parser.Apply(o.Buf, o.caret, e.Command)
	case QueuedResize:
		o.Buf.TerminalState.Size = buffer.Size{Width: e.Width, Height: e.Height}
	case QueuedRip, QueuedIgs, QueuedDeviceControl, QueuedOperatingSystemCommand, QueuedAps:
		// RIP/IGS pixel decoding and DCS/OSC/APS side channels are
		// consumed by callers that wrap Orchestrator (a RIP/IGS engine
		// attached to this buffer's layer); nothing more to do here.
	}
}

func (o *Orchestrator) handleSideEffect(e QueuedCommand) {
	switch e.Kind {
	case QueuedMusic:
		o.Events <- TerminalEvent{Kind: "music", Music: e.Music}
	case QueuedBell:
		o.Events <- TerminalEvent{Kind: "bell"}
	case QueuedTerminalRequest:
		reply := parser.BuildReply(o.Buf, e.Request)
		if o.conn != nil {
			o.conn.Write([]byte(reply))
		}
	case QueuedParseError:
		logging.Debug("terminal: parse error: %v", e.ParseError)
	}
}
