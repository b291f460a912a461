package parser

// Parser recognizes a byte stream's structure and reports decoded effects
// to a Sink one byte at a time, so the orchestrator can swap in whichever
// emulation (ANSI, PETSCII, ATASCII, Viewdata) the session negotiated
// without changing how bytes are fed in.
type Parser interface {
	Parse(sink Sink, b byte)
}

// Sink receives the decoded effects of a parsed byte stream. A Parser never
// touches a Buffer directly; it only ever talks to a Sink, so the same
// parser can run against a DirectSink (applies immediately, what
// internal/edit and internal/format use) or a deferring sink that queues
// work for a lock-bounded drain loop (what internal/terminal's
// QueueingSink does).
type Sink interface {
	Print(text []rune, inverse bool)
	Emit(cmd Command)
	PlayMusic(music AnsiMusic)
	// EmitRip hands off one pipe-delimited RIP sub-command's raw text
	// (without the leading '|') to whatever decodes internal/rip.Command
	// values from it; the ANSI parser only recognizes the boundary.
	EmitRip(data []byte)
	DeviceControl(dcs DeviceControlString)
	OperatingSystemCommand(osc OperatingSystemCommand)
	Aps(data []byte)
	Request(req TerminalRequest)
	Bell()
	ResizeTerminal(width, height int)
	ReportError(err error)
}
