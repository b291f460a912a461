package terminal

import (
	"fmt"
	"strings"
)

// EmulatedModem answers AT-command-style input with the responses a
// Hayes-compatible modem would give while no real connection exists,
// letting dialer UIs built against a real-modem protocol work unmodified
// against other transports.
type EmulatedModem struct {
	connected bool
	echo      bool
	buf       strings.Builder
}

// NewEmulatedModem returns a modem in the disconnected, echo-on state.
func NewEmulatedModem() *EmulatedModem {
	return &EmulatedModem{echo: true}
}

// SetConnected updates whether the modem reports itself as carrying a
// call; while connected, Feed answers nothing and buffers no input.
func (m *EmulatedModem) SetConnected(connected bool) { m.connected = connected }

// Feed processes one input byte, returning a response string once a
// complete AT command line (terminated by CR) has accumulated, or ""
// if more input is needed.
func (m *EmulatedModem) Feed(b byte) string {
	if m.connected {
		return ""
	}
	switch b {
	case '\r', '\n':
		line := strings.ToUpper(strings.TrimSpace(m.buf.String()))
		m.buf.Reset()
		if line == "" {
			return ""
		}
		return m.respond(line)
	default:
		m.buf.WriteByte(b)
		return ""
	}
}

func (m *EmulatedModem) respond(line string) string {
	switch {
	case line == "AT":
		return "OK\r\n"
	case strings.HasPrefix(line, "ATD"):
		target := strings.TrimPrefix(line, "ATD")
		return fmt.Sprintf("DIALING %s\r\nCONNECT 57600\r\n", target)
	case line == "ATH" || line == "ATH0":
		return "OK\r\n"
	case line == "ATZ":
		return "OK\r\n"
	default:
		return "ERROR\r\n"
	}
}
