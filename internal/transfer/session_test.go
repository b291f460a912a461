package transfer

import (
	"testing"

	"github.com/google/uuid"
)

func TestSessionCommandSelectsSendSide(t *testing.T) {
	s := NewSession(ZMODEM, DirectionSend, []string{"/tmp/a.zip"})
	name, args := s.command()
	if name != ZMODEM.SendCommand {
		t.Fatalf("want %q, got %q", ZMODEM.SendCommand, name)
	}
	if len(args) != len(ZMODEM.SendArgs) {
		t.Fatalf("want args %v, got %v", ZMODEM.SendArgs, args)
	}
}

func TestSessionCommandSelectsReceiveSide(t *testing.T) {
	s := NewSession(XMODEM, DirectionReceive, nil)
	name, _ := s.command()
	if name != XMODEM.RecvCommand {
		t.Fatalf("want %q, got %q", XMODEM.RecvCommand, name)
	}
}

func TestSessionCancelBeforeRunIsNoOp(t *testing.T) {
	s := NewSession(ZMODEM, DirectionSend, nil)
	s.Cancel() // must not panic when no command has been started yet
}

func TestNewSessionAssignsDistinctIDs(t *testing.T) {
	a := NewSession(ZMODEM, DirectionSend, nil)
	b := NewSession(ZMODEM, DirectionSend, nil)
	if a.ID == (uuid.UUID{}) {
		t.Fatal("expected a non-zero session ID")
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct sessions to get distinct IDs")
	}
}
