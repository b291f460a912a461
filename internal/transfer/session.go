package transfer

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/google/uuid"
)

// Direction selects which side of a Protocol's external command a
// Session drives.
type Direction int

const (
	DirectionSend Direction = iota
	DirectionReceive
)

// Session adapts a Protocol's external sz/rz-style command to a plain
// io.ReadWriter peer rather than a gliderlabs/ssh.Session, the same
// pty-pump shape as RunCommandWithPTY but generalized from a server-side
// session to whatever the caller is driving (here,
// terminal.Orchestrator's Connection). File-transfer wire protocols
// themselves are out of scope; this only needs to run the same external
// binaries the teacher already shells out to and pump bytes between
// them and the peer.
type Session struct {
	ID        uuid.UUID
	protocol  Protocol
	direction Direction
	paths     []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewSession prepares a transfer of paths over protocol in the given
// direction. Run appends paths to the external command's arguments in
// either direction. The session's ID lets
// a UI correlate a later "transfer_complete" event back to the
// start_transfer command that spawned it.
func NewSession(protocol Protocol, direction Direction, paths []string) *Session {
	return &Session{ID: uuid.New(), protocol: protocol, direction: direction, paths: paths}
}

// Run drives the transfer to completion, pumping bytes between the
// external protocol command's pty and peer until one side closes or
// Cancel kills the command. Intended to be launched on its own
// goroutine; the orchestrator polls completion rather than blocking on
// this call.
func (s *Session) Run(peer io.ReadWriter) error {
	name, args := s.command()
	cmd := exec.Command(name, append(append([]string{}, args...), s.paths...)...)

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	defer ptmx.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		io.Copy(ptmx, peer) //nolint:errcheck
	}()
	go func() {
		defer wg.Done()
		io.Copy(peer, ptmx) //nolint:errcheck
	}()
	wg.Wait()

	err = cmd.Wait()
	if err != nil && errors.Is(err, syscall.EIO) {
		return nil
	}
	return err
}

// Cancel kills the running external command, unblocking Run's io.Copy
// pair and causing it to return promptly.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
}

func (s *Session) command() (name string, args []string) {
	if s.direction == DirectionSend {
		return s.protocol.SendCommand, s.protocol.SendArgs
	}
	return s.protocol.RecvCommand, s.protocol.RecvArgs
}
