package terminal

import (
	"github.com/google/uuid"

	"github.com/stlalpha/icyengine/internal/transfer"
)

// activeTransfer adapts a blocking transfer.Session to the
// orchestrator's non-blocking tick loop: starting one launches
// Session.Run on its own goroutine, and each tick's step only polls
// whether it has finished yet, per spec.md §4.9's "if a file transfer
// is active, drive its sub-loop instead of reading."
type activeTransfer struct {
	session *transfer.Session
	done    chan error
}

func startTransfer(sess *transfer.Session, peer Connection) *activeTransfer {
	t := &activeTransfer{session: sess, done: make(chan error, 1)}
	go func() { t.done <- sess.Run(peer) }()
	return t
}

// step reports whether the transfer has finished, and its error if so.
// A nil, false result means the transfer is still running.
func (t *activeTransfer) step() (done bool, err error) {
	select {
	case err = <-t.done:
		return true, err
	default:
		return false, nil
	}
}

func (t *activeTransfer) cancel() { t.session.Cancel() }

func (t *activeTransfer) id() uuid.UUID { return t.session.ID }
