package terminal

import (
	"bufio"
	"os"
	"time"
)

const (
	captureBufferSize  = 4096
	captureFlushPeriod = 100 * time.Millisecond
)

// Capture appends raw connection bytes to a write-buffered log file,
// flushing on buffer-full or a 100 ms timer, whichever comes first, so a
// session transcript survives a crash without an fsync per byte.
type Capture struct {
	file        *os.File
	w           *bufio.Writer
	lastFlush   time.Time
	unwritten   int
}

// StartCapture opens (or truncates) path for writing and begins
// buffering.
func StartCapture(path string) (*Capture, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Capture{
		file:      f,
		w:         bufio.NewWriterSize(f, captureBufferSize),
		lastFlush: time.Now(),
	}, nil
}

// Write appends data to the capture buffer, flushing if the buffer is
// full or the flush period has elapsed.
func (c *Capture) Write(data []byte) error {
	if c == nil {
		return nil
	}
	if _, err := c.w.Write(data); err != nil {
		return err
	}
	c.unwritten += len(data)
	if c.unwritten >= captureBufferSize || time.Since(c.lastFlush) >= captureFlushPeriod {
		return c.flush()
	}
	return nil
}

func (c *Capture) flush() error {
	c.unwritten = 0
	c.lastFlush = time.Now()
	return c.w.Flush()
}

// Stop flushes and closes the capture file.
func (c *Capture) Stop() error {
	if c == nil {
		return nil
	}
	if err := c.w.Flush(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}
