package terminal

import "time"

// BaudEmulator delays outgoing-to-screen bytes to approximate a chosen
// bit rate, the way real BBS terminal programs throttled fast modems for
// effect (or slow ones were throttled for real).
type BaudEmulator struct {
	bitsPerSecond int
	buf           []byte
	lastRelease   time.Time
	carry         float64 // fractional bytes owed from the last tick
}

// NewBaudEmulator returns an emulator at bps bits per second; bps <= 0
// means unthrottled (every buffered byte releases immediately).
func NewBaudEmulator(bps int) *BaudEmulator {
	return &BaudEmulator{bitsPerSecond: bps, lastRelease: time.Now()}
}

// SetRate changes the emulated bit rate.
func (b *BaudEmulator) SetRate(bps int) { b.bitsPerSecond = bps }

// Feed appends freshly read bytes to the emulator's internal buffer.
func (b *BaudEmulator) Feed(data []byte) {
	b.buf = append(b.buf, data...)
}

// Release returns the bytes that should be handed to the parser this
// tick given elapsed wall-clock time, leaving the rest buffered.
func (b *BaudEmulator) Release(now time.Time) []byte {
	if b.bitsPerSecond <= 0 {
		out := b.buf
		b.buf = nil
		b.lastRelease = now
		return out
	}
	elapsed := now.Sub(b.lastRelease).Seconds()
	b.lastRelease = now
	bytesPerSecond := float64(b.bitsPerSecond) / 10.0 // 8 data bits + start/stop framing
	owed := bytesPerSecond*elapsed + b.carry
	n := int(owed)
	b.carry = owed - float64(n)
	if n > len(b.buf) {
		n = len(b.buf)
	}
	out := b.buf[:n]
	b.buf = b.buf[n:]
	return out
}

// Pending reports how many bytes are still waiting to be released.
func (b *BaudEmulator) Pending() int { return len(b.buf) }
