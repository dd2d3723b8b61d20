package monitor

import (
	"bytes"
	"context"
	"time"

	serial "github.com/embeddedtools/serialmon"
)

// Target identifies the serial endpoint for a run. Immutable once the
// monitor starts.
type Target struct {
	Device      string
	BaudRate    int
	ReadTimeout time.Duration
}

// LineSource produces successive text lines from a serial transport.
//
// ReadLine returns the next complete line including its trailing newline.
// When a bounded read times out with partial data buffered, that data is
// returned without a trailing newline so prompts that never end in a
// newline still surface. An empty string with a nil error means the read
// timed out with nothing buffered; it is not an error and carries no data.
// A non-nil error means the transport failed (device unplugged, port
// closed) and the source is no longer usable.
type LineSource interface {
	ReadLine(ctx context.Context) (string, error)
	Close() error
}

// Opener opens the transport for a connection target. The supervisor takes
// it as a dependency so tests can substitute a scripted transport.
type Opener func(target Target) (LineSource, error)

// OpenSerial is the default Opener, backed by the serial package.
func OpenSerial(target Target) (LineSource, error) {
	tenths := int(target.ReadTimeout / (100 * time.Millisecond))
	if tenths < 1 {
		tenths = 1 // VTIME granularity; 0 would make reads non-blocking
	}

	port, err := serial.Open(target.Device,
		serial.WithBaudRate(target.BaudRate),
		serial.WithReadTimeout(tenths),
	)
	if err != nil {
		return nil, err
	}
	return &serialLineSource{port: port, buf: make([]byte, 4096)}, nil
}

// serialLineSource assembles newline-delimited lines from bounded reads.
// Partial data is held across calls until its newline arrives.
type serialLineSource struct {
	port    serial.Port
	buf     []byte
	pending bytes.Buffer
}

func (s *serialLineSource) ReadLine(ctx context.Context) (string, error) {
	// A previous read may have buffered more than one line.
	if line, ok := s.takeLine(); ok {
		return line, nil
	}

	n, err := s.port.ReadContext(ctx, s.buf)
	if err != nil {
		return "", err
	}
	if n == 0 {
		// Read timeout. Anything held back waiting for a newline goes out
		// now: the device has gone quiet mid-line, so the partial data is
		// all there is to show.
		return s.flushPartial(), nil
	}

	s.pending.Write(s.buf[:n])
	if line, ok := s.takeLine(); ok {
		return line, nil
	}
	return "", nil
}

// takeLine pops one complete line from the pending buffer, normalizing
// CRLF terminators to a bare newline.
func (s *serialLineSource) takeLine() (string, bool) {
	data := s.pending.Bytes()
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return "", false
	}

	line := data[:i+1]
	if i > 0 && line[i-1] == '\r' {
		line = line[:i-1]
	} else {
		line = line[:i]
	}
	out := string(line) + "\n"
	s.pending.Next(i + 1)
	return out, true
}

// flushPartial drains the pending buffer as one newline-less chunk, or
// returns "" when nothing is buffered.
func (s *serialLineSource) flushPartial() string {
	if s.pending.Len() == 0 {
		return ""
	}
	out := s.pending.String()
	s.pending.Reset()
	return out
}

func (s *serialLineSource) Close() error {
	return s.port.Close()
}
