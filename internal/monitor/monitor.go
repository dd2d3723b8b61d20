// Package monitor implements the resilient serial monitoring loop: a
// reconnect supervisor that owns the device handle, a line source that
// assembles bounded reads into lines, and a sink that fans each line out
// to the terminal and an optional log file.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrOutputFailed marks a failure writing captured data to the terminal or
// log file. Unlike transport errors it is not recoverable by reconnecting,
// so the supervisor treats it as fatal.
var ErrOutputFailed = errors.New("failed to write captured output")

// DefaultRetryDelay is the pause between reconnect attempts.
const DefaultRetryDelay = 200 * time.Millisecond

// DefaultReadTimeout bounds each blocking read so the loop stays
// responsive to cancellation.
const DefaultReadTimeout = 100 * time.Millisecond

// Config holds everything the supervisor needs for one run.
type Config struct {
	Target     Target
	RetryDelay time.Duration // zero means DefaultRetryDelay
}

// Supervisor owns the connect/read/fail/retry state machine. It guarantees
// forward progress across transient connection loss: open failures and
// mid-stream read errors both lead back to reconnecting, never to exit.
// Run ends only on context cancellation or a failed output write.
type Supervisor struct {
	cfg    Config
	open   Opener
	sink   *Sink
	status io.Writer

	attempts int // consecutive failed opens, reset on connect
}

// NewSupervisor wires a supervisor. open may be nil for the serial-backed
// default; status receives the spinner line and connection banners.
func NewSupervisor(cfg Config, open Opener, sink *Sink, status io.Writer) *Supervisor {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Target.ReadTimeout <= 0 {
		cfg.Target.ReadTimeout = DefaultReadTimeout
	}
	if open == nil {
		open = OpenSerial
	}
	return &Supervisor{cfg: cfg, open: open, sink: sink, status: status}
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Run drives the monitor until ctx is cancelled, absorbing transient
// transport failures by reconnecting. Cancellation is a controlled
// shutdown and returns nil; the only error Run returns is ErrOutputFailed,
// since a destination that cannot be written to makes monitoring pointless.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		src, err := s.connect(ctx)
		if err != nil {
			// Only cancellation escapes connect.
			s.farewell()
			return nil
		}

		err = s.readLoop(ctx, src)
		src.Close()

		if ctx.Err() != nil {
			s.farewell()
			return nil
		}

		if errors.Is(err, ErrOutputFailed) {
			fmt.Fprintf(s.status, "\r%s\n",
				disconnectedStyle.Render(fmt.Sprintf("Monitor: %v", err)))
			return err
		}

		fmt.Fprintf(s.status, "\r%s\n",
			disconnectedStyle.Render(fmt.Sprintf("Monitor: disconnected (%v)", err)))
	}
}

// connect retries the open until it succeeds or ctx is cancelled. The
// waiting indicator overwrites itself in place; no scrollback spam.
func (s *Supervisor) connect(ctx context.Context) (LineSource, error) {
	s.attempts = 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := s.open(s.cfg.Target)
		if err == nil {
			s.attempts = 0
			fmt.Fprintf(s.status, "\r%s\n", connectedStyle.Render(
				fmt.Sprintf("Monitor: connected to %s @ %d baud",
					s.cfg.Target.Device, s.cfg.Target.BaudRate)))
			return src, nil
		}

		s.attempts = s.spin(s.attempts)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.cfg.RetryDelay):
		}
	}
}

// spin redraws the waiting indicator and advances the attempt counter.
func (s *Supervisor) spin(attempt int) int {
	frame := spinnerFrames[attempt%len(spinnerFrames)]
	fmt.Fprintf(s.status, "\r%s", waitingStyle.Render(
		fmt.Sprintf("Monitor: waiting for %s %s", s.cfg.Target.Device, frame)))
	return attempt + 1
}

// readLoop reads until the transport fails or ctx is cancelled. A timeout
// read carries no data and produces no record.
func (s *Supervisor) readLoop(ctx context.Context, src LineSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := src.ReadLine(ctx)
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		rec := Record{Raw: line, Captured: time.Now().UTC()}
		if err := s.sink.Emit(rec); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputFailed, err)
		}
	}
}

func (s *Supervisor) farewell() {
	fmt.Fprintf(s.status, "\r%s\n", waitingStyle.Render("Monitor: interrupted, exiting"))
}
