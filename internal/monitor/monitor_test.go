package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource plays back scripted lines ("" is a timeout read), then either
// fails with err or blocks until the context is cancelled.
type fakeSource struct {
	lines  []string
	err    error
	closed atomic.Bool
}

func (f *fakeSource) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.lines) == 0 {
		if f.err != nil {
			return "", f.err
		}
		<-ctx.Done()
		return "", ctx.Err()
	}

	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeSource) Close() error {
	f.closed.Store(true)
	return nil
}

func testConfig() Config {
	return Config{
		Target: Target{
			Device:   "/dev/ttyUSB0",
			BaudRate: 115200,
		},
		RetryDelay: time.Millisecond,
	}
}

func runSupervisor(t *testing.T, ctx context.Context, sup *Supervisor) chan error {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()
	return done
}

func TestSupervisorRetriesOpenUntilSuccess(t *testing.T) {
	const failures = 3

	var opens atomic.Int32
	connected := make(chan struct{})
	src := &fakeSource{}

	open := func(Target) (LineSource, error) {
		n := opens.Add(1)
		if n <= failures {
			return nil, errors.New("no such device")
		}
		close(connected)
		return src, nil
	}

	sink := NewSink(TimeOff, io.Discard, nil, nil)
	sup := NewSupervisor(testConfig(), open, sink, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := runSupervisor(t, ctx, sup)

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor never connected")
	}
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, int32(failures+1), opens.Load())
	assert.Equal(t, 0, sup.attempts, "attempt counter resets on successful connect")
	assert.True(t, src.closed.Load(), "device handle released on shutdown")
}

func TestSupervisorTimeoutReadsEmitNoRecords(t *testing.T) {
	var opens atomic.Int32
	reconnected := make(chan struct{})

	// First connection: three timeout reads, one real line, then the
	// transport fails. Second connection blocks until cancellation.
	open := func(Target) (LineSource, error) {
		if opens.Add(1) == 1 {
			return &fakeSource{
				lines: []string{"", "", "", "boot ok\n"},
				err:   errors.New("device removed"),
			}, nil
		}
		close(reconnected)
		return &fakeSource{}, nil
	}

	var out bytes.Buffer
	sink := NewSink(TimeOff, &out, nil, nil)
	sup := NewSupervisor(testConfig(), open, sink, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := runSupervisor(t, ctx, sup)

	select {
	case <-reconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor never reconnected after read failure")
	}
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, "boot ok\n", out.String(), "exactly one record, none for timeouts")
	assert.Equal(t, int32(2), opens.Load(), "read failure triggers one reconnect")
}

func TestSupervisorCancelDuringRetrySleep(t *testing.T) {
	var opens atomic.Int32
	attempted := make(chan struct{}, 1)

	open := func(Target) (LineSource, error) {
		opens.Add(1)
		select {
		case attempted <- struct{}{}:
		default:
		}
		return nil, errors.New("no such device")
	}

	sink := NewSink(TimeOff, io.Discard, nil, nil)
	cfg := testConfig()
	cfg.RetryDelay = time.Hour // cancellation must interrupt the sleep
	sup := NewSupervisor(cfg, open, sink, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := runSupervisor(t, ctx, sup)

	select {
	case <-attempted:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor never attempted an open")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "interrupt is a clean shutdown, not an error")
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not exit promptly mid-sleep")
	}

	after := opens.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, opens.Load(), "no further open attempts after exit")
}

func TestSupervisorStatusMessages(t *testing.T) {
	var opens atomic.Int32
	connected := make(chan struct{})

	open := func(Target) (LineSource, error) {
		if opens.Add(1) == 1 {
			return nil, errors.New("no such device")
		}
		close(connected)
		return &fakeSource{}, nil
	}

	var status bytes.Buffer
	sink := NewSink(TimeOff, io.Discard, nil, nil)
	sup := NewSupervisor(testConfig(), open, sink, &status)

	ctx, cancel := context.WithCancel(context.Background())
	done := runSupervisor(t, ctx, sup)

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor never connected")
	}
	cancel()
	require.NoError(t, <-done)

	plain := StripANSI(status.String())
	assert.Contains(t, plain, "waiting for /dev/ttyUSB0")
	assert.Contains(t, plain, "connected to /dev/ttyUSB0 @ 115200 baud")
	assert.Contains(t, plain, "interrupted, exiting")
}

// failWriter rejects every write, like a full disk.
type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func TestSupervisorOutputFailureIsFatal(t *testing.T) {
	var opens atomic.Int32
	src := &fakeSource{lines: []string{"boot ok\n"}}

	open := func(Target) (LineSource, error) {
		opens.Add(1)
		return src, nil
	}

	sink := NewSink(TimeOff, failWriter{}, nil, nil)
	sup := NewSupervisor(testConfig(), open, sink, io.Discard)

	done := runSupervisor(t, context.Background(), sup)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrOutputFailed)
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor kept reconnecting instead of failing")
	}

	assert.Equal(t, int32(1), opens.Load(), "a dead output must not trigger reconnects")
	assert.True(t, src.closed.Load(), "device handle released on fatal exit")
}

func TestSupervisorDefaults(t *testing.T) {
	sup := NewSupervisor(Config{}, nil, NewSink(TimeOff, io.Discard, nil, nil), io.Discard)

	assert.Equal(t, DefaultRetryDelay, sup.cfg.RetryDelay)
	assert.Equal(t, DefaultReadTimeout, sup.cfg.Target.ReadTimeout)
	assert.NotNil(t, sup.open)
}
