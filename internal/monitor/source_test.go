package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort scripts the transport: each entry is either a string chunk
// returned by one read (empty string means a read timeout) or an error.
type fakePort struct {
	script []any
	closed bool
}

func (f *fakePort) ReadContext(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(f.script) == 0 {
		return 0, nil
	}

	next := f.script[0]
	f.script = f.script[1:]
	switch v := next.(type) {
	case string:
		return copy(buf, v), nil
	case error:
		return 0, v
	}
	return 0, nil
}

func (f *fakePort) Read(buf []byte) (int, error) {
	return f.ReadContext(context.Background(), buf)
}

func (f *fakePort) Write(data []byte) (int, error) { return len(data), nil }
func (f *fakePort) WriteContext(ctx context.Context, data []byte) (int, error) {
	return len(data), nil
}
func (f *fakePort) Close() error { f.closed = true; return nil }
func (f *fakePort) Drain() error { return nil }
func (f *fakePort) FlushInput() error  { return nil }
func (f *fakePort) FlushOutput() error { return nil }

func readAvailableLines(t *testing.T, src *serialLineSource, reads int) []string {
	t.Helper()

	var lines []string
	for i := 0; i < reads; i++ {
		line, err := src.ReadLine(context.Background())
		require.NoError(t, err)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestReadLineAssemblesSplitLines(t *testing.T) {
	port := &fakePort{script: []any{"hel", "lo\nwo", "rld\n"}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	lines := readAvailableLines(t, src, 4)
	assert.Equal(t, []string{"hello\n", "world\n"}, lines)
}

func TestReadLineBuffersMultipleLinesFromOneRead(t *testing.T) {
	port := &fakePort{script: []any{"one\ntwo\nthree\n"}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	lines := readAvailableLines(t, src, 3)
	assert.Equal(t, []string{"one\n", "two\n", "three\n"}, lines)
}

func TestReadLineTimeoutYieldsEmptyNoError(t *testing.T) {
	port := &fakePort{script: []any{"", "", "data\n"}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	for i := 0; i < 2; i++ {
		line, err := src.ReadLine(context.Background())
		require.NoError(t, err)
		assert.Empty(t, line)
	}

	line, err := src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "data\n", line)
}

func TestReadLineNormalizesCRLF(t *testing.T) {
	port := &fakePort{script: []any{"status: ok\r\n"}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	line, err := src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "status: ok\n", line)
}

func TestReadLinePreservesBlankDeviceLines(t *testing.T) {
	// A bare newline from the device is a real (blank) line, not a timeout.
	port := &fakePort{script: []any{"\n"}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	line, err := src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "\n", line)
}

func TestReadLineFlushesPartialOnTimeout(t *testing.T) {
	// A prompt that never ends in a newline must surface once the device
	// goes quiet, not sit in the buffer until more data arrives.
	port := &fakePort{script: []any{"Continue? [y/n]: "}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	line, err := src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Empty(t, line, "data just arrived, a newline may still follow")

	line, err = src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Continue? [y/n]: ", line)

	// Buffer is drained; further timeouts carry no data.
	line, err = src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Empty(t, line)
}

func TestReadLineFlushDoesNotSplitCompleteLines(t *testing.T) {
	port := &fakePort{script: []any{"full line\npartial"}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	line, err := src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "full line\n", line)

	line, err = src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "partial", line)
}

func TestReadLinePropagatesTransportErrors(t *testing.T) {
	transportErr := errors.New("input/output error")
	port := &fakePort{script: []any{"partial", transportErr}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	line, err := src.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Empty(t, line)

	_, err = src.ReadLine(context.Background())
	assert.ErrorIs(t, err, transportErr)
}

func TestReadLineHonorsCancelledContext(t *testing.T) {
	port := &fakePort{script: []any{"data\n"}}
	src := &serialLineSource{port: port, buf: make([]byte, 64)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.ReadLine(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
