package serial

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Port represents a serial port connection interface
type Port interface {
	Close() error
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	ReadContext(ctx context.Context, buf []byte) (int, error)
	WriteContext(ctx context.Context, data []byte) (int, error)
	Drain() error
	FlushInput() error
	FlushOutput() error
}

// port is the concrete implementation of the Port interface
type port struct {
	mu     sync.RWMutex
	fd     int
	config Config
	closed bool
}

// Ensure port implements Port interface at compile time
var _ Port = (*port)(nil)

// getBaudRate converts an integer baud rate to the unix constant
func getBaudRate(rate int) (uint32, error) {
	switch rate {
	case 50:
		return unix.B50, nil
	case 75:
		return unix.B75, nil
	case 110:
		return unix.B110, nil
	case 134:
		return unix.B134, nil
	case 150:
		return unix.B150, nil
	case 200:
		return unix.B200, nil
	case 300:
		return unix.B300, nil
	case 600:
		return unix.B600, nil
	case 1200:
		return unix.B1200, nil
	case 1800:
		return unix.B1800, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 500000:
		return unix.B500000, nil
	case 576000:
		return unix.B576000, nil
	case 921600:
		return unix.B921600, nil
	case 1000000:
		return unix.B1000000, nil
	case 1152000:
		return unix.B1152000, nil
	case 1500000:
		return unix.B1500000, nil
	case 2000000:
		return unix.B2000000, nil
	case 2500000:
		return unix.B2500000, nil
	case 3000000:
		return unix.B3000000, nil
	case 3500000:
		return unix.B3500000, nil
	case 4000000:
		return unix.B4000000, nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

// Open opens a serial port with the given device path and options
func Open(device string, opts ...Option) (Port, error) {
	// Apply default configuration
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		switch err {
		case unix.ENOENT:
			return nil, ErrDeviceNotFound
		case unix.EACCES:
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("failed to open %s: %v", device, err)
	}

	if err := configurePort(fd, config); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &port{
		fd:     fd,
		config: config,
		closed: false,
	}, nil
}

// configurePort configures the serial port using clean unix package calls
func configurePort(fd int, config Config) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %v", err)
	}

	// Configure for raw mode, 8N1 by default
	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL
	termios.Iflag = 0 // No input processing
	termios.Oflag = 0 // No output processing
	termios.Lflag = 0 // No line processing (raw mode)

	// Timeout: VMIN=0, VTIME from config (deciseconds). A read returns as
	// soon as data arrives, or empty after the timeout elapses.
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = uint8(config.ReadTimeoutTenths)

	baudRate, err := getBaudRate(config.BaudRate)
	if err != nil {
		return err
	}

	// Set speed directly in termios structure
	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baudRate
	termios.Ispeed = baudRate
	termios.Ospeed = baudRate

	// Data bits
	if config.DataBits != 8 {
		termios.Cflag &^= unix.CSIZE
		switch config.DataBits {
		case 5:
			termios.Cflag |= unix.CS5
		case 6:
			termios.Cflag |= unix.CS6
		case 7:
			termios.Cflag |= unix.CS7
		case 8:
			termios.Cflag |= unix.CS8
		}
	}

	// Stop bits
	if config.StopBits == 2 {
		termios.Cflag |= unix.CSTOPB
	}

	// Parity
	switch config.Parity {
	case ParityOdd:
		termios.Cflag |= unix.PARENB | unix.PARODD
	case ParityEven:
		termios.Cflag |= unix.PARENB
	}

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %v", err)
	}

	return nil
}

// Close closes the serial port
func (p *port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}

	err := unix.Close(p.fd)
	p.closed = true
	return err
}

// Read reads data from the serial port. With VMIN=0/VTIME set, a return of
// (0, nil) means the timeout elapsed with no data available.
func (p *port) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Read(p.fd, buf)
}

// Write writes data to the serial port
func (p *port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Write(p.fd, data)
}

// ReadContext reads data with context cancellation support
func (p *port) ReadContext(ctx context.Context, buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	// Check if context is already cancelled
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	type readResult struct {
		n   int
		err error
	}
	resultCh := make(chan readResult, 1)

	// Perform read in goroutine; VTIME bounds how long it can block
	go func() {
		n, err := unix.Read(p.fd, buf)
		resultCh <- readResult{n: n, err: err}
	}()

	select {
	case result := <-resultCh:
		return result.n, result.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// WriteContext writes data with context cancellation support
func (p *port) WriteContext(ctx context.Context, data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	type writeResult struct {
		n   int
		err error
	}
	resultCh := make(chan writeResult, 1)

	go func() {
		n, err := unix.Write(p.fd, data)
		resultCh <- writeResult{n: n, err: err}
	}()

	select {
	case result := <-resultCh:
		return result.n, result.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Drain waits until all output written to the port has been transmitted
func (p *port) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCSBRK, 1)
}

// FlushInput discards any unread input data
func (p *port) FlushInput() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// FlushOutput discards any unwritten output data
func (p *port) FlushOutput() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCOFLUSH)
}
