package serial

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// Config holds the configuration for a serial port
type Config struct {
	BaudRate          int
	DataBits          int
	StopBits          int
	Parity            Parity
	ReadTimeoutTenths int // VTIME setting in tenths of seconds (0-255)
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:          115200,
		DataBits:          8,
		StopBits:          1,
		Parity:            ParityNone,
		ReadTimeoutTenths: 1, // 100ms, the smallest non-blocking-ish VTIME bound
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, err := getBaudRate(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithDataBits sets the number of data bits (5, 6, 7, or 8)
func WithDataBits(bits int) Option {
	return func(c *Config) error {
		if bits < 5 || bits > 8 {
			return ErrInvalidConfig
		}
		c.DataBits = bits
		return nil
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		if bits != 1 && bits != 2 {
			return ErrInvalidConfig
		}
		c.StopBits = bits
		return nil
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		c.Parity = parity
		return nil
	}
}

// WithReadTimeout sets the read timeout in tenths of seconds (VTIME)
func WithReadTimeout(tenths int) Option {
	return func(c *Config) error {
		if tenths < 0 || tenths > 255 {
			return ErrInvalidConfig
		}
		c.ReadTimeoutTenths = tenths
		return nil
	}
}
