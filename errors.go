package serial

import "errors"

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrPortClosed       = errors.New("serial port is closed")
)
