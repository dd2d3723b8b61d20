// Package serial provides a clean, idiomatic Go library for serial port
// communication on Linux, built directly on termios via golang.org/x/sys.
//
// It is the transport layer underneath the serialmon monitoring tool, tuned
// for line-oriented logging from embedded devices: reads are bounded by a
// short kernel-side timeout (VMIN=0/VTIME) so a caller can poll for data
// without ever blocking indefinitely, and all I/O has context-aware
// variants for prompt cancellation.
//
// # Basic Usage
//
// Open a serial port with default configuration (115200 8N1):
//
//	port, err := serial.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	buffer := make([]byte, 256)
//	n, err := port.Read(buffer)
//
// A Read that returns (0, nil) means the read timeout elapsed with no data;
// it is not an error. Transport failures (such as a USB device being
// unplugged) surface as errors from Read.
//
// # Configuration Options
//
// Use functional options for custom configuration:
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(2000000),
//	    serial.WithReadTimeout(1), // VTIME in deciseconds
//	)
//
// # Port Discovery
//
// List available serial ports and get USB device metadata:
//
//	ports, err := serial.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := serial.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s\n", info.Path, info.Description)
//	}
//
// # Context Support
//
// I/O operations support context for timeout and cancellation control:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	n, err := port.ReadContext(ctx, buffer)
//
// # Error Handling
//
// The library provides specific error types; use errors.Is() for checks:
//
//	if errors.Is(err, serial.ErrDeviceNotFound) {
//	    // device missing or not yet enumerated
//	}
//
// # Platform Support
//
// Linux only (x86_64 and ARM). Port discovery and USB metadata rely on
// /dev naming conventions and sysfs.
package serial
