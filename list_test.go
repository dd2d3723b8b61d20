package serial

import "testing"

func TestSerialDevicePattern(t *testing.T) {
	tests := []struct {
		name  string
		match bool
	}{
		{"ttyUSB0", true},
		{"ttyUSB12", true},
		{"ttyACM0", true},
		{"ttyS0", true},
		{"ttyAMA0", true},
		{"ttymxc2", true},
		{"ttySAC1", true},
		{"ttyTHS3", true},
		{"ttyO1", true},
		{"tty1", false},     // virtual terminal
		{"tty", false},      // controlling terminal
		{"console", false},  // console
		{"ptmx", false},     // pseudo-terminal multiplexer
		{"pts", false},      // pseudo-terminal slaves
		{"ttyUSB", false},   // missing device number
		{"xttyUSB0", false}, // not anchored
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serialDevicePattern.MatchString(tt.name); got != tt.match {
				t.Errorf("serialDevicePattern.MatchString(%q) = %v, want %v", tt.name, got, tt.match)
			}
		})
	}
}

func TestPortDescription(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttyS0", "Standard Serial Port"},
		{"ttymxc1", "i.MX Serial Port"},
		{"something", "Serial Port"},
	}

	for _, tt := range tests {
		if got := portDescription(tt.name); got != tt.want {
			t.Errorf("portDescription(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGetPortInfoMissingDevice(t *testing.T) {
	_, err := GetPortInfo("/dev/nonexistent")
	if err != ErrDeviceNotFound {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}
