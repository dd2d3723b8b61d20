package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// serialDevicePattern matches communication-capable serial devices in /dev.
// Virtual terminals (tty1, tty2, ...) and pseudo-terminals never match.
var serialDevicePattern = regexp.MustCompile(
	`^tty(USB|ACM|AMA|mxc|SAC|THS|S|O)\d+$`)

// ListPorts returns a sorted list of available serial ports on the system
func ListPorts() ([]string, error) {
	entries, err := os.ReadDir("/dev")
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()
		if !serialDevicePattern.MatchString(name) {
			continue
		}

		fullPath := filepath.Join("/dev", name)
		if isCharacterDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	sort.Strings(ports)
	return ports, nil
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// PortInfo describes a serial port and, for USB devices, its USB metadata
type PortInfo struct {
	Name         string
	Path         string
	Description  string
	VendorID     string
	ProductID    string
	SerialNumber string
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)
	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: portDescription(name),
	}

	if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
		enrichUSBInfo(info)
	}

	return info, nil
}

// portDescription provides human-readable descriptions for port types
func portDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}

// enrichUSBInfo fills in USB metadata from sysfs. The tty device node links
// into the USB interface directory; idVendor/idProduct/serial live one or
// two levels up depending on the driver.
func enrichUSBInfo(info *PortInfo) {
	devLink := filepath.Join("/sys/class/tty", info.Name, "device")
	dir, err := filepath.EvalSymlinks(devLink)
	if err != nil {
		return
	}

	for i := 0; i < 4; i++ {
		vendor := readSysfsAttr(filepath.Join(dir, "idVendor"))
		if vendor != "" {
			info.VendorID = vendor
			info.ProductID = readSysfsAttr(filepath.Join(dir, "idProduct"))
			info.SerialNumber = readSysfsAttr(filepath.Join(dir, "serial"))
			if product := readSysfsAttr(filepath.Join(dir, "product")); product != "" {
				info.Description = product
			}
			return
		}
		dir = filepath.Dir(dir)
	}
}

func readSysfsAttr(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
