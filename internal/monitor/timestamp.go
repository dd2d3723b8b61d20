package monitor

import (
	"fmt"
	"time"
)

// TimeMode selects the timestamp prefix applied to each captured line.
type TimeMode string

const (
	TimeOff   TimeMode = "off"   // no prefix
	TimeEpoch TimeMode = "epoch" // Unix seconds with millisecond decimals
	TimeMilli TimeMode = "ms"    // whole Unix milliseconds
	TimeDate  TimeMode = "dt"    // date and time, millisecond precision
)

// TimeModes lists the accepted --print-time values.
var TimeModes = []TimeMode{TimeOff, TimeEpoch, TimeMilli, TimeDate}

// ParseTimeMode validates a mode string from configuration.
func ParseTimeMode(s string) (TimeMode, error) {
	for _, mode := range TimeModes {
		if s == string(mode) {
			return mode, nil
		}
	}
	return TimeOff, fmt.Errorf("invalid time mode %q (valid: off, epoch, ms, dt)", s)
}

// FormatPrefix renders the timestamp prefix for a capture instant. The
// result always ends with exactly one space so it concatenates directly
// onto the raw line. Unknown modes render as no prefix.
//
// The ms mode intentionally has no fractional component, unlike epoch and
// dt; the tool's log tooling already depends on that shape.
func FormatPrefix(mode TimeMode, t time.Time) string {
	switch mode {
	case TimeEpoch:
		ms := unixMilliRounded(t)
		return fmt.Sprintf("%d.%03d ", ms/1000, ms%1000)
	case TimeMilli:
		return fmt.Sprintf("%d ", unixMilliRounded(t))
	case TimeDate:
		return t.UTC().Format("2006-01-02 15:04:05.000") + " "
	default:
		return ""
	}
}

// unixMilliRounded rounds to the nearest millisecond rather than
// truncating, so an instant like ....1229999 renders as .123.
func unixMilliRounded(t time.Time) int64 {
	return (t.UnixNano() + 500_000) / 1_000_000
}
