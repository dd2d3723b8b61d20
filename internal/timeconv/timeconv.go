// Package timeconv converts between Unix timestamps and ISO 8601 time
// strings for the timestamp command.
package timeconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Result holds one parsed instant rendered for display.
type Result struct {
	UTC   string  // ISO 8601, millisecond precision, Z suffix
	Local string  // ISO 8601, millisecond precision, local offset
	Unix  float64 // Unix seconds
}

// isoLayouts covers the accepted ISO 8601 shapes. Layouts without an
// offset parse as UTC, matching the convention that naive inputs are UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Parse accepts a Unix timestamp (seconds, or milliseconds when the value
// exceeds 1e12) or an ISO 8601 string and renders it in UTC and local time.
func Parse(input string) (Result, error) {
	trimmed := strings.TrimSpace(input)

	if ts, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if ts > 1e12 {
			ts /= 1000 // very large values are milliseconds
		}
		return render(time.UnixMilli(int64(math.Round(ts * 1000)))), nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return render(t), nil
		}
	}

	return Result{}, fmt.Errorf(
		"input %q is neither a valid Unix timestamp nor a valid ISO 8601 string", input)
}

func render(t time.Time) Result {
	utc := t.UTC()
	return Result{
		UTC:   utc.Format("2006-01-02T15:04:05.000") + "Z",
		Local: t.Local().Format("2006-01-02T15:04:05.000-07:00"),
		Unix:  float64(utc.UnixMilli()) / 1000,
	}
}
