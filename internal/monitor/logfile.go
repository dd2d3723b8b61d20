package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileTimestampLayout keeps log file names human-sortable.
const fileTimestampLayout = "2006.01.02_15.04.05"

// LogPath derives the log file path for a run started at now. An empty base
// name is legal and produces a name with only the timestamp and separator.
func LogPath(dir, base string, now time.Time) string {
	return filepath.Join(dir, now.Format(fileTimestampLayout)+"_"+base+".txt")
}

// OpenLog creates the log directory if it is missing (single level only;
// the parent must already exist) and opens the run's log file for append.
// Failures here are fatal for the run: the user asked for durable logging.
func OpenLog(dir, base string, now time.Time) (*os.File, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("log directory %s exists and is not a directory", dir)
	case err != nil:
		if err := os.Mkdir(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	path := LogPath(dir, base, now)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
