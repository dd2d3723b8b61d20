package monitor

import (
	"io"
	"regexp"
	"strings"
	"time"
)

// Record is one captured line before it is fanned out.
type Record struct {
	Raw      string    // line text including trailing newline
	Captured time.Time // capture instant, UTC
}

// Sink fans each processed line out to the terminal and, when enabled, to
// the open log file. The display copy keeps color and highlighting; the
// log copy is ANSI-sanitized. Only the main loop writes through a Sink.
type Sink struct {
	mode      TimeMode
	out       io.Writer
	logFile   io.Writer // nil when logging is disabled
	highlight *regexp.Regexp
}

// NewSink builds a sink. logFile may be nil. Highlight terms are matched
// case-insensitively on the display copy only.
func NewSink(mode TimeMode, out, logFile io.Writer, highlight []string) *Sink {
	return &Sink{
		mode:      mode,
		out:       out,
		logFile:   logFile,
		highlight: compileHighlight(highlight),
	}
}

func compileHighlight(terms []string) *regexp.Regexp {
	var quoted []string
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			quoted = append(quoted, regexp.QuoteMeta(term))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
}

// Emit writes the record to stdout immediately and appends the sanitized
// rendering to the log file. Lines reach the kernel one write at a time so
// the log survives abrupt termination.
func (s *Sink) Emit(rec Record) error {
	rendered := FormatPrefix(s.mode, rec.Captured) + rec.Raw
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}

	display := rendered
	if s.highlight != nil {
		display = s.applyHighlight(rendered)
	}
	if _, err := io.WriteString(s.out, display); err != nil {
		return err
	}

	if s.logFile != nil {
		if _, err := io.WriteString(s.logFile, StripANSI(rendered)); err != nil {
			return err
		}
	}
	return nil
}

// applyHighlight styles each matched term. Any escape codes the device had
// emitted before the match are re-applied after it, since the highlight's
// trailing reset would otherwise cancel the device's own coloring.
func (s *Sink) applyHighlight(line string) string {
	var b strings.Builder
	last := 0
	for _, loc := range s.highlight.FindAllStringIndex(line, -1) {
		b.WriteString(line[last:loc[0]])
		b.WriteString(highlightStyle.Render(line[loc[0]:loc[1]]))
		for _, code := range ansiEscapePattern.FindAllString(line[:loc[0]], -1) {
			b.WriteString(code)
		}
		last = loc[1]
	}
	b.WriteString(line[last:])
	return b.String()
}
