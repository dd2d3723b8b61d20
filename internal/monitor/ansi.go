package monitor

import "regexp"

// ansiEscapePattern matches CSI sequences and single-character C1 escapes.
var ansiEscapePattern = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// StripANSI removes terminal escape sequences from a line. It is applied to
// the log copy only; the live display keeps its colors. Idempotent.
func StripANSI(s string) string {
	return ansiEscapePattern.ReplaceAllString(s, "")
}
