package tap

import (
	"fmt"
	"strconv"
)

const (
	// OKSymbol marks a passing test
	OKSymbol = "ok"
	// NotOKSymbol marks a failing test
	NotOKSymbol = "not ok"
	// DiagnosticPrefix starts every diagnostic line
	DiagnosticPrefix = "# "
	// BailOutPrefix starts a bail out line
	BailOutPrefix = "Bail out!"
)

// StatusSymbol returns "ok" for a pass and "not ok" for a failure.
func StatusSymbol(passed bool) string {
	if passed {
		return OKSymbol
	}
	return NotOKSymbol
}

// StatusLine formats the result line for r at the given ordinal.
// The ordinal is used as given.
func StatusLine(r Result, ordinal int) string {
	return statusLine(r.passed, ordinal, r.name)
}

func statusLine(passed bool, number int, message string) string {
	return StatusSymbol(passed) + " " + strconv.Itoa(number) + " " + message
}

// DiagnosticLine formats text as a diagnostic comment line.
func DiagnosticLine(text string) string {
	return DiagnosticPrefix + text
}

// PlanLine formats a plan line such as "1..5".
func PlanLine(start, finish int) string {
	return fmt.Sprintf("%d..%d", start, finish)
}

// BailOutLine formats a bail out line. The message may be empty.
func BailOutLine(message string) string {
	return BailOutPrefix + " " + message
}

// RenderResult returns the status line for r followed by one diagnostic
// line per entry in r's diagnostics, in order.
func RenderResult(r Result, ordinal int) []string {
	lines := make([]string, 0, 1+len(r.diagnostics))
	lines = append(lines, StatusLine(r, ordinal))
	for _, d := range r.diagnostics {
		lines = append(lines, DiagnosticLine(d))
	}
	return lines
}
