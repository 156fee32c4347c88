package tap

import (
	"io"
	"slices"
	"strings"
)

// Suite is an ordered collection of results rendered as one TAP stream.
// Test numbers come from each result's position, starting at 1.
type Suite struct {
	name  string
	tests []Result
}

// SuiteOptions configures a Suite. Both fields are optional.
type SuiteOptions struct {
	Name  string
	Tests []Result
}

// NewSuite builds a Suite. Name defaults to empty and Tests to no results.
func NewSuite(opts SuiteOptions) Suite {
	return Suite{
		name:  opts.Name,
		tests: slices.Clone(opts.Tests),
	}
}

// Name returns the suite label. It is metadata only and never rendered.
func (s Suite) Name() string { return s.name }

// Tests returns a copy of the suite's results in order.
func (s Suite) Tests() []Result {
	return slices.Clone(s.tests)
}

// Len returns the number of results in the suite.
func (s Suite) Len() int { return len(s.tests) }

// Counts returns the number of passing and failing results.
func (s Suite) Counts() (passed, failed int) {
	for _, t := range s.tests {
		if t.passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Lines returns every line of the stream in order, without terminators.
// The first line is always the plan "1..N", including "1..0" for an empty suite.
func (s Suite) Lines() []string {
	lines := []string{PlanLine(1, len(s.tests))}
	for i, t := range s.tests {
		lines = append(lines, RenderResult(t, i+1)...)
	}
	return lines
}

// String returns the full stream with every line newline-terminated.
func (s Suite) String() string {
	var b strings.Builder
	for _, line := range s.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Print renders the whole stream and writes it to w in a single call.
// It returns the text that was rendered. A failed write is reported as a
// *WriteError carrying that text.
func (s Suite) Print(w io.Writer) (string, error) {
	out := s.String()
	if _, err := io.WriteString(w, out); err != nil {
		return out, &WriteError{Text: out, Err: err}
	}
	return out, nil
}

// Equal reports whether s and other have the same name and the same results in the same order.
func (s Suite) Equal(other Suite) bool {
	return s.name == other.name && slices.EqualFunc(s.tests, other.tests, Result.Equal)
}
