package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	bold   *color.Color
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stderr,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		bold:   color.New(color.Bold),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		for _, c := range []*color.Color{f.green, f.red, f.yellow, f.bold} {
			c.DisableColor()
		}
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

// WithVerbose lists every failing test under the summary
func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatSuite writes a one-line pass/fail tally for s
func (f *ConsoleFormatter) FormatSuite(s tap.Suite) {
	passed, failed := s.Counts()

	if s.Name() != "" {
		fmt.Fprintf(f.writer, "%s\n", f.bold.Sprint(s.Name()))
	}

	if f.verbose && failed > 0 {
		for i, r := range s.Tests() {
			if !r.Passed() {
				fmt.Fprintf(f.writer, "  %s %d %s\n", f.red.Sprint("✗"), i+1, r.Name())
			}
		}
	}

	fmt.Fprintf(f.writer, "Tests: ")
	if passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", f.green.Sprintf("%d passed", passed))
	}
	if failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", f.red.Sprintf("%d failed", failed))
	}
	fmt.Fprintf(f.writer, "%d total\n", s.Len())
}

// FormatBailOut notes that a stream stopped early
func (f *ConsoleFormatter) FormatBailOut(emitted, total int) {
	fmt.Fprintf(f.writer, "%s after %d of %d tests\n", f.yellow.Sprint("Bailed out"), emitted, total)
}

// FormatValid reports a file that passed validation
func (f *ConsoleFormatter) FormatValid(path string) {
	fmt.Fprintf(f.writer, "%s %s\n", f.green.Sprint("Valid:"), path)
}

func (f *ConsoleFormatter) FormatError(err error) {
	fmt.Fprintf(f.writer, "%s %v\n", f.red.Sprint("Error:"), err)
}

func (f *ConsoleFormatter) FormatWarning(format string, args ...any) {
	fmt.Fprintf(f.writer, "%s %s\n", f.yellow.Sprint("warning:"), fmt.Sprintf(format, args...))
}
