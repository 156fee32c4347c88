package tap

import (
	"io"
	"os"
)

// Writer emits a TAP stream one line at a time. Every call writes
// immediately to the sink; nothing is buffered, reordered or checked
// against earlier calls. Numbering and plan discipline belong to the caller.
//
// After BailOut or BailOutWithMessage the stream is terminated and no
// further calls should be made. This is not enforced.
type Writer struct {
	name string
	out  io.Writer
}

// WriterOption configures a Writer
type WriterOption func(*Writer)

// NewWriter creates a Writer labelled name. Output goes to os.Stdout
// unless WithWriter is given.
func NewWriter(name string, opts ...WriterOption) *Writer {
	w := &Writer{
		name: name,
		out:  os.Stdout,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithWriter sets the sink. The Writer never closes it.
func WithWriter(out io.Writer) WriterOption {
	return func(w *Writer) {
		w.out = out
	}
}

// Plan writes "<start>..<finish>". It may come before or after the results.
func (w *Writer) Plan(start, finish int) error {
	return w.line(PlanLine(start, finish))
}

// Name writes the stream name framed by two empty diagnostic lines.
func (w *Writer) Name() error {
	for _, text := range []string{"", w.name, ""} {
		if err := w.Diagnostic(text); err != nil {
			return err
		}
	}
	return nil
}

// Ok writes a passing result line.
func (w *Writer) Ok(number int, message string) error {
	return w.line(statusLine(true, number, message))
}

// NotOk writes a failing result line.
func (w *Writer) NotOk(number int, message string) error {
	return w.line(statusLine(false, number, message))
}

// Diagnostic writes "# <message>".
func (w *Writer) Diagnostic(message string) error {
	return w.line(DiagnosticLine(message))
}

// Result writes the status line for r as number, then its diagnostics.
func (w *Writer) Result(number int, r Result) error {
	for _, l := range RenderResult(r, number) {
		if err := w.line(l); err != nil {
			return err
		}
	}
	return nil
}

// BailOut terminates the stream without a message.
func (w *Writer) BailOut() error {
	return w.BailOutWithMessage("")
}

// BailOutWithMessage terminates the stream with "Bail out! <message>".
func (w *Writer) BailOutWithMessage(message string) error {
	return w.line(BailOutLine(message))
}

func (w *Writer) line(text string) error {
	if _, err := io.WriteString(w.out, text+"\n"); err != nil {
		return &WriteError{Text: text, Err: err}
	}
	return nil
}
