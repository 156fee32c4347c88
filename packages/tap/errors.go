package tap

import (
	"errors"
	"fmt"
)

// ErrMissingStatus is returned when a result is built without an explicit pass/fail status
var ErrMissingStatus = errors.New("result has no pass/fail status")

// WriteError reports a failed write to a TAP sink.
// The text that could not be written is kept so the caller may retry it.
type WriteError struct {
	Text string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write TAP output: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
