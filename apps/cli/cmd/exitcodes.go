package cmd

import (
	"errors"
	"fmt"
)

// Exit codes for the testanything CLI
const (
	// ExitSuccess indicates every rendered test passed
	ExitSuccess = 0

	// ExitTestFailure indicates the suite contains failures or the stream bailed out
	ExitTestFailure = 1

	// ExitParseError indicates a suite document could not be loaded or validated
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitOutputError indicates the TAP stream could not be written
	ExitOutputError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the process exit code for a failed command.
// A nil err means the outcome was already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitTestFailure
}
