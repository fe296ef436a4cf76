package runner

import (
	"fmt"
	"time"
)

// NotFoundError is returned when the executable cannot be located on PATH.
type NotFoundError struct {
	Name    string
	Wrapped error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: executable not found on PATH", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return e.Wrapped
}

// ExitError is returned when a command exits with a non-zero status.
type ExitError struct {
	Command  string
	Stderr   string
	ExitCode int
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Stderr)
}

// TimeoutError is returned when a command does not finish before its deadline.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not finish within %s", e.Command, e.Timeout)
}
