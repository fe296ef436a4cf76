// Package runner executes external commands and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Command describes a single process invocation. Args are passed to the
// process as-is and are never interpreted by a shell.
type Command struct {
	Name string
	Args []string
	Dir  string // Working directory; empty means the current directory.
}

// String returns the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds everything a finished process produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs commands.
type Runner interface {
	// Run executes c and waits for it to finish. A process that exits non-zero
	// still returns its Result alongside an *ExitError.
	Run(ctx context.Context, c Command) (Result, error)
}

// ExecRunner is the concrete Runner backed by os/exec.
type ExecRunner struct {
	logger  *slog.Logger
	timeout time.Duration
}

// NewExecRunner creates an ExecRunner. A zero timeout disables the per-command deadline.
func NewExecRunner(logger *slog.Logger, timeout time.Duration) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExecRunner{
		logger:  logger.With("component", "runner"),
		timeout: timeout,
	}
}

// Run executes c, capturing stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Debug("Running command", "cmd", c.Name, "args", strings.Join(c.Args, " "), "dir", c.Dir)

	//nolint:gosec // callers build argv from fixed subcommands
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		return res, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return res, &NotFoundError{Name: c.Name, Wrapped: err}
	}

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return res, &TimeoutError{Command: c.String(), Timeout: r.timeout}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, &ExitError{
			Command:  c.String(),
			ExitCode: res.ExitCode,
			Stderr:   strings.TrimSpace(res.Stderr),
		}
	}

	return res, err
}
