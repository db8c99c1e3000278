// SPDX-License-Identifier: MPL-2.0

// Package testrunner runs a puzzle's test command inside a workspace. The
// command line is interpreted by mvdan.cc/sh, so the same quoting and
// variable rules apply on every platform.
package testrunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultCommand runs the Rust test suite.
const DefaultCommand = "cargo test"

var (
	// ErrTestsFailed is wrapped by FailedError.
	ErrTestsFailed = errors.New("tests failed")
	// ErrInvalidCommand is returned for a command line that does not parse.
	ErrInvalidCommand = errors.New("invalid test command")
)

type (
	// Options configures Run.
	Options struct {
		// Dir is the workspace the command runs in.
		Dir string
		// Command is a shell command line. Empty means DefaultCommand.
		Command string
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
		// Env is appended to the current process environment.
		Env    []string
		Logger *slog.Logger
	}

	// FailedError reports a command that exited non-zero.
	FailedError struct {
		Command string
		Code    int
	}

	// CommandError reports a command line that could not be run at all.
	CommandError struct {
		Command string
		Err     error
	}
)

// Validate parses command without running it.
func Validate(command string) error {
	_, err := parse(command)
	return err
}

// Run executes the test command in opts.Dir. A non-zero exit status is
// returned as a *FailedError.
func Run(ctx context.Context, opts Options) error {
	command := opts.Command
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	prog, err := parse(command)
	if err != nil {
		return err
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	env := append(os.Environ(), opts.Env...)
	runner, err := interp.New(
		interp.Dir(opts.Dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(opts.Stdin, stdout, stderr),
	)
	if err != nil {
		return &CommandError{Command: command, Err: err}
	}

	logger.Debug("running test command", "command", command, "dir", opts.Dir)
	err = runner.Run(ctx, prog)
	var status interp.ExitStatus
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case err == nil:
		return nil
	case errors.As(err, &status):
		return &FailedError{Command: command, Code: int(status)}
	default:
		return &CommandError{Command: command, Err: err}
	}
}

func parse(command string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "test_command")
	if err != nil {
		return nil, &CommandError{Command: command, Err: fmt.Errorf("%w: %w", ErrInvalidCommand, err)}
	}
	return prog, nil
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("`%s` exited with status %d", e.Command, e.Code)
}

func (e *FailedError) Unwrap() error { return ErrTestsFailed }

func (e *CommandError) Error() string {
	return fmt.Sprintf("run `%s`: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
