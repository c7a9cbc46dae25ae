// Package sysexec runs external commands, optionally through the desktop
// privilege-escalation helper, and captures their output.
package sysexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// PrivilegeHelper is the interactive polkit elevation helper used to wrap
// privileged commands.
const PrivilegeHelper = "pkexec"

// ExecError reports a command that could not be started or exited non-zero.
// Stderr carries the captured diagnostics when the command ran at all.
type ExecError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("run %s: %v", e.Command, e.Err)
	}
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Result captures the outcome of a completed command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands. The zero value is ready to use.
type Runner struct{}

// Run executes command with args and returns its captured output. A non-zero
// exit or a failure to start is reported as an *ExecError.
func (Runner) Run(ctx context.Context, command string, args ...string) (Result, error) {
	return run(ctx, command, args)
}

// RunPrivileged executes command with args through the elevation helper. The
// helper blocks for interactive credential entry; a denied or failed
// elevation surfaces as an *ExecError and is never retried here.
func (Runner) RunPrivileged(ctx context.Context, command string, args ...string) (Result, error) {
	helperArgs := append([]string{command}, args...)
	res, err := run(ctx, PrivilegeHelper, helperArgs)
	if err != nil {
		var execErr *ExecError
		if errors.As(err, &execErr) {
			// Name the wrapped command, not the helper, in diagnostics.
			execErr.Command = command
		}
		return res, err
	}
	return res, nil
}

// Probe reports whether command with args runs and exits zero. Missing tools
// and non-zero exits both degrade to false.
func (r Runner) Probe(ctx context.Context, command string, args ...string) bool {
	_, err := r.Run(ctx, command, args...)
	return err == nil
}

func run(ctx context.Context, command string, args []string) (Result, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &ExecError{Command: command, ExitCode: res.ExitCode, Stderr: res.Stderr}
		}
		return res, &ExecError{Command: command, Err: err}
	}
	return res, nil
}
