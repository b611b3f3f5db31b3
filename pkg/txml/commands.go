package txml

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/logging"
)

// CommandRunner runs one executable with its arguments in dir
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args []string) error
}

// ExecRunner runs commands as child processes
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Timeout bounds each process; zero means no limit
	Timeout time.Duration
}

// Run implements CommandRunner
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args []string) error {
	logging.LogCommand(logging.GetLogger("txml.commands"), dir, name, args)

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return errors.Wrapf(err, errors.ErrCommandFailed, "%s exited with status %d", name, exitErr.ExitCode()).
			WithDetail("command", name).
			WithDetail("exitCode", exitErr.ExitCode())
	}
	return errors.Wrapf(err, errors.ErrCommandCreation, "failed to start %s", name).
		WithDetail("command", name)
}

// SplitCommands splits a hook string into its trimmed ';' separated segments
func SplitCommands(s string) []string {
	parts := strings.Split(s, ";")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// RunCommands runs every segment of a hook string in dir, in order. The first
// failing segment stops the sequence and its error is returned.
func RunCommands(ctx context.Context, runner CommandRunner, commands, dir string) error {
	for _, segment := range SplitCommands(commands) {
		fields := strings.Fields(segment)
		if len(fields) == 0 {
			return errors.Newf(errors.ErrCommandInvalidInput, "empty command in %q", commands).
				WithDetail("commands", commands)
		}

		if err := runner.Run(ctx, dir, fields[0], fields[1:]); err != nil {
			if errors.GetErrorCode(err) == errors.ErrUnknown {
				return errors.Wrapf(err, errors.ErrCommandFailed, "command %q failed", segment).
					WithDetail("command", segment)
			}
			return err
		}
	}
	return nil
}
