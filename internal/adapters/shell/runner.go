// Package shell runs external commands and captures their standard output.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/opamlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner. Standard error of every command is forwarded to logger.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes args and returns its standard output split into lines.
// A non-zero exit status is reported as a process failure carrying the command and exit code.
func (r *Runner) Run(ctx context.Context, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	stdout := &lineWriter{}
	stderr := &lineWriter{emit: func(line string) {
		r.logger.Warn(line)
	}}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // opam binary is user configured
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	_ = stderr.Close()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, domain.NewProcessFailure(args, exitErr.ExitCode())
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrProcessStartFailed, err.Error()), "command", strings.Join(args, " "))
	}

	_ = stdout.Close()
	return stdout.lines, nil
}

// lineWriter splits a byte stream into lines. Partial writes are buffered until a newline
// or Close. Lines go to emit when set, otherwise they are collected.
type lineWriter struct {
	emit  func(string)
	lines []string
	buf   []byte
}

func (w *lineWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.line(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *lineWriter) Close() error {
	if len(w.buf) > 0 {
		w.line(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *lineWriter) line(b []byte) {
	msg := strings.TrimSuffix(string(b), "\r")
	if w.emit != nil {
		w.emit(msg)
		return
	}
	w.lines = append(w.lines, msg)
}
