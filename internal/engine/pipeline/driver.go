package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/opamlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Driver executes pipelines one command at a time.
type Driver struct {
	runner   ports.CommandRunner
	logger   ports.Logger
	tracer   ports.Tracer
	opts     domain.Options
	executed int
}

// NewDriver creates a Driver. Command lines and outputs are echoed to logger as opts asks.
func NewDriver(runner ports.CommandRunner, logger ports.Logger, tracer ports.Tracer, opts domain.Options) *Driver {
	return &Driver{
		runner: runner,
		logger: logger,
		tracer: tracer,
		opts:   opts,
	}
}

// Executed returns the number of commands run so far.
func (d *Driver) Executed() int {
	return d.executed
}

// Run executes every pending command of p in order and returns the final value.
// The first failing command or parse step aborts the run; no partial value is returned.
func Run[T any](ctx context.Context, d *Driver, p Pipeline[T]) (T, error) {
	for p.Pending() {
		lines, err := d.exec(ctx, p.Args())
		if err != nil {
			var zero T
			return zero, err
		}
		p = p.Resume(lines)
	}

	v, err := p.Result()
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (d *Driver) exec(ctx context.Context, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	cmdline := strings.Join(args, " ")
	if d.opts.Tracing() {
		d.logger.Info("$ " + cmdline)
	}

	ctx, span := d.tracer.Start(ctx, spanName(args))
	defer span.End()
	span.SetAttribute("command", cmdline)

	d.executed++
	lines, err := d.runner.Run(ctx, args)
	if err != nil {
		span.RecordError(err)
		var zErr *zerr.Error
		if errors.As(err, &zErr) {
			if code, ok := zErr.Metadata()["exit_code"]; ok {
				span.SetAttribute("exit_code", code)
			}
		}
		return nil, err
	}
	span.SetAttribute("output_lines", len(lines))

	if d.opts.Debug {
		for _, line := range lines {
			d.logger.Info("  " + line)
		}
	}

	return lines, nil
}

// spanName keeps the executable's base name and its sub-command, e.g. "opam pin".
func spanName(args []string) string {
	name := filepath.Base(args[0])
	if len(args) > 1 {
		return name + " " + args[1]
	}
	return name
}
