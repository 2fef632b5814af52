package telemetry

import (
	"context"

	"go.trai.ch/opamlock/internal/core/ports"
)

// NoOpTracer drops every span. Tests and runs without debug timing use it.
type NoOpTracer struct{}

var _ ports.Tracer = NoOpTracer{}

// NewNoOpTracer returns a NoOpTracer.
func NewNoOpTracer() NoOpTracer {
	return NoOpTracer{}
}

// Start returns ctx unchanged and a span that ignores every call.
func (NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End() {}
func (noopSpan) RecordError(error) {}
func (noopSpan) SetAttribute(string, any) {}
