// Package telemetry implements the Tracer port on top of OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/opamlock/internal/core/ports"
)

// OTelTracer records every external command as a client span.
type OTelTracer struct {
	tracer trace.Tracer
}

// NewOTelTracer returns a tracer bound to the global provider, which discards spans
// until one is installed.
func NewOTelTracer(name string) *OTelTracer {
	return NewProviderTracer(otel.GetTracerProvider(), name)
}

// NewProviderTracer returns a tracer bound to tp.
func NewProviderTracer(tp trace.TracerProvider, name string) *OTelTracer {
	return &OTelTracer{tracer: tp.Tracer(name)}
}

// Start opens a span for one command invocation.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	return ctx, &OTelSpan{span: span}
}

// OTelSpan adapts trace.Span to ports.Span.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError attaches err as an exception event and marks the span failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds key to the span. Unknown value types are stored as their %v text.
func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(keyValue(key, value))
}

func keyValue(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
