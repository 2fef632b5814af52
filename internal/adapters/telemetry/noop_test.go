package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/opamlock/internal/adapters/telemetry"
)

func TestNoOpTracer_KeepsContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "opam")

	got, span := telemetry.NewNoOpTracer().Start(ctx, "opam pin")
	assert.Equal(t, "opam", got.Value(key{}))
	assert.NotPanics(t, func() {
		span.SetAttribute("command", "opam pin")
		span.RecordError(errors.New("ignored"))
		span.End()
	})
}
