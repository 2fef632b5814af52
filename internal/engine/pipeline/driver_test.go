package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/opamlock/internal/adapters/telemetry"
	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/opamlock/internal/core/ports/mocks"
	"go.trai.ch/opamlock/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func gomockAny() gomock.Matcher {
	return gomock.Any()
}

func newTestDriver(t *testing.T) (*pipeline.Driver, *mocks.MockCommandRunner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	return pipeline.NewDriver(runner, logger, telemetry.NewNoOpTracer(), domain.Options{}), runner
}

func countLines(lines []string) int {
	return len(lines)
}

func TestRun_PureValue(t *testing.T) {
	driver, _ := newTestDriver(t)

	v, err := pipeline.Run(context.Background(), driver, pipeline.Pure("done"))
	require.NoError(t, err)
	assert.Equal(t, "done", v)
	assert.Zero(t, driver.Executed())
}

func TestRun_ExecutesSequentially(t *testing.T) {
	driver, runner := newTestDriver(t)

	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), []string{"opam", "list"}).Return([]string{"# header", "foo 1.0"}, nil),
		runner.EXPECT().Run(gomock.Any(), []string{"opam", "show", "foo 1.0"}).Return([]string{"a", "b", "c"}, nil),
	)

	p := pipeline.Bind(pipeline.Command("opam", "list"), func(lines []string) pipeline.Pipeline[int] {
		return pipeline.Map(pipeline.Command("opam", "show", lines[1]), countLines)
	})

	v, err := pipeline.Run(context.Background(), driver, p)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, driver.Executed())
}

func TestRun_ProcessFailureAborts(t *testing.T) {
	driver, runner := newTestDriver(t)

	failure := domain.NewProcessFailure([]string{"opam", "pin"}, 1)
	runner.EXPECT().Run(gomock.Any(), []string{"opam", "pin"}).Return(nil, failure)

	p := pipeline.Bind(pipeline.Command("opam", "pin"), func([]string) pipeline.Pipeline[[]string] {
		return pipeline.Command("never")
	})

	v, err := pipeline.Run(context.Background(), driver, p)
	require.ErrorIs(t, err, domain.ErrProcessFailure)
	assert.Nil(t, v)
	assert.Equal(t, 1, driver.Executed())
}

func TestRun_EmptyCommand(t *testing.T) {
	driver, _ := newTestDriver(t)

	_, err := pipeline.Run(context.Background(), driver, pipeline.Command())
	require.ErrorIs(t, err, domain.ErrEmptyCommand)
}

func TestRun_TracingDoesNotChangeResult(t *testing.T) {
	outputs := []string{"foo 1.0", "bar 2.0"}
	build := func() pipeline.Pipeline[int] {
		return pipeline.Map(pipeline.Command("opam", "list"), countLines)
	}

	for _, opts := range []domain.Options{{}, {Verbose: true}, {Debug: true}} {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		runner.EXPECT().Run(gomock.Any(), []string{"opam", "list"}).Return(outputs, nil)

		switch {
		case opts.Debug:
			gomock.InOrder(
				logger.EXPECT().Info("$ opam list"),
				logger.EXPECT().Info("  foo 1.0"),
				logger.EXPECT().Info("  bar 2.0"),
			)
		case opts.Verbose:
			logger.EXPECT().Info("$ opam list")
		}

		driver := pipeline.NewDriver(runner, logger, telemetry.NewNoOpTracer(), opts)
		v, err := pipeline.Run(context.Background(), driver, build())
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	}
}

func TestRun_RecordsSpanPerCommand(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	tracer := telemetry.NewProviderTracer(tp, "test")

	failure := domain.NewProcessFailure([]string{"opam", "show", "-f", "pinned", "foo"}, 1)
	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), []string{"opam", "pin"}).Return([]string{"foo.dev git git+https://h/r"}, nil),
		runner.EXPECT().Run(gomock.Any(), []string{"opam", "show", "-f", "pinned", "foo"}).Return(nil, failure),
	)

	p := pipeline.Bind(pipeline.Command("opam", "pin"), func([]string) pipeline.Pipeline[[]string] {
		return pipeline.Command("opam", "show", "-f", "pinned", "foo")
	})

	driver := pipeline.NewDriver(runner, logger, tracer, domain.Options{})
	_, err := pipeline.Run(context.Background(), driver, p)
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "opam pin", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("command", "opam pin"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("output_lines", 1))
	assert.Equal(t, "opam show", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Contains(t, spans[1].Attributes(), attribute.Int("exit_code", 1))
}

func TestRun_SpanNameUsesBinaryBaseName(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), []string{"/opt/opam/bin/opam", "list", "--installed"}).Return(nil, nil)

	driver := pipeline.NewDriver(runner, mocks.NewMockLogger(ctrl), telemetry.NewProviderTracer(tp, "test"), domain.Options{})
	_, err := pipeline.Run(context.Background(), driver, pipeline.Command("/opt/opam/bin/opam", "list", "--installed"))
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "opam list", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("command", "/opt/opam/bin/opam list --installed"))
}

func TestRun_SpanLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	okSpan := mocks.NewMockSpan(ctrl)
	failSpan := mocks.NewMockSpan(ctrl)
	driver := pipeline.NewDriver(runner, mocks.NewMockLogger(ctrl), tracer, domain.Options{})

	failure := domain.NewProcessFailure([]string{"opam", "show", "foo"}, 2)

	gomock.InOrder(
		tracer.EXPECT().Start(gomock.Any(), "opam list").Return(context.Background(), okSpan),
		okSpan.EXPECT().SetAttribute("command", "opam list"),
		runner.EXPECT().Run(gomock.Any(), []string{"opam", "list"}).Return([]string{"a", "b"}, nil),
		okSpan.EXPECT().SetAttribute("output_lines", 2),
		okSpan.EXPECT().End(),
		tracer.EXPECT().Start(gomock.Any(), "opam show").Return(context.Background(), failSpan),
		failSpan.EXPECT().SetAttribute("command", "opam show foo"),
		runner.EXPECT().Run(gomock.Any(), []string{"opam", "show", "foo"}).Return(nil, failure),
		failSpan.EXPECT().RecordError(failure),
		failSpan.EXPECT().SetAttribute("exit_code", 2),
		failSpan.EXPECT().End(),
	)

	p := pipeline.Bind(pipeline.Command("opam", "list"), func([]string) pipeline.Pipeline[[]string] {
		return pipeline.Command("opam", "show", "foo")
	})

	_, err := pipeline.Run(context.Background(), driver, p)
	require.ErrorIs(t, err, domain.ErrProcessFailure)
}
