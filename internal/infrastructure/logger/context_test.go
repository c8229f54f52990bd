package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}

func TestWithRequestAndRunID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx, runLogger := WithRunID(ctx, FromContext(ctx), "run-9")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "run-9", GetRunID(ctx))
	assert.Empty(t, GetRunID(context.Background()))

	runLogger.Info("phase done")
	require.Len(t, recorded.All(), 1)
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "run-9", fields["run_id"])
}

func TestTraceCorrelation(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	t.Run("no span", func(t *testing.T) {
		assert.Empty(t, GetTraceID(ctx))
		L(ctx).Info("plain")
		_, ok := recorded.TakeAll()[0].ContextMap()["trace_id"]
		assert.False(t, ok)
	})

	t.Run("active span", func(t *testing.T) {
		tp := sdktrace.NewTracerProvider()
		defer func() { _ = tp.Shutdown(context.Background()) }()

		spanCtx, span := tp.Tracer("test").Start(ctx, "render")
		defer span.End()

		traceID := GetTraceID(spanCtx)
		require.NotEmpty(t, traceID)

		L(spanCtx).Info("traced")
		fields := recorded.TakeAll()[0].ContextMap()
		assert.Equal(t, traceID, fields["trace_id"])
		assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	})
}
