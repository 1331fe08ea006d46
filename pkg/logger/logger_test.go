package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appctx "querykit/internal/core/context"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{zap.New(core).Sugar()}, logs
}

func TestFromContext_AddsTraceFields(t *testing.T) {
	l, logs := observed()
	ctx := WithLogger(context.Background(), l)
	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext("trace-1", "req-1"))

	Info(ctx, "criteria search", "entity", "example")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "trace-1", fields["trace_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "example", fields["entity"])
}

func TestFromContext_WithoutTrace(t *testing.T) {
	l, logs := observed()
	ctx := WithLogger(context.Background(), l)

	Debug(ctx, "no trace")

	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")
}

func TestWithComponent(t *testing.T) {
	l, logs := observed()
	l.WithComponent("http").Infow("started")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "http", logs.All()[0].ContextMap()["component"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "loud", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
}
