package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTraceContext(t *testing.T) {
	tc := NewTraceContext("", "")
	assert.NotEmpty(t, tc.RequestID)
	assert.Equal(t, tc.RequestID, tc.TraceID)

	tc = NewTraceContext("trace-1", "req-1")
	assert.Equal(t, "trace-1", tc.TraceID)
	assert.Equal(t, "req-1", tc.RequestID)
}

func TestTraceRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetTrace(ctx))
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithTrace(ctx, NewTraceContext("t", "r"))
	assert.Equal(t, "r", GetRequestID(ctx))
	assert.Equal(t, "t", GetTrace(ctx).TraceID)
}
