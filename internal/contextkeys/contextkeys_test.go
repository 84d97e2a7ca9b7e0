package contextkeys

import (
	"context"
	"listing-bff/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext_FallsBackToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.WithFields(nil).Error("ignored", nil, nil)
	})
}

func TestTraceIDRoundTrip(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	ctx := ContextWithTraceID(context.Background(), "trace-1")

	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
}

func TestSessionFromContext(t *testing.T) {
	assert.True(t, SessionFromContext(context.Background()).IsAnonymous())

	session := &domain.Session{ID: "sid", TeleNumber: "+995"}
	ctx := ContextWithSession(context.Background(), session)

	assert.Same(t, session, SessionFromContext(ctx))
}
