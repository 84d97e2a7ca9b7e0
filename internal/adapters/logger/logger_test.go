package logger_adapter

import (
	"bytes"
	"errors"
	"listing-bff/internal/core/port"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFluentPoster struct {
	mock.Mock
}

func (m *MockFluentPoster) Post(tag string, message interface{}) error {
	args := m.Called(tag, message)
	return args.Error(0)
}

func TestSlogAdapter_WritesFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug})

	logger.WithFields(port.Fields{"component": "test"}).Error("boom", errors.New("backend down"), port.Fields{"listing_id": "7"})

	out := buf.String()
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "listing_id=7")
	assert.Contains(t, out, "backend down")
}

func TestSlogAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Info("hidden", nil)
	logger.Debug("hidden", nil)

	assert.Empty(t, buf.String())
}

func TestFluentLoggerAdapter_PostsWithTagAndFields(t *testing.T) {
	client := new(MockFluentPoster)
	client.On("Post", "listing-bff.warn", mock.MatchedBy(func(data port.Fields) bool {
		return data["message"] == "slow" && data["trace_id"] == "t-1" && data["level"] == "warn"
	})).Return(nil).Once()

	adapter, err := NewFluentLoggerAdapter(client, "listing-bff", slog.LevelInfo)
	require.NoError(t, err)

	adapter.WithFields(port.Fields{"trace_id": "t-1"}).Warn("slow", nil)
	adapter.Debug("below level", nil)

	client.AssertExpectations(t)
}

func TestFluentLoggerAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, "x", nil)

	assert.Error(t, err)
}

func TestMultiLogger(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	assert.Error(t, err)

	var first, second bytes.Buffer
	logger, err := NewMultiloggerAdapter(
		NewSlogAdapter(SlogConfig{Writer: &first}),
		NewSlogAdapter(SlogConfig{Writer: &second}),
	)
	require.NoError(t, err)

	logger.WithFields(port.Fields{"k": "v"}).Info("hello", nil)

	assert.Contains(t, first.String(), "k=v")
	assert.Contains(t, second.String(), "hello")
}
