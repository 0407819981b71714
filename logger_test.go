package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct {
	debugCalls []logCall
	infoCalls  []logCall
	warnCalls  []logCall
	errorCalls []logCall
}

type logCall struct {
	msg    string
	fields map[string]interface{}
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	m.debugCalls = append(m.debugCalls, logCall{msg: msg, fields: fields})
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	m.infoCalls = append(m.infoCalls, logCall{msg: msg, fields: fields})
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	m.warnCalls = append(m.warnCalls, logCall{msg: msg, fields: fields})
}

func (m *mockLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	m.errorCalls = append(m.errorCalls, logCall{msg: msg, fields: fields})
}

func (m *mockLogger) IsNoop() bool {
	return false
}

func TestNoopLogger(t *testing.T) {
	t.Run("noop logger does not panic", func(t *testing.T) {
		logger := NewNoopLogger()
		ctx := context.Background()

		logger.Debug(ctx, "debug message", map[string]interface{}{"key": "value"})
		logger.Info(ctx, "info message", map[string]interface{}{"key": "value"})
		logger.Warn(ctx, "warn message", map[string]interface{}{"key": "value"})
		logger.Error(ctx, "error message", map[string]interface{}{"key": "value"})

		assert.True(t, logger.IsNoop())
	})
}

func TestZerologLogger(t *testing.T) {
	t.Run("emits message and fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewZerologLogger(zerolog.New(&buf))

		logger.Warn(context.Background(), "request failed, ignoring error", map[string]interface{}{
			"method":   "GET",
			"endpoint": "lists",
		})

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "request failed, ignoring error", entry["message"])
		assert.Equal(t, "GET", entry["method"])
		assert.Equal(t, "lists", entry["endpoint"])
		assert.False(t, logger.IsNoop())
	})

	t.Run("default logger suppresses debug", func(t *testing.T) {
		logger := newDefaultLogger()

		// Must not panic; output level is warn and above.
		logger.Debug(context.Background(), "dispatching request", nil)
	})
}
