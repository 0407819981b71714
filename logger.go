package sharepoint

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})
	IsNoop() bool
}

type noopLogger struct{}

func (n *noopLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {}
func (n *noopLogger) Info(ctx context.Context, msg string, fields map[string]interface{})  {}
func (n *noopLogger) Warn(ctx context.Context, msg string, fields map[string]interface{})  {}
func (n *noopLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {}
func (n *noopLogger) IsNoop() bool                                                         { return true }

func NewNoopLogger() Logger {
	return &noopLogger{}
}

type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger adapts a zerolog.Logger to the Logger interface.
func NewZerologLogger(log zerolog.Logger) Logger {
	return &zerologLogger{log: log}
}

// newDefaultLogger writes structured warnings and errors to stderr so token
// and ignored-request diagnostics are visible without any caller wiring.
func newDefaultLogger() Logger {
	log := zerolog.New(os.Stderr).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Str("component", "sharepoint").
		Logger()

	return &zerologLogger{log: log}
}

func (z *zerologLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	z.log.Debug().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	z.log.Info().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	z.log.Warn().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	z.log.Error().Fields(fields).Msg(msg)
}

func (z *zerologLogger) IsNoop() bool { return false }
