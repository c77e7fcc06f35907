package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// ZapLogger implements interfaces.Logger on top of zap.
type ZapLogger struct {
	logger *zap.Logger
}

var _ interfaces.Logger = (*ZapLogger)(nil)

// Wrap adapts an existing zap logger.
func Wrap(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

// Zap returns the underlying zap logger for infrastructure adapters.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

func (l *ZapLogger) Debug(msg string, fields ...interfaces.Field) {
	l.logger.Debug(msg, zapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields ...interfaces.Field) {
	l.logger.Info(msg, zapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields ...interfaces.Field) {
	l.logger.Warn(msg, zapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, fields ...interfaces.Field) {
	l.logger.Error(msg, zapFields(fields)...)
}

// WithContext returns a logger carrying the request id stored in ctx, if any.
func (l *ZapLogger) WithContext(ctx context.Context) interfaces.Logger {
	if id := RequestID(ctx); id != "" {
		return l.WithFields(interfaces.String("request_id", id))
	}
	return l
}

func (l *ZapLogger) WithFields(fields ...interfaces.Field) interfaces.Logger {
	return &ZapLogger{logger: l.logger.With(zapFields(fields)...)}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func zapFields(fields []interfaces.Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out[i] = zap.String(f.Key, v)
		case int:
			out[i] = zap.Int(f.Key, v)
		case error:
			out[i] = zap.NamedError(f.Key, v)
		default:
			out[i] = zap.Any(f.Key, v)
		}
	}
	return out
}
