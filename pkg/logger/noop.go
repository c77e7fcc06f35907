package logger

import (
	"context"

	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// NoopLogger discards everything.
type NoopLogger struct{}

// NewNoop returns a logger that discards everything.
func NewNoop() interfaces.Logger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...interfaces.Field) {}
func (NoopLogger) Info(string, ...interfaces.Field) {}
func (NoopLogger) Warn(string, ...interfaces.Field) {}
func (NoopLogger) Error(string, ...interfaces.Field) {}

func (n NoopLogger) WithContext(context.Context) interfaces.Logger { return n }

func (n NoopLogger) WithFields(...interfaces.Field) interfaces.Logger { return n }
