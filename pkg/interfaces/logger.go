package interfaces

import "context"

// Logger is the structured logger the application layer depends on.
// Infrastructure packages log through *zap.Logger directly.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithContext attaches request scoped fields found in ctx
	WithContext(ctx context.Context) Logger
	// WithFields returns a child logger that always logs fields
	WithFields(fields ...Field) Logger
}

// Field is one structured key/value pair
type Field struct {
	Key   string
	Value any
}

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Error creates the conventional "error" field
func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
