package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes how to build the process logger.
type Config struct {
	Level       string   // debug, info, warn, error; unknown names mean info
	Development bool     // colored console output, stack traces on warn
	Encoding    string   // json or console
	OutputPaths []string // stdout, stderr or file paths
}

// DefaultConfig is the production preset: info level JSON on stdout.
func DefaultConfig() *Config {
	return &Config{
		Level:       "info",
		Encoding:    "json",
		OutputPaths: []string{"stdout"},
	}
}

// DevelopmentConfig is the local preset: debug level console output.
func DevelopmentConfig() *Config {
	return &Config{
		Level:       "debug",
		Development: true,
		Encoding:    "console",
		OutputPaths: []string{"stdout"},
	}
}

// NewFromConfig builds a logger; a nil config means DefaultConfig.
func NewFromConfig(cfg *Config) (*ZapLogger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return cfg.Build()
}

// Build creates the zap logger described by c.
func (c *Config) Build() (*ZapLogger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.MessageKey = "message"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if c.Encoding != "" {
		zc.Encoding = c.Encoding
	}
	if len(c.OutputPaths) > 0 {
		zc.OutputPaths = c.OutputPaths
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return Wrap(logger), nil
}
