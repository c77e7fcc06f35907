package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core))

	log.WithFields(interfaces.String("title_id", "abc")).
		Warn("deleted uploaded asset", interfaces.String("path", "abc/banner.png"), interfaces.Error(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "abc", ctx["title_id"])
	assert.Equal(t, "abc/banner.png", ctx["path"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestZapLogger_WithContextAddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := Wrap(zap.New(core))

	ctx := WithRequestID(context.Background(), "req-1")
	log.WithContext(ctx).Info("title created")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
}

func TestFromContext(t *testing.T) {
	assert.IsType(t, NoopLogger{}, FromContext(context.Background()))

	log := Wrap(zap.NewNop())
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestConfigBuild(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "not-a-level"

	log, err := cfg.Build()
	require.NoError(t, err)
	assert.True(t, log.Zap().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Zap().Core().Enabled(zapcore.DebugLevel))
}
