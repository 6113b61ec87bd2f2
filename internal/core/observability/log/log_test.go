package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewWithCore(core, level), logs
}

func TestLogger_Fields(t *testing.T) {
	logger, logs := observed(LevelDebug)

	logger.Info("bullet spawned",
		Int("count", 3),
		Float32("speed", 200),
		Point("pos", [2]float32{1, 2}),
		String("kind", "rifle"),
		Error(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "bullet spawned", entry.Message)
	ctx := entry.ContextMap()
	assert.EqualValues(t, 3, ctx["count"])
	assert.EqualValues(t, float32(200), ctx["speed"])
	assert.Equal(t, "rifle", ctx["kind"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Len(t, ctx["pos"], 2)
}

func TestLogger_SetLevel(t *testing.T) {
	logger, logs := observed(LevelInfo)

	logger.Debug("hidden")
	assert.Equal(t, 0, logs.Len())

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())
	logger.Debug("shown")
	assert.Equal(t, 1, logs.Len())
}

func TestLogger_WithKeepsLevelAndFields(t *testing.T) {
	logger, logs := observed(LevelInfo)
	child := logger.With(String("component", "world")).Named("world")

	logger.SetLevel(LevelWarn)
	child.Info("dropped")
	child.Warn("kept")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "world", entry.LoggerName)
	assert.Equal(t, "world", entry.ContextMap()["component"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		" error ": LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWithConfig_RejectsEncoding(t *testing.T) {
	_, err := NewWithConfig(Config{Level: "info", Encoding: "xml"})
	assert.Error(t, err)

	logger, err := NewWithConfig(Config{Level: "debug", Encoding: "console"})
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, logger.GetLevel())
	assert.NotNil(t, Provide())
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Info("nothing")
	logger.With(Int("a", 1)).Warn("still nothing")
}
