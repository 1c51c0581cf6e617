package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLoggerFromCore(core), logs
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := NewLogger(LogConfig{Level: LevelInfo, Format: format, OutputPaths: []string{"stdout"}})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_EmptyOutputPathsRejected(t *testing.T) {
	l, err := NewLogger(LogConfig{OutputPaths: []string{}})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestZapLogger_FieldsAreTyped(t *testing.T) {
	l, logs := newObservedLogger()

	l.Info("cache hit",
		String("key", "price:recommend:ab"),
		Int("size", 3),
		Int64("requests", 10),
		Float64("hit_rate", 0.5),
		Bool("fallback", true),
		Duration("elapsed", 20*time.Millisecond),
		Err(errors.New("boom")),
		Any("tags", []string{"a"}),
	)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "price:recommend:ab", ctx["key"])
	assert.Equal(t, int64(3), ctx["size"])
	assert.Equal(t, 0.5, ctx["hit_rate"])
	assert.Equal(t, true, ctx["fallback"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	l, logs := newObservedLogger()

	child := l.Named("cache").With(String("component", "coordinator"))
	child.Warn("sweep removed entries", Int("removed", 2))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "cache", entry.LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "coordinator", entry.ContextMap()["component"])
}

func TestErr_Nil(t *testing.T) {
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	assert.NotNil(t, l.With(String("a", "b")))
	assert.NotNil(t, l.Named("n"))
	assert.NoError(t, l.Sync())
}

func TestFromContext(t *testing.T) {
	l, logs := newObservedLogger()
	fallback := NewNopLogger()

	assert.Equal(t, fallback, FromContext(context.Background(), fallback))

	ctx := WithContext(context.Background(), l)
	FromContext(ctx, fallback).Info("scoped")
	assert.Equal(t, 1, logs.Len())
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	l, _ := newObservedLogger()
	SetDefault(nil)
	assert.Equal(t, prev, Default())
	SetDefault(l)
	assert.Equal(t, l, Default())
}

//Personal.AI order the ending
