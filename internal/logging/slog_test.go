package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(l *SlogLogger)
		level string
	}{
		{"debug", func(l *SlogLogger) { l.Debug(ctx, "msg", "k", "v") }, "DEBUG"},
		{"info", func(l *SlogLogger) { l.Info(ctx, "msg", "k", "v") }, "INFO"},
		{"warn", func(l *SlogLogger) { l.Warn(ctx, "msg", "k", "v") }, "WARN"},
		{"error", func(l *SlogLogger) { l.Error(ctx, "msg", "k", "v") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufLogger(t)
			tt.log(l)
			m := lastEntry(t, buf)
			assert.Equal(t, tt.level, m["level"])
			assert.Equal(t, "msg", m["msg"])
			assert.Equal(t, "v", m["k"])
		})
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.NotNil(t, l)
	// Must be safe to log at every level with no handler output to check.
	ctx := context.Background()
	l.Debug(ctx, "d")
	l.Info(ctx, "i")
	l.Warn(ctx, "w")
	l.Error(ctx, "e")
	l.With("k", "v").Info(ctx, "child")
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufLogger(t)
	child := l.With("component", "worker")
	child.Info(context.Background(), "tick")

	m := lastEntry(t, buf)
	assert.Equal(t, "worker", m["component"])
}
