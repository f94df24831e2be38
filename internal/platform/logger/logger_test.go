package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/userdir-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{" debug ", slog.LevelDebug, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	l, err := Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetup_WritesJSONAtConfiguredLevel(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	var buf bytes.Buffer
	l := setup(&buf, "warn")

	l.Info("filtered out")
	l.Warn("kept", "user_id", "42")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "42", entry["user_id"])
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	var buf bytes.Buffer
	l := setup(&buf, "chatty")

	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctxLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		fallback *slog.Logger
		want     *slog.Logger
	}{
		{name: "logger_in_context", ctx: WithLogger(context.Background(), ctxLogger), fallback: defaultLogger, want: ctxLogger},
		{name: "no_logger_in_context", ctx: context.Background(), fallback: defaultLogger, want: defaultLogger},
		{name: "nil_logger_in_context", ctx: WithLogger(context.Background(), nil), fallback: defaultLogger, want: defaultLogger},
		//nolint:staticcheck // nil context is part of the contract
		{name: "nil_context", ctx: nil, fallback: defaultLogger, want: defaultLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, FromContextOrDefault(tt.ctx, tt.fallback))
		})
	}

	t.Run("nil_fallback_uses_slog_default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	})

	t.Run("from_context", func(t *testing.T) {
		ctx := WithLogger(context.Background(), ctxLogger)
		assert.Same(t, ctxLogger, FromContext(ctx))
	})
}

func TestForComponent(t *testing.T) {
	tests := []struct {
		name      string
		withCtx   bool
		wantTrace bool
	}{
		{name: "tags_context_logger", withCtx: true, wantTrace: true},
		{name: "tags_fallback", withCtx: false, wantTrace: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.New(slog.NewTextHandler(&buf, nil))

			ctx := context.Background()
			if tt.withCtx {
				ctx = WithLogger(ctx, base.With("trace_id", "abc"))
			}

			ForComponent(ctx, base, "user_store").Info("saved")

			out := buf.String()
			assert.Equal(t, 1, strings.Count(out, "component="))
			assert.Contains(t, out, "component=user_store")
			assert.Equal(t, tt.wantTrace, strings.Contains(out, "trace_id=abc"))
		})
	}
}
