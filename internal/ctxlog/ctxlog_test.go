// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndLogger(t *testing.T) {
	custom := NewJSONLogger(&bytes.Buffer{})

	tests := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{
			name: "context with logger",
			ctx:  New(context.Background(), custom),
			want: custom,
		},
		{
			name: "nil logger stores the default",
			ctx:  New(context.Background(), nil),
			want: DefaultLogger,
		},
		{
			name: "context without logger",
			ctx:  context.Background(),
			want: DefaultLogger,
		},
		{
			name: "context with wrong type value",
			ctx:  context.WithValue(context.Background(), loggerKey{}, "not a logger"),
			want: DefaultLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, Logger(tt.ctx))
		})
	}
}

func TestLoggingFunctions(t *testing.T) {
	old := LevelVar.Level()
	LevelVar.Set(slog.LevelDebug)

	t.Cleanup(func() { LevelVar.Set(old) })

	var buf bytes.Buffer

	ctx := New(context.Background(), NewJSONLogger(&buf))

	Debug(ctx, "debug message", "bar", "s1")
	Info(ctx, "info message")
	Warn(ctx, "warn message")
	Error(ctx, "error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	wantLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}

	for i, line := range lines {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, wantLevels[i], rec["level"])
	}

	assert.Contains(t, lines[0], `"bar":"s1"`)
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"WARN+2", slog.LevelWarn + 2},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			getenv := func(key string) string {
				if key == EnvVarName() {
					return tt.value
				}

				return ""
			}

			assert.Equal(t, tt.want, levelFromEnv(getenv))
		})
	}
}

func TestEnvVarName(t *testing.T) {
	name := EnvVarName()

	assert.True(t, strings.HasSuffix(name, "_LOG_LEVEL"))
	assert.Equal(t, strings.ToUpper(name), name)
	assert.NotContains(t, name, "-")
}

func TestNewPrettyLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewPrettyLogger(&buf, false)
	logger.Error("render failed", "bar", "task1")

	out := buf.String()
	assert.Contains(t, out, "ERROR: render failed")
	assert.Contains(t, out, `"bar": "task1"`)
	assert.NotContains(t, out, "\033[")
}
