// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/conbar/internal/color"
)

type loggerKey struct{}

// LevelVar is shared by every logger built by this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is used when the context carries no logger.
var DefaultLogger = NewPrettyLogger(os.Stderr, color.EnabledFor(os.Stderr))

func init() {
	LevelVar.Set(levelFromEnv(os.Getenv))
}

// NewPrettyLogger returns a logger formatting records with PrettyHandler.
func NewPrettyLogger(w io.Writer, colour bool) *slog.Logger {
	opts := []Option{WithDestinationWriter(w)}
	if colour {
		opts = append(opts, WithColour())
	}

	return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar}, opts...))
}

// NewJSONLogger returns a logger writing one JSON object per record.
func NewJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelVar}))
}

// New returns a copy of ctx carrying logger, or DefaultLogger if logger is nil.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Debug logs a debug message with the context logger.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Info logs an info message with the context logger.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Warn logs a warning with the context logger.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error with the context logger.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// EnvVarName returns the variable holding the log level, derived from the
// executable name: "conbar" reads CONBAR_LOG_LEVEL.
func EnvVarName() string {
	exec, _ := os.Executable()
	exec = filepath.Base(exec)
	exec = strings.TrimSuffix(exec, ".exe")
	exec = strings.NewReplacer("-", "_", ".", "_").Replace(exec)

	return strings.ToUpper(exec) + "_LOG_LEVEL"
}

// levelFromEnv parses the level with slog's own syntax, so "debug" and
// "WARN+2" both work. Anything unparsable means WARN.
func levelFromEnv(getenv func(string) string) slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(getenv(EnvVarName()))); err != nil {
		return slog.LevelWarn
	}

	return level
}
