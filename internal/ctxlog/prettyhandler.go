// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/conbar/internal/color"
)

var (
	// ErrMarshalAttribute is returned when an error occurs while marshaling an attribute.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when an error occurs while writing to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log messages.
const TimeFormat = "[15:04:05.000]"

// PrettyHandler formats records as a single coloured line: timestamp, level,
// message and the remaining attributes as indented JSON.
type PrettyHandler struct {
	h                slog.Handler
	r                func([]string, slog.Attr) slog.Attr
	b                *bytes.Buffer
	m                *sync.Mutex
	writer           io.Writer
	colour           bool
	outputEmptyAttrs bool
}

// NewPrettyHandler creates a PrettyHandler. Attributes are rendered by an
// inner JSON handler writing into a private buffer.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}

	buf := &bytes.Buffer{}
	handler := &PrettyHandler{
		b: buf,
		h: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		r:      handlerOptions.ReplaceAttr,
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}

	for _, opt := range options {
		opt(handler)
	}

	return handler
}

// Option implements a functional options pattern for PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the destination writer.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables ANSI colour.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithOutputEmptyAttrs prints "{}" for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *PrettyHandler) {
		h.outputEmptyAttrs = true
	}
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.h = h.h.WithAttrs(attrs)

	return &clone
}

// WithGroup implements slog.Handler.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.h = h.h.WithGroup(name)

	return &clone
}

// Handle implements slog.Handler.
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	level := h.builtin(slog.LevelKey, slog.AnyValue(r.Level))
	if level != "" {
		level = h.paint(level+":", levelColour(r.Level))
	}

	timestamp := h.builtin(slog.TimeKey, slog.StringValue(r.Time.Format(TimeFormat)))
	if timestamp != "" {
		timestamp = h.paint(timestamp, color.FgWhite)
	}

	msg := h.builtin(slog.MessageKey, slog.StringValue(r.Message))
	if msg != "" {
		msg = h.paint(msg, color.FgHiWhite)
	}

	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}

	var attrsAsBytes []byte

	if h.outputEmptyAttrs || len(attrs) > 0 {
		formatter := colorjson.NewFormatter()
		formatter.Indent = 2
		formatter.DisabledColor = !h.colour

		attrsAsBytes, err = formatter.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}
	}

	out := strings.Builder{}

	for _, part := range []string{timestamp, level, msg} {
		if part != "" {
			out.WriteString(part)
			out.WriteString(" ")
		}
	}

	if len(attrsAsBytes) > 0 {
		out.Write(attrsAsBytes)
	}

	out.WriteString("\n")

	if _, err := io.WriteString(h.writer, out.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin applies ReplaceAttr to a built-in attribute and returns its text,
// or "" when the attribute was dropped.
func (h *PrettyHandler) builtin(key string, value slog.Value) string {
	attr := slog.Attr{Key: key, Value: value}
	if h.r != nil {
		attr = h.r([]string{}, attr)
	}

	if attr.Equal(slog.Attr{}) {
		return ""
	}

	return attr.Value.String()
}

func (h *PrettyHandler) paint(s string, code color.Code) string {
	if !h.colour {
		return s
	}

	return color.Colorize(s, code)
}

func (h *PrettyHandler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.m.Lock()
	defer func() {
		h.b.Reset()
		h.m.Unlock()
	}()

	if err := h.h.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any

	if err := json.Unmarshal(h.b.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}

	return attrs, nil
}

func levelColour(level slog.Level) color.Code {
	switch {
	case level <= slog.LevelDebug:
		return color.FgWhite
	case level <= slog.LevelInfo:
		return color.FgCyan
	case level < slog.LevelWarn:
		return color.FgBlue
	case level < slog.LevelError:
		return color.FgYellow
	case level <= slog.LevelError+1:
		return color.FgRed
	default:
		return color.FgHiMagenta
	}
}

func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey ||
			a.Key == slog.LevelKey ||
			a.Key == slog.MessageKey {
			return slog.Attr{}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}
