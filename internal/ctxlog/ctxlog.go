// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type loggerKey struct{}

const (
	// FormatPretty selects the human-readable console handler.
	FormatPretty = "pretty"
	// FormatJSON selects the slog JSON handler.
	FormatJSON = "json"
)

// LevelVar is shared by every logger created by this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is the pretty logger used when the context carries none.
var DefaultLogger = NewLogger(os.Stderr, FormatPretty)

func init() {
	LevelVar.Set(slog.LevelWarn)
}

// NewLogger returns a logger writing to w in the given format.
// Unknown formats fall back to the pretty handler.
func NewLogger(w io.Writer, format string) *slog.Logger {
	if strings.EqualFold(format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelVar}))
	}

	return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar},
		WithDestinationWriter(w),
		WithAutoColour(),
	))
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a slog level.
// Any other value yields WARN.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a context carrying logger. A nil logger means DefaultLogger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or DefaultLogger if there is none.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// With returns a context whose logger carries the extra attributes.
func With(ctx context.Context, args ...any) context.Context {
	return New(ctx, Logger(ctx).With(args...))
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}
