// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandlerLine(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(buf))
	logger := slog.New(h).With(CommandKey, "server:kill")

	logger.Info("terminated", "pid", 42)

	line := buf.String()
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\.\d{3}\] INFO: \[server:kill\] terminated `, line)
	assert.Contains(t, line, `"pid": 42`)
	assert.NotContains(t, line, "\033[", "colour is off unless requested")
	assert.NotContains(t, line, `"command"`, "command is promoted to the prefix")
}

func TestPrettyHandlerEmptyAttrs(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		want    string
	}{
		{name: "omitted", want: "WARN: careful\n"},
		{name: "output", options: []Option{WithOutputEmptyAttrs()}, want: "WARN: careful {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			opts := append([]Option{WithDestinationWriter(buf)}, tt.options...)
			slog.New(NewPrettyHandler(nil, opts...)).Warn("careful")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrettyHandlerColour(t *testing.T) {
	buf := &bytes.Buffer{}
	slog.New(NewPrettyHandler(nil, WithDestinationWriter(buf), WithColour())).Error("bad")

	assert.Contains(t, buf.String(), "\033[31mERROR:\033[0m")
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelWarn}, WithDestinationWriter(buf))

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandlerGroups(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(buf))).WithGroup("proc")

	logger.Warn("slow", "pid", 7)

	assert.Contains(t, buf.String(), `"proc": {`)
	assert.Contains(t, buf.String(), `"pid": 7`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrettyHandlerWriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))
	rec := slog.NewRecord(time.Time{}, slog.LevelWarn, "x", 0)

	err := h.Handle(context.Background(), rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}
