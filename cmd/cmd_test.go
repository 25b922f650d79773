// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/plasma/internal/commandregistry"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/discovery"
	"github.com/matt-FFFFFF/plasma/internal/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(load func(ctx context.Context, reg *commandregistry.Registry) error) *harness {
	h := &harness{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	reg := commandregistry.New()

	h.app = &App{
		Dispatcher: dispatch.New(reg,
			dispatch.WithStdout(h.out),
			dispatch.WithStderr(h.errOut),
			dispatch.WithStdin(strings.NewReader(""))),
		Load: func(ctx context.Context) error {
			return load(ctx, reg)
		},
		Stdout: h.out,
		Stderr: h.errOut,
	}

	return h
}

func (h *harness) run(t *testing.T, args ...string) int {
	t.Helper()
	require.NoError(t, New(h.app).Run(context.Background(), append([]string{"plasma"}, args...)))

	return h.app.ExitCode
}

func greetSource() commands.Source {
	return commands.Static("test", commands.Descriptor{
		Name:     "greet",
		Category: "demo",
		Summary:  "Say hello",
		Args: &commands.ArgSpec{
			Positionals: []commands.ArgMeta{{Name: "who"}},
			Flags:       []commands.FlagMeta{{Name: "loud", Short: "l"}},
		},
		Handler: commands.HandlerFunc(func(_ context.Context, inv *commands.Invocation) error {
			who := inv.Parsed.Arg(0)
			if who == "" {
				who = "world"
			}

			if inv.Parsed.Bool("loud") {
				who = strings.ToUpper(who)
			}

			inv.Summarize("hello %s", who)

			return nil
		}),
	})
}

func loadGreet(ctx context.Context, reg *commandregistry.Registry) error {
	return discovery.Load(ctx, reg, greetSource())
}

func TestRunDispatchesArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{name: "bare name", args: []string{"greet"}, code: dispatch.ExitSuccess, out: "hello world"},
		{name: "qualified name", args: []string{"demo:greet", "plasma"}, code: dispatch.ExitSuccess, out: "hello plasma"},
		{name: "flags reach the command", args: []string{"greet", "--loud", "you"}, code: dispatch.ExitSuccess, out: "hello YOU"},
		{name: "listing", args: nil, code: dispatch.ExitSuccess, out: "greet"},
		{name: "unknown command", args: []string{"nope"}, code: dispatch.ExitNotFound},
		{name: "unknown flag", args: []string{"greet", "--quiet"}, code: dispatch.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(loadGreet)

			assert.Equal(t, tt.code, h.run(t, tt.args...))

			if tt.out != "" {
				assert.Contains(t, h.out.String(), tt.out)
			}
		})
	}
}

func TestRunHelpAndVersionSkipDiscovery(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{arg: "--version", want: "plasma version"},
		{arg: "-v", want: Version},
		{arg: "--help", want: "USAGE"},
		{arg: "-h", want: "<category>:<command>"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			loaded := false
			h := newHarness(func(context.Context, *commandregistry.Registry) error {
				loaded = true
				return nil
			})

			assert.Equal(t, dispatch.ExitSuccess, h.run(t, tt.arg))
			assert.Contains(t, h.out.String(), tt.want)
			assert.False(t, loaded)
		})
	}
}

func TestRunHelpFlagAfterCommandIsForwarded(t *testing.T) {
	h := newHarness(loadGreet)

	assert.Equal(t, dispatch.ExitUsage, h.run(t, "greet", "--help"))
	assert.Contains(t, h.errOut.String(), "help")
	assert.Contains(t, h.out.String(), "usage: plasma demo:greet")
}

func TestRunDiscoveryFailureIsConfigError(t *testing.T) {
	h := newHarness(func(context.Context, *commandregistry.Registry) error {
		return errors.New("manifest is broken")
	})

	assert.Equal(t, dispatch.ExitConfig, h.run(t, "greet"))
	assert.Contains(t, h.errOut.String(), "manifest is broken")
	assert.Empty(t, h.out.String())
}
