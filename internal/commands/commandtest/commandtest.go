// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandtest runs command handlers in tests without a dispatcher.
package commandtest

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/stretchr/testify/require"
)

// Output is what a handler wrote and returned.
type Output struct {
	Stdout  string
	Stderr  string
	Summary string
	Err     error
}

// Run parses args with the descriptor's ArgSpec and runs its handler with stdin
// reading from input. Argument errors fail the test.
func Run(t *testing.T, d commands.Descriptor, input string, args ...string) Output {
	t.Helper()

	return RunContext(context.Background(), t, d, input, args...)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, t *testing.T, d commands.Descriptor, input string, args ...string) Output {
	t.Helper()

	parsed, err := d.Args.Parse(ctx, args)
	require.NoError(t, err, "arguments should satisfy %s", d.Usage())

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	inv := &commands.Invocation{
		Command: d,
		Args:    args,
		Parsed:  parsed,
		Stdout:  out,
		Stderr:  errOut,
		Stdin:   strings.NewReader(input),
	}

	err = d.Handler.Run(ctx, inv)

	return Output{Stdout: out.String(), Stderr: errOut.String(), Summary: inv.Summary(), Err: err}
}

// Descriptor enumerates src and returns the descriptor called name.
func Descriptor(t *testing.T, src commands.Source, name string) commands.Descriptor {
	t.Helper()

	ds, err := src.Descriptors(context.Background())
	require.NoError(t, err)

	for _, d := range ds {
		require.NoError(t, d.Validate())

		if d.Name == name {
			return d
		}
	}

	require.FailNow(t, "descriptor not found", "source %q has no command %q", src.Name(), name)

	return commands.Descriptor{}
}

// FailureCode returns the code of a *commands.Failure in err, or -1.
func FailureCode(err error) int {
	f, ok := commands.AsFailure(err)
	if !ok {
		return -1
	}

	return f.Code
}
