// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package procruntest provides a scripted procrun.Runner for handler tests.
package procruntest

import (
	"context"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/plasma/internal/procrun"
)

// Script answers commands by their rendered command line. Lines without an
// answer exit 127, as a shell would for an unknown program.
type Script struct {
	mu      sync.Mutex
	answers map[string]procrun.Result
	calls   []procrun.Command
}

// New creates an empty Script.
func New() *Script {
	return &Script{answers: map[string]procrun.Result{}}
}

// On registers the result for a command line such as `git status --porcelain`.
func (s *Script) On(line string, res procrun.Result) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers[line] = res

	return s
}

// OnOutput registers a successful command printing stdout.
func (s *Script) OnOutput(line, stdout string) *Script {
	return s.On(line, procrun.Result{Stdout: []byte(stdout)})
}

// OnExit registers a command exiting with code and stderr.
func (s *Script) OnExit(line string, code int, stderr string) *Script {
	return s.On(line, procrun.Result{ExitCode: code, Stderr: []byte(stderr)})
}

// Run implements procrun.Runner.
func (s *Script) Run(_ context.Context, c procrun.Command) procrun.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, c)

	res, ok := s.answers[c.String()]
	if !ok {
		return procrun.Result{ExitCode: 127, Stderr: []byte("unscripted: " + c.String())}
	}

	if c.Stdout != nil && len(res.Stdout) > 0 {
		_, _ = c.Stdout.Write(res.Stdout)
	}

	if c.Stderr != nil && len(res.Stderr) > 0 {
		_, _ = c.Stderr.Write(res.Stderr)
	}

	return res
}

// Calls returns the command lines run so far, in order.
func (s *Script) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.String()
	}

	return out
}

// Ran reports whether line was run.
func (s *Script) Ran(line string) bool {
	for _, c := range s.Calls() {
		if strings.EqualFold(c, line) {
			return true
		}
	}

	return false
}
