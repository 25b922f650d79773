// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"errors"
	"fmt"
)

// Process exit codes. Handler-chosen codes are clamped into
// [ExitHandlerMin, ExitHandlerMax] so they never collide with the others.
const (
	ExitSuccess     = 0
	ExitHandlerMin  = 1
	ExitHandlerMax  = 63
	ExitUsage       = 64
	ExitFault       = 70
	ExitConfig      = 78
	ExitNotFound    = 127
	ExitInterrupted = 130
)

// Status is the terminal state of a dispatch.
type Status string

// Dispatch outcomes.
const (
	StatusSuccess        Status = "success"
	StatusHandledFailure Status = "handled_failure"
	StatusFault          Status = "fault"
	StatusRejected       Status = "rejected"
)

// Result is the outcome of a dispatch.
type Result struct {
	Status   Status
	ExitCode int
	Message  string
	Err      error
	Command  string // Qualified name, empty when nothing was resolved.
}

// OK reports whether the dispatch succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// ErrFault is the sentinel matched by every *FaultError.
var ErrFault = errors.New("command fault")

// FaultError wraps an unexpected handler error or a recovered panic value.
type FaultError struct {
	Command string
	Value   any  // The panic value, or the unexpected error.
	Panic   bool // Whether Value came from recover().
}

// Error implements the error interface for FaultError.
func (e *FaultError) Error() string {
	what := "failed unexpectedly"
	if e.Panic {
		what = "panicked"
	}

	switch x := e.Value.(type) {
	case error:
		return fmt.Sprintf("%s %s: %s", e.Command, what, x.Error())
	default:
		return fmt.Sprintf("%s %s: %v", e.Command, what, x)
	}
}

// Unwrap returns ErrFault and, when the cause is an error, the cause.
func (e *FaultError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrFault, err}
	}

	return []error{ErrFault}
}

func clampHandlerCode(code int) int {
	return min(max(code, ExitHandlerMin), ExitHandlerMax)
}
