// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"fmt"
)

// ErrArgument is the sentinel matched by every *ArgumentError.
var ErrArgument = errors.New("invalid arguments")

// ArgumentError is returned when the arguments do not match a command's ArgSpec.
// The handler is never invoked when this error is produced.
type ArgumentError struct {
	Command string // Qualified command name, filled in by the dispatcher.
	Reason  string
	Usage   string
}

// Error implements the error interface for ArgumentError.
func (e *ArgumentError) Error() string {
	if e.Command == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// Unwrap allows errors.Is(err, ErrArgument).
func (e *ArgumentError) Unwrap() error {
	return ErrArgument
}

func newArgumentError(format string, a ...any) *ArgumentError {
	return &ArgumentError{Reason: fmt.Sprintf(format, a...)}
}

// Failure is a well-formed failure reported by a handler.
// The dispatcher propagates Code as the process exit code.
type Failure struct {
	Code    int
	Message string
}

// Error implements the error interface for Failure.
func (f *Failure) Error() string {
	return f.Message
}

// Fail returns a handled failure with the given exit code.
func Fail(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// Failf is Fail with formatting.
func Failf(code int, format string, a ...any) error {
	return &Failure{Code: code, Message: fmt.Sprintf(format, a...)}
}

// AsFailure extracts a *Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	ok := errors.As(err, &f)

	return f, ok
}
