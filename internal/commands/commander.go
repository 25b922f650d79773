// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"fmt"
	"io"
)

// Handler is the unit of work attached to a descriptor.
//
// Returning nil reports success. Returning an error that wraps a *Failure reports a
// handled failure with the failure's exit code. Any other error, or a panic, is treated
// by the dispatcher as a fault.
type Handler interface {
	Run(ctx context.Context, inv *Invocation) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, inv *Invocation) error

// Run implements the Handler interface.
func (f HandlerFunc) Run(ctx context.Context, inv *Invocation) error {
	return f(ctx, inv)
}

// Invocation carries everything a handler needs for a single run.
type Invocation struct {
	Command Descriptor // The resolved descriptor.
	Args    []string   // Raw arguments, exactly as forwarded by the caller.
	Parsed  Parsed     // Arguments split according to the descriptor's ArgSpec.
	Stdout  io.Writer
	Stderr  io.Writer
	Stdin   io.Reader
	summary string
}

// Summarize records an optional result message for a successful run.
func (i *Invocation) Summarize(format string, a ...any) {
	i.summary = fmt.Sprintf(format, a...)
}

// Summary returns the message recorded with Summarize.
func (i *Invocation) Summary() string {
	return i.summary
}

// Source is a self-contained provider of command descriptors, enumerated once by the
// discovery loader.
type Source interface {
	Name() string
	Descriptors(ctx context.Context) ([]Descriptor, error)
}

type sourceFunc struct {
	name string
	fn   func(context.Context) ([]Descriptor, error)
}

func (s *sourceFunc) Name() string {
	return s.name
}

func (s *sourceFunc) Descriptors(ctx context.Context) ([]Descriptor, error) {
	return s.fn(ctx)
}

// NewSource creates a Source backed by a function, for sources that need to read
// configuration or files when enumerated.
func NewSource(name string, fn func(context.Context) ([]Descriptor, error)) Source {
	return &sourceFunc{name: name, fn: fn}
}

// Static creates a Source that always yields the given descriptors.
func Static(name string, ds ...Descriptor) Source {
	return NewSource(name, func(context.Context) ([]Descriptor, error) {
		return ds, nil
	})
}

// Catalog is the read-only view of the registry used by the dispatcher and by commands
// that describe other commands.
type Catalog interface {
	Get(name string) (Descriptor, error)
	All() []Descriptor
	ByCategory(c Category) ([]Descriptor, error)
	Categories() []Category
}
