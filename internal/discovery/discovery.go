// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package discovery fills a registry from an ordered list of command sources.
package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
)

// ErrSource wraps every failure attributed to a single source.
var ErrSource = errors.New("command source failed")

// Registrar is the write side of the registry.
type Registrar interface {
	RegisterAll(ds ...commands.Descriptor) error
}

// SourceError records which source failed and why.
type SourceError struct {
	Source string
	Err    error
}

// Error implements the error interface for SourceError.
func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q: %s", e.Source, e.Err.Error())
}

// Unwrap returns ErrSource and the cause.
func (e *SourceError) Unwrap() []error {
	return []error{ErrSource, e.Err}
}

// Load enumerates every source in order and registers its descriptors.
//
// A source is registered all-or-nothing. Loading carries on past a failing source so
// that every problem is reported at once; the returned error aggregates all of them.
func Load(ctx context.Context, reg Registrar, sources ...commands.Source) error {
	var result error

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return multierror.Append(result, err).ErrorOrNil()
		}

		n, err := loadOne(ctx, reg, src)
		if err != nil {
			ctxlog.Debug(ctx, "discovery", "source", src.Name(), "error", err)
			result = multierror.Append(result, &SourceError{Source: src.Name(), Err: err})

			continue
		}

		ctxlog.Debug(ctx, "discovery", "source", src.Name(), "commands", n)
	}

	if merr, ok := result.(*multierror.Error); ok {
		return merr.ErrorOrNil()
	}

	return result
}

func loadOne(ctx context.Context, reg Registrar, src commands.Source) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while enumerating: %v", r)
		}
	}()

	ds, err := src.Descriptors(ctx)
	if err != nil {
		return 0, err
	}

	if err := reg.RegisterAll(ds...); err != nil {
		return 0, err
	}

	return len(ds), nil
}
