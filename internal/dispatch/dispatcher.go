// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/matt-FFFFFF/plasma/internal/commandregistry"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
)

const (
	// ListCommand is the reserved first argument that selects listing mode.
	ListCommand = "list"
)

// Dispatcher resolves and invokes commands from a catalog.
type Dispatcher struct {
	catalog   commands.Catalog
	stdout    io.Writer
	stderr    io.Writer
	stdin     io.Reader
	faultCode int
	program   string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithStdout sets the stream handlers and listings write to.
func WithStdout(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.stdout = w
	}
}

// WithStderr sets the stream for error output.
func WithStderr(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.stderr = w
	}
}

// WithStdin sets the stream handlers read prompts from.
func WithStdin(r io.Reader) Option {
	return func(d *Dispatcher) {
		d.stdin = r
	}
}

// WithFaultExitCode overrides ExitFault.
func WithFaultExitCode(code int) Option {
	return func(d *Dispatcher) {
		d.faultCode = code
	}
}

// WithProgramName sets the program name used in hints.
func WithProgramName(name string) Option {
	return func(d *Dispatcher) {
		d.program = name
	}
}

// New creates a Dispatcher over the catalog, wired to the process streams.
func New(catalog commands.Catalog, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		catalog:   catalog,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		stdin:     os.Stdin,
		faultCode: ExitFault,
		program:   commands.ProgramName,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Resolve looks up a command by bare name or by `category:name`.
// A qualified request whose category does not match the command's is not found.
func (d *Dispatcher) Resolve(requested string) (commands.Descriptor, error) {
	category, name, qualified := strings.Cut(requested, commands.QualifierSeparator)
	if !qualified {
		return d.catalog.Get(requested)
	}

	desc, err := d.catalog.Get(name)
	if err != nil {
		return commands.Descriptor{}, fmt.Errorf("%w: %q", commandregistry.ErrNotFound, requested)
	}

	if desc.Category != commands.Category(category) {
		return commands.Descriptor{}, fmt.Errorf("%w: %q (%q is listed under %q)",
			commandregistry.ErrNotFound, requested, name, desc.Category)
	}

	return desc, nil
}

// Invoke validates args against the descriptor and runs its handler in the calling
// goroutine. The handler is not called when validation fails.
func (d *Dispatcher) Invoke(ctx context.Context, desc commands.Descriptor, args []string) Result {
	qualified := desc.QualifiedName()
	ctx = ctxlog.With(ctx, ctxlog.CommandKey, qualified)

	parsed, err := desc.Args.Parse(ctx, args)
	if err != nil {
		return d.rejectArguments(desc, err)
	}

	inv := &commands.Invocation{
		Command: desc,
		Args:    args,
		Parsed:  parsed,
		Stdout:  d.stdout,
		Stderr:  d.stderr,
		Stdin:   d.stdin,
	}

	ctxlog.Debug(ctx, "invoking", "args", args)

	err = d.run(ctx, desc, inv)

	res := d.classify(ctx, desc, err)
	res.Command = qualified

	if res.Status == StatusSuccess {
		res.Message = inv.Summary()
	}

	ctxlog.Debug(ctx, "completed", "status", res.Status, "exitCode", res.ExitCode)

	return res
}

// run calls the handler, converting a panic into a *FaultError.
func (d *Dispatcher) run(ctx context.Context, desc commands.Descriptor, inv *commands.Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.Error(ctx, "handler panicked", "panic", fmt.Sprint(r))
			ctxlog.Debug(ctx, "panic stack", "stack", string(debug.Stack()))

			err = &FaultError{Command: desc.QualifiedName(), Value: r, Panic: true}
		}
	}()

	return desc.Handler.Run(ctx, inv)
}

func (d *Dispatcher) classify(ctx context.Context, desc commands.Descriptor, err error) Result {
	if err == nil {
		return Result{Status: StatusSuccess, ExitCode: ExitSuccess}
	}

	var (
		failure *commands.Failure
		argErr  *commands.ArgumentError
		fault   *FaultError
	)

	switch {
	case errors.As(err, &fault):
		return Result{Status: StatusFault, ExitCode: d.faultCode, Message: fault.Error(), Err: err}
	case errors.As(err, &failure):
		return Result{
			Status:   StatusHandledFailure,
			ExitCode: clampHandlerCode(failure.Code),
			Message:  err.Error(),
			Err:      err,
		}
	case errors.As(err, &argErr):
		return d.rejectArguments(desc, err)
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		return Result{Status: StatusHandledFailure, ExitCode: ExitInterrupted, Message: "interrupted", Err: err}
	}

	ctxlog.Warn(ctx, "handler returned an unexpected error", "error", err)

	fault = &FaultError{Command: desc.QualifiedName(), Value: err}

	return Result{Status: StatusFault, ExitCode: d.faultCode, Message: fault.Error(), Err: fault}
}

func (d *Dispatcher) rejectArguments(desc commands.Descriptor, err error) Result {
	var argErr *commands.ArgumentError
	if errors.As(err, &argErr) {
		if argErr.Command == "" {
			argErr.Command = desc.QualifiedName()
		}

		if argErr.Usage == "" {
			argErr.Usage = desc.Usage()
		}
	}

	return Result{
		Status:   StatusRejected,
		ExitCode: ExitUsage,
		Message:  err.Error(),
		Err:      err,
		Command:  desc.QualifiedName(),
	}
}

// Dispatch runs the whole state machine for a command line (without the program name).
//
//   - no arguments, `list`: list every command
//   - `list:<category>` or `list <category>`: list one category
//   - `<name> args...` or `<category>:<name> args...`: resolve and invoke
func (d *Dispatcher) Dispatch(ctx context.Context, argv []string) Result {
	if len(argv) == 0 {
		return d.list(ctx, "")
	}

	head, rest := argv[0], argv[1:]

	switch {
	case head == ListCommand:
		switch len(rest) {
		case 0:
			return d.list(ctx, "")
		case 1:
			return d.listCategory(ctx, rest[0])
		default:
			return Result{
				Status:   StatusRejected,
				ExitCode: ExitUsage,
				Message:  fmt.Sprintf("%s takes at most one category, got %d arguments", ListCommand, len(rest)),
				Err:      commands.ErrArgument,
			}
		}
	case strings.HasPrefix(head, ListCommand+commands.QualifierSeparator):
		if len(rest) > 0 {
			return Result{
				Status:   StatusRejected,
				ExitCode: ExitUsage,
				Message:  fmt.Sprintf("%s takes no arguments", head),
				Err:      commands.ErrArgument,
			}
		}

		return d.listCategory(ctx, strings.TrimPrefix(head, ListCommand+commands.QualifierSeparator))
	}

	desc, err := d.Resolve(head)
	if err != nil {
		ctxlog.Debug(ctx, "resolve failed", "requested", head, "error", err)

		return Result{
			Status:   StatusRejected,
			ExitCode: ExitNotFound,
			Message: fmt.Sprintf("command %q not found, run %q to see available commands",
				head, d.program+" "+ListCommand),
			Err: err,
		}
	}

	return d.Invoke(ctx, desc, rest)
}

// listCategory lists one named category. An empty name names no category, so
// `list:` is rejected rather than widened to the full listing.
func (d *Dispatcher) listCategory(ctx context.Context, category string) Result {
	if category == "" {
		return d.rejectCategory(ctx, category, fmt.Errorf("%w: %q", commandregistry.ErrUnknownCategory, category))
	}

	return d.list(ctx, category)
}

func (d *Dispatcher) list(ctx context.Context, category string) Result {
	listing, err := d.List(category)
	if err != nil {
		return d.rejectCategory(ctx, category, err)
	}

	if err := listing.Render(d.stdout); err != nil {
		return Result{Status: StatusFault, ExitCode: d.faultCode, Message: err.Error(), Err: err}
	}

	return Result{Status: StatusSuccess, ExitCode: ExitSuccess}
}

func (d *Dispatcher) rejectCategory(ctx context.Context, category string, err error) Result {
	ctxlog.Debug(ctx, "list failed", "category", category, "error", err)

	return Result{
		Status:   StatusRejected,
		ExitCode: ExitNotFound,
		Message:  fmt.Sprintf("%s, available categories: %s", err.Error(), joinCategories(d.catalog.Categories())),
		Err:      err,
	}
}

func joinCategories(cs []commands.Category) string {
	if len(cs) == 0 {
		return "none"
	}

	s := make([]string, len(cs))
	for i, c := range cs {
		s[i] = c.String()
	}

	return strings.Join(s, ", ")
}
