// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
)

// ErrInvalidArgSpec is returned when an ArgSpec contradicts itself.
var ErrInvalidArgSpec = errors.New("invalid argument spec")

// ArgMeta describes a positional argument.
type ArgMeta struct {
	Name        string
	Description string
	Required    bool
	Variadic    bool // Only allowed on the last positional.
}

// FlagMeta describes a flag. Flags are written `--name`, `--name=value` or `-s`.
type FlagMeta struct {
	Name        string
	Short       string
	Description string
	TakesValue  bool
}

// ActionMeta describes a leading verb, e.g. `add` in `env:path add <path>`.
type ActionMeta struct {
	Name        string
	Description string
	Positionals []ArgMeta
}

// ArgSpec is the declarative constraint on the arguments a command accepts.
type ArgSpec struct {
	// Actions, when set, makes the first positional a verb chosen from this list.
	Actions []ActionMeta
	// DefaultAction is used when no positional is given. Empty means an action is required.
	DefaultAction string
	// Positionals applies when no Actions are declared.
	Positionals []ArgMeta
	Flags       []FlagMeta
	// Passthrough disables flag recognition; every token counts as a positional.
	Passthrough bool
}

// Parsed is the result of splitting raw arguments with an ArgSpec.
type Parsed struct {
	Action      string
	Positionals []string
	Flags       map[string]string
}

// Arg returns the i-th positional or the empty string.
func (p Parsed) Arg(i int) string {
	if i < 0 || i >= len(p.Positionals) {
		return ""
	}

	return p.Positionals[i]
}

// Flag returns the value of a flag and whether it was given.
func (p Parsed) Flag(name string) (string, bool) {
	v, ok := p.Flags[name]
	return v, ok
}

// Bool reports whether a boolean flag was given.
func (p Parsed) Bool(name string) bool {
	_, ok := p.Flags[name]
	return ok
}

// Validate checks the ArgSpec for internal consistency.
func (s *ArgSpec) Validate() error {
	if len(s.Actions) > 0 && len(s.Positionals) > 0 {
		return fmt.Errorf("%w: positionals must be declared per action when actions are used", ErrInvalidArgSpec)
	}

	seen := make(map[string]struct{}, len(s.Actions))

	for _, a := range s.Actions {
		if a.Name == "" {
			return fmt.Errorf("%w: action without a name", ErrInvalidArgSpec)
		}

		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("%w: duplicate action %q", ErrInvalidArgSpec, a.Name)
		}

		seen[a.Name] = struct{}{}

		if err := validatePositionals(a.Positionals); err != nil {
			return err
		}
	}

	if s.DefaultAction != "" {
		if _, ok := s.action(s.DefaultAction); !ok {
			return fmt.Errorf("%w: default action %q is not declared", ErrInvalidArgSpec, s.DefaultAction)
		}
	}

	if err := validatePositionals(s.Positionals); err != nil {
		return err
	}

	flags := make(map[string]struct{}, len(s.Flags)*2)

	for _, f := range s.Flags {
		for _, n := range []string{f.Name, f.Short} {
			if n == "" {
				continue
			}

			if _, dup := flags[n]; dup {
				return fmt.Errorf("%w: duplicate flag %q", ErrInvalidArgSpec, n)
			}

			flags[n] = struct{}{}
		}
	}

	if s.Passthrough && len(s.Flags) > 0 {
		return fmt.Errorf("%w: passthrough specs cannot declare flags", ErrInvalidArgSpec)
	}

	return nil
}

func validatePositionals(ps []ArgMeta) error {
	optional := false

	for i, p := range ps {
		if p.Variadic && i != len(ps)-1 {
			return fmt.Errorf("%w: only the last positional may be variadic (%q)", ErrInvalidArgSpec, p.Name)
		}

		if p.Required && optional {
			return fmt.Errorf("%w: required positional %q follows an optional one", ErrInvalidArgSpec, p.Name)
		}

		if !p.Required {
			optional = true
		}
	}

	return nil
}

// Parse validates args against the ArgSpec.
// A nil spec accepts everything and returns the raw args as positionals.
//
// Flags are parsed by a single-use urfave/cli command built from the declared
// FlagMeta; actions and arity are checked on what it leaves behind.
func (s *ArgSpec) Parse(ctx context.Context, args []string) (Parsed, error) {
	p := Parsed{Flags: map[string]string{}}

	if s == nil {
		p.Positionals = slices.Clone(args)
		return p, nil
	}

	positionals := slices.Clone(args)

	if !s.Passthrough {
		var err error
		if positionals, err = s.parseFlags(ctx, args, p.Flags); err != nil {
			return Parsed{}, err
		}
	}

	expected := s.Positionals

	if len(s.Actions) > 0 {
		var act ActionMeta

		if len(positionals) == 0 {
			if s.DefaultAction == "" {
				return Parsed{}, newArgumentError("missing action, expected one of %s", s.actionList())
			}

			act, _ = s.action(s.DefaultAction)
		} else {
			var ok bool
			if act, ok = s.action(positionals[0]); !ok {
				return Parsed{}, newArgumentError("unknown action %q, expected one of %s", positionals[0], s.actionList())
			}

			positionals = positionals[1:]
		}

		p.Action = act.Name
		expected = act.Positionals
	}

	if err := checkArity(expected, positionals); err != nil {
		return Parsed{}, err
	}

	if len(positionals) > 0 {
		p.Positionals = positionals
	}

	return p, nil
}

func (s *ArgSpec) cliFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(s.Flags))

	for _, f := range s.Flags {
		var aliases []string
		if f.Short != "" {
			aliases = []string{f.Short}
		}

		if f.TakesValue {
			flags = append(flags, &cli.StringFlag{Name: f.Name, Aliases: aliases, Usage: f.Description})
			continue
		}

		flags = append(flags, &cli.BoolFlag{Name: f.Name, Aliases: aliases, Usage: f.Description})
	}

	return flags
}

// parseFlags runs args through a cli command carrying the declared flags and
// records the flags that were set. Usage errors become *ArgumentError.
func (s *ArgSpec) parseFlags(ctx context.Context, args []string, into map[string]string) ([]string, error) {
	var positionals []string

	cmd := &cli.Command{
		Name:            ProgramName,
		Flags:           s.cliFlags(),
		HideHelp:        true,
		HideHelpCommand: true,
		Writer:          io.Discard,
		ErrWriter:       io.Discard,
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return newArgumentError("%s", err.Error())
		},
		Action: func(_ context.Context, c *cli.Command) error {
			positionals = c.Args().Slice()

			for _, f := range s.Flags {
				switch {
				case f.TakesValue && c.IsSet(f.Name):
					into[f.Name] = c.String(f.Name)
				case !f.TakesValue && c.Bool(f.Name):
					into[f.Name] = "true"
				}
			}

			return nil
		},
	}

	if err := cmd.Run(ctx, append([]string{ProgramName}, args...)); err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			return nil, argErr
		}

		return nil, newArgumentError("%s", err.Error())
	}

	return positionals, nil
}

func checkArity(expected []ArgMeta, got []string) error {
	variadic := len(expected) > 0 && expected[len(expected)-1].Variadic

	for i, a := range expected {
		if a.Required && i >= len(got) {
			return newArgumentError("missing required argument <%s>", a.Name)
		}
	}

	if !variadic && len(got) > len(expected) {
		return newArgumentError("too many arguments: expected at most %d, got %d", len(expected), len(got))
	}

	return nil
}

func (s *ArgSpec) action(name string) (ActionMeta, bool) {
	for _, a := range s.Actions {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}

	return ActionMeta{}, false
}

func (s *ArgSpec) actionList() string {
	names := make([]string, len(s.Actions))
	for i, a := range s.Actions {
		names[i] = a.Name
	}

	return strings.Join(names, "|")
}

// Usage renders a one-line usage string such as `file:size [--all] [path]`.
func (s *ArgSpec) Usage(name string) string {
	parts := []string{name}

	if s == nil {
		return name + " [args...]"
	}

	if len(s.Actions) > 0 {
		if s.DefaultAction != "" {
			parts = append(parts, "["+s.actionList()+"]")
		} else {
			parts = append(parts, "<"+s.actionList()+">")
		}
	}

	for _, f := range s.Flags {
		flag := "--" + f.Name
		if f.TakesValue {
			flag += " <value>"
		}

		parts = append(parts, "["+flag+"]")
	}

	if len(s.Actions) > 0 {
		if s.hasActionArgs() {
			parts = append(parts, "[args...]")
		}

		return strings.Join(parts, " ")
	}

	parts = append(parts, positionalUsage(s.Positionals)...)

	return strings.Join(parts, " ")
}

func (s *ArgSpec) hasActionArgs() bool {
	for _, a := range s.Actions {
		if len(a.Positionals) > 0 {
			return true
		}
	}

	return false
}

// ActionUsage renders the usage of a single action, e.g. `add <path>`.
func (a ActionMeta) Usage() string {
	return strings.Join(append([]string{a.Name}, positionalUsage(a.Positionals)...), " ")
}

func positionalUsage(ps []ArgMeta) []string {
	out := make([]string, 0, len(ps))

	for _, p := range ps {
		n := p.Name
		if p.Variadic {
			n += "..."
		}

		if p.Required {
			out = append(out, "<"+n+">")
		} else {
			out = append(out, "["+n+"]")
		}
	}

	return out
}

// ParsePort validates a TCP/UDP port number argument.
func ParsePort(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 || n > 65535 {
		return 0, newArgumentError("invalid port %q, expected 1-65535", s)
	}

	return uint32(n), nil
}
