// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tasks turns the entries of a YAML task manifest into commands that
// run shell snippets.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
	"github.com/spf13/afero"
)

// SourceName identifies this source in discovery errors.
const SourceName = "tasks"

// DefaultCategory is used for tasks that name no category.
const DefaultCategory commands.Category = "tasks"

const (
	goosWindows          = "windows"
	commandSwitchWindows = "/C"
	commandSwitchUnix    = "-c"
	binSh                = "/bin/sh"
	cmdExe               = "cmd.exe"
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Runner executes task commands. Tests replace it with a script.
var Runner procrun.Runner = procrun.OS{}

// Source returns a source that reads the manifest at path when enumerated.
// Relative task directories are resolved against the manifest's directory.
func Source(path string) commands.Source {
	return commands.NewSource(SourceName, func(ctx context.Context) ([]commands.Descriptor, error) {
		m, err := LoadManifest(FsFactory(), path)
		if err != nil {
			return nil, err
		}

		ctxlog.Debug(ctx, "task manifest loaded", "path", path, "tasks", len(m.Tasks))

		base := filepath.Dir(path)
		ds := make([]commands.Descriptor, 0, len(m.Tasks))

		for _, t := range m.Tasks {
			ds = append(ds, t.Descriptor(base))
		}

		return ds, nil
	})
}

// Descriptor converts the task into a command descriptor.
func (t Task) Descriptor(base string) commands.Descriptor {
	cat := commands.Category(t.Category)
	if cat == "" {
		cat = DefaultCategory
	}

	summary := t.Summary
	if summary == "" {
		summary = t.Run
	}

	return commands.Descriptor{
		Name:     t.Name,
		Category: cat,
		Summary:  summary,
		Help:     t.Help,
		Args:     t.argSpec(),
		Handler:  &taskHandler{task: t, dir: t.workDir(base)},
	}
}

// argSpec passes every token through, bounded by min_args and max_args.
func (t Task) argSpec() *commands.ArgSpec {
	spec := &commands.ArgSpec{Passthrough: true}

	for i := range t.MinArgs {
		spec.Positionals = append(spec.Positionals, commands.ArgMeta{Name: fmt.Sprintf("arg%d", i+1), Required: true})
	}

	if t.MaxArgs == nil {
		spec.Positionals = append(spec.Positionals, commands.ArgMeta{Name: "args", Variadic: true})
		return spec
	}

	for i := t.MinArgs; i < *t.MaxArgs; i++ {
		spec.Positionals = append(spec.Positionals, commands.ArgMeta{Name: fmt.Sprintf("arg%d", i+1)})
	}

	return spec
}

func (t Task) workDir(base string) string {
	switch {
	case t.Dir == "":
		return ""
	case filepath.IsAbs(t.Dir):
		return t.Dir
	default:
		return filepath.Join(base, t.Dir)
	}
}

// ShellCommand builds the command line for run with args appended. On Unix
// the args are passed as positional parameters so `"$@"` quoting is preserved.
func ShellCommand(run string, args []string) procrun.Command {
	if runtime.GOOS == goosWindows {
		return procrun.Command{Path: cmdExe, Args: append([]string{commandSwitchWindows, run}, args...)}
	}

	return procrun.Command{
		Path: binSh,
		Args: append([]string{commandSwitchUnix, run + ` "$@"`, commands.ProgramName}, args...),
	}
}

type taskHandler struct {
	task Task
	dir  string
}

// Run implements commands.Handler.
func (h *taskHandler) Run(ctx context.Context, inv *commands.Invocation) error {
	cmd := ShellCommand(h.task.Run, inv.Parsed.Positionals)
	cmd.Dir = h.dir
	cmd.Env = h.task.Env
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	res := Runner.Run(ctx, cmd)

	switch {
	case errors.Is(res.Err, procrun.ErrCancelled):
		return res.Err
	case errors.Is(res.Err, procrun.ErrCouldNotStartProcess):
		return commands.Failf(1, "task %q could not start: %s", h.task.Name, res.Err)
	}

	ok := []int{0}
	if len(h.task.SuccessExitCodes) > 0 {
		ok = h.task.SuccessExitCodes
	}

	if !slices.Contains(ok, res.ExitCode) {
		return commands.Failf(res.ExitCode, "task %q exited with code %d", h.task.Name, res.ExitCode)
	}

	if res.Err != nil {
		ctxlog.Warn(ctx, "task output truncated", "task", h.task.Name, "error", res.Err)
	}

	inv.Summarize("task %q finished", h.task.Name)

	return nil
}
