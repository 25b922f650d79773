// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package env provides commands that inspect the environment and edit the
// user's shell configuration file.
package env

import (
	"os"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/config"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
	"github.com/spf13/afero"
)

// SourceName identifies this source in discovery errors.
const SourceName = "env"

// Category is the listing category of every command in this package.
const Category commands.Category = "env"

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Runner starts the editor. Tests replace it with a script.
var Runner procrun.Runner = procrun.OS{}

// shellEnv is the part of the configuration the env commands depend on.
type shellEnv struct {
	shell  string
	home   string
	editor string
}

func newShellEnv(cfg config.Config) *shellEnv {
	e := &shellEnv{shell: cfg.ShellName(), home: cfg.Home, editor: cfg.Editor}

	if e.home == "" {
		e.home, _ = os.UserHomeDir()
	}

	return e
}

// Source returns the env command source.
func Source(cfg config.Config) commands.Source {
	e := newShellEnv(cfg)

	return commands.Static(SourceName,
		commands.Descriptor{
			Name:     "path",
			Category: Category,
			Summary:  "Manage PATH environment variable",
			Help:     "Changes are written to the shell configuration file and apply to new shells.",
			Args: &commands.ArgSpec{
				DefaultAction: "show",
				Actions: []commands.ActionMeta{
					{Name: "show", Description: "Show current PATH entries"},
					{Name: "add", Description: "Add directory to PATH", Positionals: []commands.ArgMeta{{Name: "path", Required: true}}},
					{Name: "remove", Description: "Remove directory from PATH", Positionals: []commands.ArgMeta{{Name: "path", Required: true}}},
					{Name: "clean", Description: "Analyze PATH for issues"},
				},
			},
			Handler: commands.HandlerFunc(e.runPath),
		},
		commands.Descriptor{
			Name:     "shell",
			Category: Category,
			Summary:  "Manage shell configuration files",
			Args: &commands.ArgSpec{
				DefaultAction: "info",
				Actions: []commands.ActionMeta{
					{Name: "info", Description: "Show shell config info"},
					{Name: "edit", Description: "Edit config in default editor"},
					{Name: "backup", Description: "Create backup of config"},
					{Name: "reload", Description: "Show how to reload the configuration"},
					{Name: "add", Description: "Add line to config file", Positionals: []commands.ArgMeta{{Name: "text", Required: true, Variadic: true}}},
				},
			},
			Handler: commands.HandlerFunc(e.runShell),
		},
		commands.Descriptor{
			Name:     "vars",
			Category: Category,
			Summary:  "Manage environment variables",
			Help:     "set and unset only affect this process; use export to persist a variable.",
			Args: &commands.ArgSpec{
				DefaultAction: "show",
				Actions: []commands.ActionMeta{
					{Name: "show", Description: "Show environment variables", Positionals: []commands.ArgMeta{{Name: "filter"}}},
					{Name: "get", Description: "Get specific variable", Positionals: []commands.ArgMeta{{Name: "name", Required: true}}},
					{Name: "set", Description: "Set variable (this process only)", Positionals: []commands.ArgMeta{
						{Name: "name", Required: true}, {Name: "value", Required: true, Variadic: true},
					}},
					{Name: "unset", Description: "Unset variable (this process only)", Positionals: []commands.ArgMeta{{Name: "name", Required: true}}},
					{Name: "export", Description: "Export to shell config", Positionals: []commands.ArgMeta{
						{Name: "name", Required: true}, {Name: "value", Required: true, Variadic: true},
					}},
					{Name: "clear", Description: "Remove custom exports from config"},
				},
			},
			Handler: commands.HandlerFunc(e.runVars),
		},
	)
}
