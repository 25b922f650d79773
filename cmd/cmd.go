// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
	"github.com/matt-FFFFFF/plasma/internal/dispatch"
	"github.com/urfave/cli/v3"
)

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)

// App is what the root command drives. Load fills the catalog the dispatcher
// reads from; ExitCode holds the process exit code once Run returns.
type App struct {
	Dispatcher *dispatch.Dispatcher
	Load       func(ctx context.Context) error
	Stdout     io.Writer
	Stderr     io.Writer
	ExitCode   int
}

// New builds the root command for app.
//
// Flag parsing is skipped because every argument after the program name belongs to
// the dispatched command; only a leading help or version flag is handled here.
func New(app *App) *cli.Command {
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}

	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}

	return &cli.Command{
		Name:    commands.ProgramName,
		Version: Version + " (" + Commit + ")",
		Usage:   "run categorized developer commands",
		UsageText: commands.ProgramName + " [list [category]]\n" +
			commands.ProgramName + " <command> [args...]\n" +
			commands.ProgramName + " <category>:<command> [args...]",
		Description: `Plasma is a task runner for everyday developer chores. Commands are grouped
into categories (file, git, server, ip, project, env) and may be extended with
tasks declared in a YAML manifest. Run without arguments to list every command.`,
		Writer:          app.Stdout,
		ErrWriter:       app.Stderr,
		HideHelpCommand: true,
		SkipFlagParsing: true,
		Copyright:       "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Action: app.action,
	}
}

func (app *App) action(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()

	if len(args) == 1 {
		switch args[0] {
		case "-h", "--help":
			app.ExitCode = dispatch.ExitSuccess
			return cli.ShowAppHelp(c)
		case "-v", "--version":
			app.ExitCode = dispatch.ExitSuccess
			cli.ShowVersion(c)

			return nil
		}
	}

	if app.Load != nil {
		if err := app.Load(ctx); err != nil {
			ctxlog.Debug(ctx, "command discovery failed", "error", err)
			console.New(app.Stdout, app.Stderr, nil).Error("%s", err.Error())

			app.ExitCode = dispatch.ExitConfig

			return nil
		}
	}

	res := app.Dispatcher.Dispatch(ctx, args)
	app.Dispatcher.Report(res)

	ctxlog.Debug(ctx, "dispatch finished", "status", string(res.Status), "exit_code", res.ExitCode)

	app.ExitCode = res.ExitCode

	return nil
}
