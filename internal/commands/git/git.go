// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git provides commands that wrap common git workflows.
package git

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
)

// SourceName identifies this source in discovery errors.
const SourceName = "git"

// Category is the listing category of every command in this package.
const Category commands.Category = "git"

// Runner executes git. Tests replace it with a script.
var Runner procrun.Runner = procrun.OS{}

// Exit codes of handled failures.
const (
	exitNotRepo  = 2
	exitGitError = 3
)

// Source returns the git command source.
func Source() commands.Source {
	return commands.Static(SourceName,
		commands.Descriptor{
			Name:     "status",
			Category: Category,
			Summary:  "Enhanced git status with branch info",
			Help:     "Shows local branches with their upstreams, the working tree changes and the five most recent commits.",
			Args:     &commands.ArgSpec{},
			Handler:  commands.HandlerFunc(runStatus),
		},
		commands.Descriptor{
			Name:     "sync",
			Category: Category,
			Summary:  "Sync current branch with remote",
			Help:     "Fetches origin and pulls the current branch when origin has it.",
			Args:     &commands.ArgSpec{},
			Handler:  commands.HandlerFunc(runSync),
		},
		commands.Descriptor{
			Name:     "undo",
			Category: Category,
			Summary:  "Undo the last commit (keep changes)",
			Help:     "Soft-resets HEAD by one commit. When the repository has a single commit, HEAD is deleted and the files are kept.",
			Args: &commands.ArgSpec{
				Flags: []commands.FlagMeta{{Name: "yes", Short: "y", Description: "Do not ask for confirmation"}},
			},
			Handler: commands.HandlerFunc(runUndo),
		},
	)
}

// git runs git with args and no streaming.
func git(ctx context.Context, args ...string) procrun.Result {
	return Runner.Run(ctx, procrun.Command{Path: "git", Args: args})
}

// failure converts a failed git run into a handled failure.
func failure(what string, res procrun.Result) error {
	detail := res.ErrorOutput()
	if res.Err != nil {
		detail = res.Err.Error()
	}

	if detail == "" {
		detail = fmt.Sprintf("exit status %d", res.ExitCode)
	}

	return commands.Failf(exitGitError, "%s: %s", what, detail)
}

func requireRepo(ctx context.Context) error {
	if res := git(ctx, "rev-parse", "--git-dir"); !res.OK() {
		return commands.Fail(exitNotRepo, "not in a git repository")
	}

	return nil
}
