// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"context"
	"strconv"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

func runUndo(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	c.Info("Undoing last commit (keeping changes)...")

	if err := requireRepo(ctx); err != nil {
		return err
	}

	last := git(ctx, "log", "--oneline", "-1")
	if !last.OK() || last.Output() == "" {
		return commands.Fail(exitGitError, "no commits found in repository")
	}

	count := git(ctx, "rev-list", "--count", "HEAD")
	if !count.OK() {
		return failure("unable to check commit history", count)
	}

	n, err := strconv.Atoi(count.Output())
	if err != nil {
		return commands.Failf(exitGitError, "unexpected commit count %q", count.Output())
	}

	c.Println("Last commit: " + last.Output())

	question, args, done := "Undo this commit?", []string{"reset", "--soft", "HEAD~1"}, "Last commit undone (changes preserved)"
	if n == 1 {
		c.Warning("This is the only commit in the repository")

		question = "Delete the entire commit history and keep files?"
		args = []string{"update-ref", "-d", "HEAD"}
		done = "Repository reset to initial state (files preserved)"
	}

	if !inv.Parsed.Bool("yes") {
		ok, err := c.Confirm(question, false)
		if err != nil {
			return commands.Failf(1, "confirmation: %s", err)
		}

		if !ok {
			c.Warning("Cancelled")
			return nil
		}
	}

	if res := git(ctx, args...); !res.OK() {
		return failure("failed to undo commit", res)
	}

	inv.Summarize("%s", done)

	return nil
}
