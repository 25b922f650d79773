// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"context"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

func runSync(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	c.Info("Syncing with remote...")

	res := git(ctx, "branch", "--show-current")
	if !res.OK() {
		return commands.Fail(exitNotRepo, "not in a git repository")
	}

	branch := res.Output()
	if branch == "" {
		return commands.Fail(exitGitError, "HEAD is detached, check out a branch first")
	}

	c.Println("Current branch: " + branch)
	c.Info("Fetching latest changes...")

	if res := git(ctx, "fetch", "origin"); !res.OK() {
		return failure("fetching from origin", res)
	}

	if res := git(ctx, "rev-parse", "--verify", "origin/"+branch); !res.OK() {
		c.Warning("Remote branch origin/%s does not exist", branch)
		return nil
	}

	c.Info("Pulling changes...")

	if res := git(ctx, "pull", "origin", branch); !res.OK() {
		return failure("pulling origin/"+branch, res)
	}

	inv.Summarize("Successfully synced %s with origin", branch)

	return nil
}
