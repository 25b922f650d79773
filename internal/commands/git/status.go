// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/plasma/internal/color"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

// Change is one line of `git status --porcelain`.
type Change struct {
	Code string
	Path string
}

// Kind describes the change for humans.
func (c Change) Kind() string {
	switch {
	case c.Code == "??":
		return "Untracked"
	case strings.HasPrefix(c.Code, "M") || strings.HasSuffix(c.Code, "M"):
		return "Modified"
	case strings.HasPrefix(c.Code, "A"):
		return "Added"
	case strings.HasPrefix(c.Code, "D") || strings.HasSuffix(c.Code, "D"):
		return "Deleted"
	case strings.HasPrefix(c.Code, "R"):
		return "Renamed"
	default:
		return strings.TrimSpace(c.Code)
	}
}

func (c Change) colour() color.Code {
	switch c.Kind() {
	case "Modified":
		return color.FgYellow
	case "Added":
		return color.FgGreen
	case "Untracked", "Deleted":
		return color.FgRed
	default:
		return color.FgBlue
	}
}

// ParsePorcelain parses `git status --porcelain` output.
func ParsePorcelain(out string) []Change {
	var changes []Change

	for line := range strings.SplitSeq(out, "\n") {
		if len(line) < 4 {
			continue
		}

		changes = append(changes, Change{Code: line[:2], Path: line[3:]})
	}

	return changes
}

func runStatus(ctx context.Context, inv *commands.Invocation) error {
	if err := requireRepo(ctx); err != nil {
		return err
	}

	c := console.For(inv)
	c.Info("Git Status Overview")

	if res := git(ctx, "branch", "-vv"); res.OK() {
		c.Println("\nBranches:")
		c.Println(strings.TrimRight(string(res.Stdout), "\n"))
	}

	res := git(ctx, "status", "--porcelain")
	if !res.OK() {
		return failure("git status", res)
	}

	changes := ParsePorcelain(string(res.Stdout))
	if len(changes) == 0 {
		c.Success("Working directory clean")
	} else {
		c.Println("\nChanges:")

		for _, ch := range changes {
			c.Println(color.Colorize(fmt.Sprintf("  %-10s %s", ch.Kind()+":", ch.Path), ch.colour()))
		}
	}

	if res := git(ctx, "log", "--oneline", "-5"); res.OK() && res.Output() != "" {
		c.Println("\nRecent commits:")
		c.Println(res.Output())
	}

	inv.Summarize("%d changed file(s)", len(changes))

	return nil
}
