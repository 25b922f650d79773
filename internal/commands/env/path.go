// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package env

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/spf13/afero"
)

func (e *shellEnv) runPath(_ context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	fs := FsFactory()

	switch inv.Parsed.Action {
	case "add":
		return e.addPath(c, fs, inv.Parsed.Arg(0))
	case "remove":
		return e.removePath(c, fs, inv.Parsed.Arg(0))
	case "clean":
		cleanPath(c, fs)
	default:
		showPath(c, fs)
	}

	return nil
}

func pathEntries() []string {
	return filepath.SplitList(os.Getenv("PATH"))
}

func showPath(c *console.Console, fs afero.Fs) {
	c.Info("Current PATH entries:")

	var rows [][]string

	for i, entry := range pathEntries() {
		if entry == "" {
			continue
		}

		mark := "✗"
		if ok, _ := afero.Exists(fs, entry); ok {
			mark = "✓"
		}

		rows = append(rows, []string{strconv.Itoa(i + 1), entry, mark})
	}

	c.Table("PATH Entries", []string{"INDEX", "PATH", "EXISTS"}, rows)
}

func (e *shellEnv) addPath(c *console.Console, fs afero.Fs, arg string) error {
	dir := e.expand(arg)

	info, err := fs.Stat(dir)
	switch {
	case err != nil:
		ok, err := c.Confirm("Path '"+dir+"' does not exist. Add anyway?", false)
		if err != nil {
			return commands.Failf(1, "PATH not changed: %s", err)
		}

		if !ok {
			c.Info("PATH not changed")
			return nil
		}
	case !info.IsDir():
		return commands.Failf(1, "'%s' is not a directory", dir)
	}

	rc := e.rcFile(fs)

	content, err := readRC(fs, rc)
	if err != nil {
		return commands.Failf(1, "Failed to read %s: %s", rc, err)
	}

	if strings.Contains(content, dir) {
		c.Warning("Path '%s' may already be in %s", dir, rc)

		ok, err := c.Confirm("Add anyway?", false)
		if err != nil || !ok {
			c.Info("PATH not changed")
			return nil
		}
	}

	if err := appendLine(fs, rc, e.pathLine(dir)); err != nil {
		return commands.Failf(1, "Failed to update %s: %s", rc, err)
	}

	c.Success("Added '%s' to PATH in %s", dir, rc)
	c.Info("Restart your shell or run 'source %s' to apply changes", rc)

	return nil
}

func (e *shellEnv) removePath(c *console.Console, fs afero.Fs, arg string) error {
	dir := e.expand(arg)
	rc := e.rcFile(fs)

	if ok, _ := afero.Exists(fs, rc); !ok {
		return commands.Failf(1, "Configuration file %s not found", rc)
	}

	removed, err := rewrite(fs, rc, func(line string) bool { return addsToPath(line, dir) })
	if err != nil {
		return commands.Failf(1, "Failed to update %s: %s", rc, err)
	}

	if removed == 0 {
		c.Warning("No PATH entries found for '%s' in %s", dir, rc)
		return nil
	}

	c.Success("Removed %d PATH entries for '%s' from %s", removed, dir, rc)
	c.Info("Restart your shell to apply changes")

	return nil
}

func cleanPath(c *console.Console, fs afero.Fs) {
	c.Info("Analyzing PATH for issues...")

	var (
		seen       = map[string]bool{}
		duplicates []string
		missing    []string
	)

	for _, entry := range pathEntries() {
		if entry == "" {
			continue
		}

		if seen[entry] {
			duplicates = append(duplicates, entry)
		} else {
			seen[entry] = true

			if ok, _ := afero.Exists(fs, entry); !ok {
				missing = append(missing, entry)
			}
		}
	}

	if len(duplicates) > 0 {
		c.Warning("Duplicate PATH entries:")

		for _, d := range duplicates {
			c.Println("  • " + d)
		}
	}

	if len(missing) > 0 {
		c.Warning("Non-existent PATH entries:")

		for _, m := range missing {
			c.Println("  • " + m)
		}
	}

	if len(duplicates) == 0 && len(missing) == 0 {
		c.Success("PATH looks clean - no duplicates or non-existent entries found")
	}
}
