// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package env

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/spf13/afero"
)

const maxValueWidth = 100

// protectedVars are never removed by `vars clear`.
var protectedVars = []string{"PATH", "SHELL", "HOME", "USER"}

func (e *shellEnv) runVars(_ context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	p := inv.Parsed

	switch p.Action {
	case "get":
		v, ok := os.LookupEnv(p.Arg(0))
		if !ok {
			return commands.Failf(1, "Environment variable '%s' is not set", p.Arg(0))
		}

		c.Println(p.Arg(0) + " = " + v)
	case "set":
		value := strings.Join(p.Positionals[1:], " ")
		if err := os.Setenv(p.Arg(0), value); err != nil {
			return commands.Failf(1, "Failed to set %s: %s", p.Arg(0), err)
		}

		c.Success("Set %s = %s", p.Arg(0), value)
		c.Warning("This change only lasts for this process")
		c.Info("To make it permanent, use: plasma env:vars export %s %s", p.Arg(0), value)
	case "unset":
		if _, ok := os.LookupEnv(p.Arg(0)); !ok {
			c.Warning("Environment variable '%s' is not set", p.Arg(0))
			return nil
		}

		_ = os.Unsetenv(p.Arg(0))

		c.Success("Unset environment variable '%s'", p.Arg(0))
		c.Warning("This change only lasts for this process")
	case "export":
		return e.exportVar(c, FsFactory(), p.Arg(0), strings.Join(p.Positionals[1:], " "))
	case "clear":
		return e.clearVars(c, FsFactory())
	default:
		showVars(c, p.Arg(0))
	}

	return nil
}

func showVars(c *console.Console, filter string) {
	var rows [][]string

	environ := os.Environ()
	slices.Sort(environ)

	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		if filter != "" && !strings.Contains(strings.ToLower(k), strings.ToLower(filter)) {
			continue
		}

		if len(v) > maxValueWidth {
			v = v[:maxValueWidth-3] + "..."
		}

		rows = append(rows, []string{k, v})
	}

	title := "Environment Variables"
	if filter != "" {
		title += fmt.Sprintf(" (filtered by: %s)", filter)
	}

	c.Table(title, []string{"VARIABLE", "VALUE"}, rows)
	c.Println(fmt.Sprintf("Total: %d variables", len(rows)))
}

func (e *shellEnv) exportVar(c *console.Console, fs afero.Fs, name, value string) error {
	rc := e.rcFile(fs)

	content, err := readRC(fs, rc)
	if err != nil {
		return commands.Failf(1, "Failed to read %s: %s", rc, err)
	}

	if strings.Contains(content, "export "+name+"=") || strings.Contains(content, "set -gx "+name+" ") {
		c.Warning("Variable '%s' may already be exported in %s", name, rc)

		ok, err := c.Confirm("Add anyway?", false)
		if err != nil || !ok {
			c.Info("Nothing exported")
			return nil
		}
	}

	if err := appendLine(fs, rc, e.exportLine(name, value)); err != nil {
		return commands.Failf(1, "Failed to update %s: %s", rc, err)
	}

	c.Success("Exported %s to %s", name, rc)
	c.Info("Restart your shell or run 'source %s' to apply changes", rc)

	return nil
}

func (e *shellEnv) clearVars(c *console.Console, fs afero.Fs) error {
	rc := e.rcFile(fs)

	if ok, _ := afero.Exists(fs, rc); !ok {
		return commands.Failf(1, "Configuration file %s not found", rc)
	}

	c.Warning("This will remove all custom export lines from %s", rc)

	ok, err := c.Confirm("Are you sure you want to continue?", false)
	if err != nil || !ok {
		c.Info("Nothing removed")
		return nil
	}

	backup, err := backupRC(fs, rc)
	if err != nil {
		return commands.Failf(1, "Failed to create backup of %s: %s", rc, err)
	}

	removed, err := rewrite(fs, rc, isCustomExport)
	if err != nil {
		return commands.Failf(1, "Failed to update %s: %s", rc, err)
	}

	if removed == 0 {
		_ = fs.Remove(backup)

		c.Info("No custom export statements found to remove")

		return nil
	}

	c.Success("Removed %d export statements from %s", removed, rc)
	c.Info("Backup created: %s", backup)

	return nil
}

// isCustomExport reports whether line assigns a non-protected variable with
// `export NAME=...` or `set -gx NAME ...`.
func isCustomExport(line string) bool {
	line = strings.TrimSpace(line)

	var name string

	if rest, ok := strings.CutPrefix(line, "export "); ok {
		n, _, found := strings.Cut(rest, "=")
		if !found {
			return false
		}

		name = strings.TrimSpace(n)
	} else if rest, ok := strings.CutPrefix(line, "set -gx "); ok {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return false
		}

		name = fields[0]
	} else {
		return false
	}

	return name != "" && !slices.Contains(protectedVars, name)
}
