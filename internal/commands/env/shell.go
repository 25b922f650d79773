// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package env

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
	"github.com/spf13/afero"
)

const tailLines = 5

func (e *shellEnv) runShell(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	fs := FsFactory()
	rc := e.rcFile(fs)

	switch inv.Parsed.Action {
	case "edit":
		return e.editRC(ctx, inv, c, rc)
	case "backup":
		dest, err := backupRC(fs, rc)
		if err != nil {
			return commands.Failf(1, "Failed to create backup of %s: %s", rc, err)
		}

		c.Success("Backup created: %s", dest)
	case "reload":
		if ok, _ := afero.Exists(fs, rc); !ok {
			return commands.Failf(1, "Configuration file %s does not exist", rc)
		}

		// A child process cannot change its parent shell.
		c.Info("Run this in your shell to apply %s:", filepath.Base(rc))
		c.Println("  source " + rc)
	case "add":
		line := strings.Join(inv.Parsed.Positionals, " ")
		if err := appendLine(fs, rc, line); err != nil {
			return commands.Failf(1, "Failed to add line to %s: %s", rc, err)
		}

		c.Success("Added line to %s: %s", rc, line)
		c.Info("Run 'source %s' to apply changes", rc)
	default:
		e.rcInfo(c, fs, rc)
	}

	return nil
}

func (e *shellEnv) rcInfo(c *console.Console, fs afero.Fs, rc string) {
	c.Info("Current shell: %s", e.shell)
	c.Info("Configuration file: %s", rc)

	info, err := fs.Stat(rc)
	if err != nil {
		c.Warning("Configuration file does not exist")
		return
	}

	c.Info("File size: %s", humanize.IBytes(uint64(info.Size())))

	content, err := afero.ReadFile(fs, rc)
	if err != nil {
		c.Warning("Could not read config file: %s", err)
		return
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return
	}

	start := max(0, len(lines)-tailLines)

	var body strings.Builder
	for i, l := range lines[start:] {
		if i > 0 {
			body.WriteByte('\n')
		}

		fmt.Fprintf(&body, "%4d  %s", start+i+1, l)
	}

	c.Panel(fmt.Sprintf("Last %d lines of %s", len(lines)-start, filepath.Base(rc)), body.String())
}

func (e *shellEnv) editRC(ctx context.Context, inv *commands.Invocation, c *console.Console, rc string) error {
	argv := strings.Fields(e.editor)
	if len(argv) == 0 {
		argv = []string{"nano"}
	}

	c.Info("Opening %s in %s", rc, argv[0])

	res := Runner.Run(ctx, procrun.Command{
		Path:   argv[0],
		Args:   append(argv[1:], rc),
		Stdin:  inv.Stdin,
		Stdout: inv.Stdout,
		Stderr: inv.Stderr,
	})
	if !res.OK() {
		return commands.Failf(1, "Failed to open editor %s", argv[0])
	}

	c.Success("Configuration file edited successfully")
	c.Info("Run 'source %s' to apply changes", rc)

	return nil
}
