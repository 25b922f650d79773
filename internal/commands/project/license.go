// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
	"github.com/spf13/afero"
)

// LicenseFile is the name of the file written by project:license.
const LicenseFile = "LICENSE"

func runLicense(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	fs := FsFactory()

	l, err := chooseLicense(c, inv.Parsed.Arg(0))
	if err != nil {
		return promptFailure(err)
	}

	exists, err := afero.Exists(fs, LicenseFile)
	if err != nil {
		return commands.Failf(1, "checking %s: %s", LicenseFile, err)
	}

	if exists {
		ok, err := c.Confirm(LicenseFile+" file already exists. Overwrite?", false)
		if err != nil {
			return promptFailure(err)
		}

		if !ok {
			c.Info("License creation cancelled")
			return nil
		}
	}

	author, err := authorName(ctx, c)
	if err != nil {
		return promptFailure(err)
	}

	content, err := Render(l.ID, TemplateData{Year: Now().Year(), Author: author})
	if err != nil {
		return err
	}

	if err := afero.WriteFile(fs, LicenseFile, content, 0o644); err != nil {
		return commands.Failf(1, "Failed to create license file: %s", err)
	}

	c.Success("Created %s in %s file", l.Name, LicenseFile)
	inv.Summarize("Wrote %s (%s)", LicenseFile, l.ID)

	return nil
}

// chooseLicense returns the license named by id, or asks for one when id is
// empty or unknown.
func chooseLicense(c *console.Console, id string) (License, error) {
	if l, ok := Lookup(id); ok {
		return l, nil
	}

	if id != "" {
		c.Warning("Unknown license '%s'", id)
	}

	rows := make([][]string, len(Licenses))
	ids := make([]string, len(Licenses))

	for i, l := range Licenses {
		rows[i] = []string{l.ID, l.Name}
		ids[i] = l.ID
	}

	c.Table("Available licenses", []string{"IDENTIFIER", "NAME"}, rows)

	idx, err := c.Choose("Select a license", ids, 0)
	if err != nil {
		return License{}, err
	}

	return Licenses[idx], nil
}

// authorName reads git's user.name and falls back to asking.
func authorName(ctx context.Context, c *console.Console) (string, error) {
	res := Runner.Run(ctx, procrun.Command{Path: "git", Args: []string{"config", "user.name"}})
	if res.OK() && res.Output() != "" {
		return res.Output(), nil
	}

	ctxlog.Debug(ctx, "git user.name unavailable", "exit", res.ExitCode, "error", res.Err)

	return c.Ask("Copyright holder", os.Getenv("USER"))
}

func promptFailure(err error) error {
	if errors.Is(err, console.ErrAborted) {
		return commands.Fail(1, "License creation aborted")
	}

	return commands.Failf(1, "License creation failed: %s", err)
}
