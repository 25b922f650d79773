// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package project provides commands that scaffold project files.
package project

import (
	"time"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
	"github.com/spf13/afero"
)

// SourceName identifies this source in discovery errors.
const SourceName = "project"

// Category is the listing category of every command in this package.
const Category commands.Category = "project"

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Now returns the time used for the copyright year.
var Now = time.Now

// Runner executes git to look up the author. Tests replace it with a script.
var Runner procrun.Runner = procrun.OS{}

// Source returns the project command source.
func Source() commands.Source {
	return commands.Static(SourceName,
		commands.Descriptor{
			Name:     "license",
			Category: Category,
			Summary:  "Create a license file for your project",
			Help: "Writes LICENSE in the current directory. The copyright holder is taken from " +
				"`git config user.name` when available. Without an identifier the license is chosen interactively.",
			Args: &commands.ArgSpec{
				Positionals: []commands.ArgMeta{{Name: "license_identifier", Description: "One of " + identifiers()}},
			},
			Handler: commands.HandlerFunc(runLicense),
		},
	)
}
