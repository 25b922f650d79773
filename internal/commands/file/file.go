// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package file provides commands that inspect and copy directories.
package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/spf13/afero"
)

// SourceName identifies this source in discovery errors.
const SourceName = "file"

// Category is the listing category of every command in this package.
const Category commands.Category = "file"

// Source returns the file command source.
func Source() commands.Source {
	return commands.Static(SourceName, sizeDescriptor(), backupDescriptor())
}

// treeSize sums the sizes of every regular file under path. Unreadable entries
// are skipped.
func treeSize(afs afero.Fs, path string) int64 {
	var total int64

	_ = afero.Walk(afs, path, func(_ string, info fs.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}

		if info.Mode().IsRegular() {
			total += info.Size()
		}

		return nil
	})

	return total
}

func absPath(p string) (string, error) {
	if p == "" {
		p = "."
	}

	return filepath.Abs(p)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// statFailure turns a Stat error into a handled failure.
func statFailure(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return commands.Failf(1, "path %q does not exist", path)
	case errors.Is(err, os.ErrPermission):
		return commands.Failf(1, "permission denied accessing %q", path)
	default:
		return commands.Failf(1, "cannot access %q: %s", path, err)
	}
}
