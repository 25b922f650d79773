// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package file

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
	"github.com/spf13/afero"
)

// BackupTimeFormat is appended to backup directory names.
const BackupTimeFormat = "20060102_150405"

func backupDescriptor() commands.Descriptor {
	return commands.Descriptor{
		Name:     "backup",
		Category: Category,
		Summary:  "Create a timestamped backup of a directory",
		Help:     "Copies the directory next to itself as <name>_backup_<YYYYmmdd_HHMMSS>, or <backup_name>_<YYYYmmdd_HHMMSS> when a name is given.",
		Args: &commands.ArgSpec{
			Positionals: []commands.ArgMeta{
				{Name: "source_directory", Description: "Directory to back up", Required: true},
				{Name: "backup_name", Description: "Name prefix for the copy"},
			},
		},
		Handler: commands.HandlerFunc(runBackup),
	}
}

// BackupName returns the directory name a backup of source gets at t.
func BackupName(source, name string, t time.Time) string {
	if name == "" {
		return fmt.Sprintf("%s_backup_%s", filepath.Base(source), t.Format(BackupTimeFormat))
	}

	return fmt.Sprintf("%s_%s", name, t.Format(BackupTimeFormat))
}

func runBackup(ctx context.Context, inv *commands.Invocation) error {
	afs := FsFactory()
	c := console.For(inv)
	source := inv.Parsed.Arg(0)

	src, err := absPath(source)
	if err != nil {
		return commands.Failf(1, "cannot resolve %q: %s", source, err)
	}

	info, err := afs.Stat(src)
	if err != nil {
		return statFailure(source, err)
	}

	if !info.IsDir() {
		return commands.Failf(1, "%q is not a directory", source)
	}

	if filepath.Dir(src) == src {
		return commands.Failf(1, "cannot back up the filesystem root")
	}

	dest := filepath.Join(filepath.Dir(src), BackupName(src, inv.Parsed.Arg(1), Now()))

	if exists, _ := afero.Exists(afs, dest); exists {
		return commands.Failf(1, "backup target %q already exists", dest)
	}

	c.Info("Creating backup: %s", dest)

	if err := copyTree(ctx, afs, src, dest); err != nil {
		_ = afs.RemoveAll(dest)
		return commands.Failf(1, "creating backup: %s", err)
	}

	size := humanize.IBytes(uint64(treeSize(afs, dest)))

	c.Success("Backup created successfully")
	c.Println("Location: " + dest)
	c.Println("Size: " + size)
	inv.Summarize("backed up %s to %s", source, dest)

	return nil
}

// copyTree copies the directory src to dest, which must not exist.
func copyTree(ctx context.Context, afs afero.Fs, src, dest string) error {
	return afero.Walk(afs, src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dest, rel)

		switch {
		case info.IsDir():
			return afs.MkdirAll(target, info.Mode().Perm())
		case info.Mode().IsRegular():
			return copyFile(afs, path, target, info.Mode().Perm())
		default:
			ctxlog.Debug(ctx, "skipping non-regular file", "path", path)
			return nil
		}
	})
}

func copyFile(afs afero.Fs, from, to string, perm fs.FileMode) error {
	in, err := afs.Open(from)
	if err != nil {
		return err
	}

	defer in.Close() //nolint:errcheck

	out, err := afs.OpenFile(to, osCreateFlags, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
