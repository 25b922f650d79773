// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package file

import (
	"cmp"
	"context"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/spf13/afero"
)

func sizeDescriptor() commands.Descriptor {
	return commands.Descriptor{
		Name:     "size",
		Category: Category,
		Summary:  "Show directory sizes",
		Help:     "Lists the immediate children of a directory sorted by total size, largest first. Hidden entries are skipped unless --all is given.",
		Args: &commands.ArgSpec{
			Positionals: []commands.ArgMeta{{Name: "path", Description: "Directory or file to measure, defaults to the current directory"}},
			Flags:       []commands.FlagMeta{{Name: "all", Short: "a", Description: "Include hidden entries"}},
		},
		Handler: commands.HandlerFunc(runSize),
	}
}

type sizedEntry struct {
	name  string
	size  int64
	isDir bool
}

func runSize(_ context.Context, inv *commands.Invocation) error {
	afs := FsFactory()
	c := console.For(inv)

	target := inv.Parsed.Arg(0)
	if target == "" {
		target = "."
	}

	path, err := absPath(target)
	if err != nil {
		return commands.Failf(1, "cannot resolve %q: %s", target, err)
	}

	info, err := afs.Stat(path)
	if err != nil {
		return statFailure(target, err)
	}

	if !info.IsDir() {
		c.Println("File size: " + humanize.IBytes(uint64(info.Size())))
		inv.Summarize("%s is %s", target, humanize.IBytes(uint64(info.Size())))

		return nil
	}

	c.Info("Analyzing directory: %s", path)

	children, err := afero.ReadDir(afs, path)
	if err != nil {
		return statFailure(target, err)
	}

	showHidden := inv.Parsed.Bool("all")
	entries := make([]sizedEntry, 0, len(children))

	var total int64

	for _, ch := range children {
		if isHidden(ch.Name()) && !showHidden {
			continue
		}

		e := sizedEntry{name: ch.Name(), isDir: ch.IsDir(), size: ch.Size()}
		if e.isDir {
			e.size = treeSize(afs, filepath.Join(path, ch.Name()))
		}

		total += e.size
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		c.Warning("No items found in directory")
		return nil
	}

	slices.SortFunc(entries, func(a, b sizedEntry) int {
		return cmp.Or(cmp.Compare(b.size, a.size), cmp.Compare(a.name, b.name))
	})

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		kind := "File"
		if e.isDir {
			kind = "Directory"
		}

		rows = append(rows, []string{e.name, humanize.IBytes(uint64(e.size)), kind})
	}

	c.Table("Directory sizes in "+target, []string{"NAME", "SIZE", "TYPE"}, rows)
	inv.Summarize("%d entries, %s in total", len(entries), humanize.IBytes(uint64(total)))

	return nil
}
