// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package file

import (
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/plasma/internal/commands/commandtest"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	return fs
}

func TestSizeDirectory(t *testing.T) {
	memFs(t, map[string]string{
		"/proj/big/a.bin":    strings.Repeat("x", 2048),
		"/proj/big/sub/b":    strings.Repeat("x", 1024),
		"/proj/small.txt":    "hello",
		"/proj/.git/objects": strings.Repeat("x", 9000),
	})

	tests := []struct {
		name    string
		args    []string
		order   []string
		absent  []string
		summary string
	}{
		{
			name:    "hidden skipped",
			args:    []string{"/proj"},
			order:   []string{"big", "small.txt"},
			absent:  []string{".git"},
			summary: "2 entries, 3.0 KiB in total",
		},
		{
			name:  "all",
			args:  []string{"--all", "/proj"},
			order: []string{".git", "big", "small.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := commandtest.Descriptor(t, Source(), "size")
			out := commandtest.Run(t, d, "", tt.args...)
			require.NoError(t, out.Err)

			assert.Contains(t, out.Stdout, "Directory sizes in /proj")
			assert.Contains(t, out.Stdout, "3.0 KiB")
			assert.Contains(t, out.Stdout, "Directory")

			last := -1
			for _, name := range tt.order {
				idx := strings.Index(out.Stdout, name)
				require.GreaterOrEqual(t, idx, 0, name)
				assert.Greater(t, idx, last, "%s out of order", name)
				last = idx
			}

			for _, name := range tt.absent {
				assert.NotContains(t, out.Stdout, name)
			}

			if tt.summary != "" {
				assert.Equal(t, tt.summary, out.Summary)
			}
		})
	}
}

func TestSizeFileAndErrors(t *testing.T) {
	memFs(t, map[string]string{"/proj/small.txt": "hello"})
	d := commandtest.Descriptor(t, Source(), "size")

	out := commandtest.Run(t, d, "", "/proj/small.txt")
	require.NoError(t, out.Err)
	assert.Contains(t, out.Stdout, "File size: 5 B")

	out = commandtest.Run(t, d, "", "/missing")
	assert.Equal(t, 1, commandtest.FailureCode(out.Err))
	assert.Contains(t, out.Err.Error(), "does not exist")
}

func TestSizeEmptyDirectory(t *testing.T) {
	fs := memFs(t, nil)
	require.NoError(t, fs.MkdirAll("/empty/.hidden", 0o755))

	out := commandtest.Run(t, commandtest.Descriptor(t, Source(), "size"), "", "/empty")
	require.NoError(t, out.Err)
	assert.Contains(t, out.Stdout, "No items found")
}

func TestBackup(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	stubs := gostub.StubFunc(&Now, fixed)
	defer stubs.Reset()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default name", args: []string{"/work/site"}, want: "/work/site_backup_20250314_150926"},
		{name: "custom name", args: []string{"/work/site", "before-upgrade"}, want: "/work/before-upgrade_20250314_150926"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memFs(t, map[string]string{
				"/work/site/index.html":     "<html/>",
				"/work/site/css/style.css":  "body{}",
				"/work/site/.env":           "SECRET=1",
				"/work/other/untouched.txt": "x",
			})

			out := commandtest.Run(t, commandtest.Descriptor(t, Source(), "backup"), "", tt.args...)
			require.NoError(t, out.Err)

			for _, rel := range []string{"index.html", "css/style.css", ".env"} {
				got, err := afero.ReadFile(fs, tt.want+"/"+rel)
				require.NoError(t, err, rel)

				orig, err := afero.ReadFile(fs, "/work/site/"+rel)
				require.NoError(t, err)
				assert.Equal(t, orig, got)
			}

			assert.Contains(t, out.Stdout, "Location: "+tt.want)
			assert.Contains(t, out.Summary, tt.want)
		})
	}
}

func TestBackupFailures(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	stubs := gostub.StubFunc(&Now, fixed)
	defer stubs.Reset()

	memFs(t, map[string]string{
		"/work/site/index.html":                   "x",
		"/work/notes.txt":                         "x",
		"/work/site_backup_20250314_150926/older": "x",
	})

	d := commandtest.Descriptor(t, Source(), "backup")

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "missing", arg: "/work/nope", want: "does not exist"},
		{name: "file", arg: "/work/notes.txt", want: "is not a directory"},
		{name: "target exists", arg: "/work/site", want: "already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := commandtest.Run(t, d, "", tt.arg)
			assert.Equal(t, 1, commandtest.FailureCode(out.Err))
			assert.Contains(t, out.Err.Error(), tt.want)
		})
	}
}

func TestBackupName(t *testing.T) {
	ts := time.Date(2024, 12, 1, 8, 5, 3, 0, time.UTC)

	assert.Equal(t, "src_backup_20241201_080503", BackupName("/a/src", "", ts))
	assert.Equal(t, "nightly_20241201_080503", BackupName("/a/src", "nightly", ts))
}
