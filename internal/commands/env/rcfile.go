// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// rcCandidates lists configuration files per shell, primary first.
var rcCandidates = map[string][]string{
	"zsh":  {".zshrc", ".zprofile"},
	"bash": {".bashrc", ".bash_profile"},
	"fish": {filepath.Join(".config", "fish", "config.fish")},
}

const fallbackRC = ".profile"

// RCFile returns the configuration file of shell under home: the first
// candidate that exists, else the primary candidate.
func RCFile(fs afero.Fs, shell, home string) string {
	candidates, ok := rcCandidates[shell]
	if !ok {
		return filepath.Join(home, fallbackRC)
	}

	for _, c := range candidates {
		p := filepath.Join(home, c)
		if ok, _ := afero.Exists(fs, p); ok {
			return p
		}
	}

	return filepath.Join(home, candidates[0])
}

func (e *shellEnv) rcFile(fs afero.Fs) string {
	return RCFile(fs, e.shell, e.home)
}

// exportLine renders a variable assignment in the shell's syntax.
func (e *shellEnv) exportLine(name, value string) string {
	if e.shell == "fish" {
		return fmt.Sprintf("set -gx %s %q", name, value)
	}

	return fmt.Sprintf("export %s=%q", name, value)
}

// pathLine renders a PATH prepend in the shell's syntax.
func (e *shellEnv) pathLine(dir string) string {
	if e.shell == "fish" {
		return fmt.Sprintf("fish_add_path %q", dir)
	}

	return fmt.Sprintf(`export PATH="%s:$PATH"`, dir)
}

// addsToPath reports whether line prepends dir to PATH in any supported syntax.
func addsToPath(line, dir string) bool {
	for _, form := range []string{
		`PATH="` + dir + `:$PATH"`,
		`PATH='` + dir + `:$PATH'`,
		`fish_add_path "` + dir + `"`,
		`fish_add_path ` + dir,
	} {
		if strings.Contains(line, form) {
			return true
		}
	}

	return false
}

// expand resolves `~` against home and makes p absolute.
func (e *shellEnv) expand(p string) string {
	if p == "~" {
		p = e.home
	} else if rest, ok := strings.CutPrefix(p, "~/"); ok {
		p = filepath.Join(e.home, rest)
	}

	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}

	return filepath.Clean(p)
}

// readRC returns the content of path, or "" when it does not exist.
func readRC(fs afero.Fs, path string) (string, error) {
	b, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return "", nil
	}

	return string(b), err
}

// appendLine appends line to path, creating parents and the file as needed.
// A missing trailing newline in the existing content is added first.
func appendLine(fs afero.Fs, path, line string) error {
	content, err := readRC(fs, path)
	if err != nil {
		return err
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		line = "\n" + line
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// rewrite replaces path with the kept lines, returning how many were dropped.
func rewrite(fs afero.Fs, path string, drop func(string) bool) (int, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, err
	}

	lines := strings.SplitAfter(string(content), "\n")
	kept := make([]string, 0, len(lines))

	for _, l := range lines {
		if l != "" && drop(strings.TrimRight(l, "\n")) {
			continue
		}

		kept = append(kept, l)
	}

	removed := len(lines) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	info, err := fs.Stat(path)
	if err != nil {
		return 0, err
	}

	return removed, afero.WriteFile(fs, path, []byte(strings.Join(kept, "")), info.Mode().Perm())
}

// backupRC copies path to path.backup and returns the backup name.
func backupRC(fs afero.Fs, path string) (string, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", err
	}

	dest := path + ".backup"

	return dest, afero.WriteFile(fs, dest, b, 0o644)
}
