// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrun

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotInPath is returned when an executable cannot be found in PATH.
var ErrNotInPath = errors.New("executable not found in PATH")

// LookPath searches PATH for an executable regular file called command.
// Commands containing a path separator are returned unchanged.
func LookPath(command string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("%w: empty command", ErrNotInPath)
	}

	if strings.ContainsRune(command, filepath.Separator) {
		return command, nil
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}

		candidate := filepath.Join(dir, command)

		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
			continue
		}

		return candidate, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNotInPath, command)
}
