// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tasks

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

var (
	// ErrManifest is returned when the task manifest cannot be used.
	ErrManifest = errors.New("invalid task manifest")
	// ErrInvalidTask is returned when a manifest entry is incomplete or contradictory.
	ErrInvalidTask = errors.New("invalid task")
)

// Manifest is the root of a task manifest file.
type Manifest struct {
	Tasks []Task `yaml:"tasks"`
}

// Task is a manifest entry that becomes a command.
type Task struct {
	Name     string            `yaml:"name"`
	Category string            `yaml:"category,omitempty"`
	Summary  string            `yaml:"summary,omitempty"`
	Help     string            `yaml:"help,omitempty"`
	Run      string            `yaml:"run"`
	Dir      string            `yaml:"dir,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
	MinArgs  int               `yaml:"min_args,omitempty"`
	// MaxArgs nil means no upper bound.
	MaxArgs *int `yaml:"max_args,omitempty"`
	// SuccessExitCodes defaults to 0.
	SuccessExitCodes []int `yaml:"success_exit_codes,omitempty"`
}

// Validate checks the fields a descriptor cannot check.
func (t Task) Validate() error {
	switch {
	case strings.TrimSpace(t.Name) == "":
		return fmt.Errorf("%w: missing name", ErrInvalidTask)
	case strings.TrimSpace(t.Run) == "":
		return fmt.Errorf("%w: %q has no run command", ErrInvalidTask, t.Name)
	case t.MinArgs < 0:
		return fmt.Errorf("%w: %q has negative min_args", ErrInvalidTask, t.Name)
	case t.MaxArgs != nil && *t.MaxArgs < t.MinArgs:
		return fmt.Errorf("%w: %q has max_args %d below min_args %d", ErrInvalidTask, t.Name, *t.MaxArgs, t.MinArgs)
	}

	return nil
}

// ParseManifest decodes and validates a manifest document.
// Unknown fields are rejected so that typos do not silently drop settings.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.DisallowUnknownField()); err != nil {
		return Manifest{}, fmt.Errorf("%w: %s", ErrManifest, yaml.FormatError(err, false, true))
	}

	for i, t := range m.Tasks {
		if err := t.Validate(); err != nil {
			return Manifest{}, fmt.Errorf("%w: entry %d: %w", ErrManifest, i+1, err)
		}
	}

	return m, nil
}

// LoadManifest reads the manifest at path. A missing file is an empty manifest.
func LoadManifest(fs afero.Fs, path string) (Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return Manifest{}, nil
	}

	if err != nil {
		return Manifest{}, fmt.Errorf("%w: reading %s: %w", ErrManifest, path, err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
