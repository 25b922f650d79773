// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config reads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
)

// ErrInvalidConfig is returned when an environment value is present but unusable.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the environment-derived configuration of a plasma process.
type Config struct {
	LogLevel  string `env:"PLASMA_LOG_LEVEL" envDefault:"WARN"`
	LogFormat string `env:"PLASMA_LOG_FORMAT" envDefault:"pretty"`
	TasksFile string `env:"PLASMA_TASKS_FILE" envDefault:".plasma.yaml"`
	Shell     string `env:"SHELL"`
	Home      string `env:"HOME"`
	Editor    string `env:"EDITOR" envDefault:"nano"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given environment instead of the process environment.
// A nil map means the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects values that would otherwise be silently ignored.
func (c Config) Validate() error {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("%w: PLASMA_LOG_LEVEL %q must be one of DEBUG, INFO, WARN, ERROR", ErrInvalidConfig, c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case ctxlog.FormatPretty, ctxlog.FormatJSON:
	default:
		return fmt.Errorf("%w: PLASMA_LOG_FORMAT %q must be %s or %s",
			ErrInvalidConfig, c.LogFormat, ctxlog.FormatPretty, ctxlog.FormatJSON)
	}

	if strings.TrimSpace(c.TasksFile) == "" {
		return fmt.Errorf("%w: PLASMA_TASKS_FILE is empty", ErrInvalidConfig)
	}

	return nil
}

// Level returns the slog level for LogLevel.
func (c Config) Level() slog.Level {
	return ctxlog.ParseLevel(c.LogLevel)
}

// ShellName returns the base name of $SHELL, e.g. `zsh`.
func (c Config) ShellName() string {
	if c.Shell == "" {
		return ""
	}

	return filepath.Base(c.Shell)
}
