// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the plasma command-line application.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/plasma/cmd"
	"github.com/matt-FFFFFF/plasma/internal/allcommands"
	"github.com/matt-FFFFFF/plasma/internal/commandregistry"
	"github.com/matt-FFFFFF/plasma/internal/config"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
	"github.com/matt-FFFFFF/plasma/internal/discovery"
	"github.com/matt-FFFFFF/plasma/internal/dispatch"
	"github.com/matt-FFFFFF/plasma/internal/signalbroker"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		return dispatch.ExitConfig
	}

	ctxlog.LevelVar.Set(cfg.Level())

	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.NewLogger(os.Stderr, cfg.LogFormat))

	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel)

	reg := commandregistry.New()
	app := &cmd.App{
		Dispatcher: dispatch.New(reg, dispatch.WithProgramName(filepath.Base(os.Args[0]))),
		Load: func(ctx context.Context) error {
			return discovery.Load(ctx, reg, allcommands.Sources(cfg, reg)...)
		},
	}

	if err := cmd.New(app).Run(ctx, os.Args); err != nil {
		ctxlog.Error(ctx, "command failed", "error", err)
		return dispatch.ExitUsage
	}

	return app.ExitCode
}
