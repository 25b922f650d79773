// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"time"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
)

var (
	// TerminateTimeout is how long a terminated process has before it is killed.
	TerminateTimeout = 5 * time.Second
	pollInterval     = 100 * time.Millisecond
)

func runKill(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)

	port, err := commands.ParsePort(inv.Parsed.Arg(0))
	if err != nil {
		return err
	}

	c.Info("Looking for process on port %d...", port)

	pids, err := pidsOnPort(ctx, port)
	if err != nil {
		return commands.Failf(1, "reading socket table: %s", err)
	}

	if len(pids) == 0 {
		c.Warning("No process found running on port %d", port)
		return nil
	}

	failed := 0

	for _, pid := range pids {
		p, err := Sys.Process(ctx, pid)
		if err != nil {
			ctxlog.Debug(ctx, "process vanished", "pid", pid, "error", err)
			continue
		}

		c.Info("Found process: %s (PID: %d)", p.Name, pid)

		if err := stop(ctx, c, pid, inv.Parsed.Bool("force")); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.Error("Killing process %d: %s", pid, err)

			failed++
		}
	}

	if failed > 0 {
		return commands.Failf(1, "%d of %d process(es) on port %d could not be killed", failed, len(pids), port)
	}

	inv.Summarize("Port %d is free", port)

	return nil
}

// stop terminates pid and escalates to kill after TerminateTimeout.
func stop(ctx context.Context, c *console.Console, pid int32, force bool) error {
	if force {
		if err := Sys.Kill(ctx, pid); err != nil {
			return err
		}

		c.Success("Force killed process %d", pid)

		return nil
	}

	if err := Sys.Terminate(ctx, pid); err != nil {
		return err
	}

	deadline := time.NewTimer(TerminateTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		running, err := Sys.Running(ctx, pid)
		if err == nil && !running {
			c.Success("Successfully killed process %d", pid)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			c.Warning("Process %d didn't terminate, force killing...", pid)

			if err := Sys.Kill(ctx, pid); err != nil {
				return err
			}

			c.Success("Force killed process %d", pid)

			return nil
		case <-ticker.C:
		}
	}
}
