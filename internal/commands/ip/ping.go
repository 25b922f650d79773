// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ip

import (
	"context"
	"strconv"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
)

const defaultPingCount = 4

func runPing(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	host := inv.Parsed.Arg(0)
	count := defaultPingCount

	if s := inv.Parsed.Arg(1); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.Warning("Invalid count '%s', using default: %d", s, defaultPingCount)
		} else {
			count = n
		}
	}

	c.Info("Pinging %s with %d packets...", host, count)

	res := Runner.Run(ctx, procrun.Command{
		Path:   "ping",
		Args:   []string{"-c", strconv.Itoa(count), host},
		Stdout: inv.Stdout,
		Stderr: inv.Stderr,
	})

	if res.Err != nil {
		return commands.Failf(1, "Ping to %s failed: %s", host, res.Err)
	}

	if !res.OK() {
		return commands.Failf(1, "Ping to %s failed", host)
	}

	inv.Summarize("Ping to %s successful", host)

	return nil
}
