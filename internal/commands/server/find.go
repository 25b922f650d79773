// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

const (
	maxFindRows     = 32
	maxPortsPerProc = 5
)

func runFind(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	term := inv.Parsed.Arg(0)

	c.Info("Searching for processes matching '%s'...", term)

	conns, err := Sys.Connections(ctx)
	if err != nil {
		return commands.Failf(1, "reading socket table: %s", err)
	}

	procs, err := Sys.Processes(ctx)
	if err != nil {
		return commands.Failf(1, "reading process table: %s", err)
	}

	found := match(term, conns, procs)
	if len(found) == 0 {
		c.Warning("No processes found matching '%s'", term)
		return nil
	}

	rows := make([][]string, 0, min(len(found), maxFindRows))
	for _, p := range found[:min(len(found), maxFindRows)] {
		rows = append(rows, []string{
			strconv.Itoa(int(p.PID)),
			p.Name,
			fmt.Sprintf("%.1f%%", p.CPU),
			fmt.Sprintf("%.1f%%", p.Mem),
			p.Status,
			portList(p.PID, conns),
		})
	}

	c.Table(fmt.Sprintf("Processes matching '%s'", term), []string{"PID", "NAME", "CPU%", "MEMORY%", "STATUS", "PORTS"}, rows)
	inv.Summarize("%d process(es) found", len(found))

	return nil
}

// match returns processes listening on term (when numeric) followed by processes
// whose name contains term, without duplicates.
func match(term string, conns []Conn, procs []Proc) []Proc {
	byPID := make(map[int32]Proc, len(procs))
	for _, p := range procs {
		byPID[p.PID] = p
	}

	var (
		out  []Proc
		seen = map[int32]bool{}
	)

	add := func(p Proc) {
		if !seen[p.PID] {
			seen[p.PID] = true
			out = append(out, p)
		}
	}

	if port, err := strconv.ParseUint(term, 10, 32); err == nil {
		for _, c := range conns {
			if c.Port != uint32(port) || c.PID <= 0 {
				continue
			}

			if p, ok := byPID[c.PID]; ok {
				add(p)
			}
		}
	}

	needle := strings.ToLower(term)
	for _, p := range procs {
		if p.Name != "" && strings.Contains(strings.ToLower(p.Name), needle) {
			add(p)
		}
	}

	return out
}

func portList(pid int32, conns []Conn) string {
	var ports []string

	for _, c := range conns {
		if c.PID != pid || c.Port == 0 {
			continue
		}

		p := strconv.Itoa(int(c.Port))
		if !slices.Contains(ports, p) {
			ports = append(ports, p)
		}
	}

	if len(ports) == 0 {
		return "-"
	}

	if len(ports) > maxPortsPerProc {
		return strings.Join(ports[:maxPortsPerProc], ", ") + "..."
	}

	return strings.Join(ports, ", ")
}
