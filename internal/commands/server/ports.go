// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

func runPorts(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	c.Info("Scanning for listening ports...")

	conns, err := Sys.Connections(ctx)
	if err != nil {
		return commands.Failf(1, "reading socket table: %s", err)
	}

	listening := make(map[uint32]Conn)

	for _, conn := range conns {
		if conn.Status != StatusListen {
			continue
		}

		if _, ok := listening[conn.Port]; !ok {
			listening[conn.Port] = conn
		}
	}

	ports := make([]Conn, 0, len(listening))
	for _, conn := range listening {
		ports = append(ports, conn)
	}

	slices.SortFunc(ports, func(a, b Conn) int { return cmp.Compare(a.Port, b.Port) })

	rows := make([][]string, 0, len(ports))

	for _, conn := range ports {
		name, pid := "Unknown", "N/A"

		if conn.PID > 0 {
			if p, err := Sys.Process(ctx, conn.PID); err == nil {
				name, pid = p.Name, strconv.Itoa(int(conn.PID))
			}
		}

		rows = append(rows, []string{strconv.Itoa(int(conn.Port)), conn.Proto, name, pid, conn.Status})
	}

	c.Table("Listening Ports", []string{"PORT", "PROTOCOL", "PROCESS", "PID", "STATUS"}, rows)
	inv.Summarize("Found %d listening ports", len(ports))

	return nil
}
