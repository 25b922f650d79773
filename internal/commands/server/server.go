// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package server provides commands that inspect and stop local server processes.
package server

import (
	"context"
	"slices"

	"github.com/matt-FFFFFF/plasma/internal/commands"
)

// SourceName identifies this source in discovery errors.
const SourceName = "server"

// Category is the listing category of every command in this package.
const Category commands.Category = "server"

// Source returns the server command source.
func Source() commands.Source {
	return commands.Static(SourceName,
		commands.Descriptor{
			Name:     "kill",
			Category: Category,
			Summary:  "Kill process running on specified port",
			Help:     "Terminates every process with a socket on the port, waiting up to five seconds before killing it.",
			Args: &commands.ArgSpec{
				Positionals: []commands.ArgMeta{{Name: "port", Description: "Port number to free", Required: true}},
				Flags:       []commands.FlagMeta{{Name: "force", Short: "f", Description: "Kill immediately instead of terminating"}},
			},
			Handler: commands.HandlerFunc(runKill),
		},
		commands.Descriptor{
			Name:     "find",
			Category: Category,
			Summary:  "Find processes by name or port",
			Args: &commands.ArgSpec{
				Positionals: []commands.ArgMeta{{Name: "name_or_port", Description: "Process name fragment or port number", Required: true}},
			},
			Handler: commands.HandlerFunc(runFind),
		},
		commands.Descriptor{
			Name:     "ports",
			Category: Category,
			Summary:  "List all listening ports",
			Args:     &commands.ArgSpec{},
			Handler:  commands.HandlerFunc(runPorts),
		},
	)
}

// pidsOnPort returns the distinct owners of sockets bound to port, in table order.
func pidsOnPort(ctx context.Context, port uint32) ([]int32, error) {
	conns, err := Sys.Connections(ctx)
	if err != nil {
		return nil, err
	}

	var pids []int32

	for _, c := range conns {
		if c.Port == port && c.PID > 0 && !slices.Contains(pids, c.PID) {
			pids = append(pids, c.PID)
		}
	}

	return pids, nil
}
