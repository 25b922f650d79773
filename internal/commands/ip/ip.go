// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ip provides network address utilities.
package ip

import (
	"net/netip"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
)

// SourceName identifies this source in discovery errors.
const SourceName = "ip"

// Category is the listing category of every command in this package.
const Category commands.Category = "ip"

// Runner executes ping. Tests replace it with a script.
var Runner procrun.Runner = procrun.OS{}

// Source returns the ip command source.
func Source() commands.Source {
	return commands.Static(SourceName,
		commands.Descriptor{
			Name:     "list",
			Category: Category,
			Summary:  "Show local IP addresses",
			Help:     "Only reachable as ip:list, because a bare list shows the command listing.",
			Args:     &commands.ArgSpec{},
			Handler:  commands.HandlerFunc(runList),
		},
		commands.Descriptor{
			Name:     "validate",
			Category: Category,
			Summary:  "Validate IP address format",
			Args: &commands.ArgSpec{
				Positionals: []commands.ArgMeta{{Name: "ip_address", Description: "IPv4 or IPv6 address to validate", Required: true}},
			},
			Handler: commands.HandlerFunc(runValidate),
		},
		commands.Descriptor{
			Name:     "subnet",
			Category: Category,
			Summary:  "Get subnet information for IP/CIDR",
			Args: &commands.ArgSpec{
				Positionals: []commands.ArgMeta{{Name: "ip/cidr", Description: "Address with prefix length, e.g. 192.168.1.0/24", Required: true}},
			},
			Handler: commands.HandlerFunc(runSubnet),
		},
		commands.Descriptor{
			Name:     "ping",
			Category: Category,
			Summary:  "Ping a host",
			Args: &commands.ArgSpec{
				Positionals: []commands.ArgMeta{
					{Name: "host", Description: "Host to ping", Required: true},
					{Name: "count", Description: "Number of packets, default 4"},
				},
			},
			Handler: commands.HandlerFunc(runPing),
		},
		commands.Descriptor{
			Name:     "port",
			Category: Category,
			Summary:  "Check if port is open",
			Args: &commands.ArgSpec{
				Positionals: []commands.ArgMeta{
					{Name: "port", Description: "Port number to check (1-65535)", Required: true},
					{Name: "host", Description: "Host to connect to, default localhost"},
				},
			},
			Handler: commands.HandlerFunc(runPort),
		},
	)
}

// Classify describes the scope of an address, e.g. "IPv4 (Private)".
func Classify(a netip.Addr) string {
	family := "IPv4"
	if a.Is6() && !a.Is4In6() {
		family = "IPv6"
	}

	switch {
	case a.IsLoopback():
		return family + " (Loopback)"
	case a.IsLinkLocalUnicast():
		return family + " (Link-local)"
	case a.IsPrivate():
		return family + " (Private)"
	case a.IsGlobalUnicast():
		return family + " (Public)"
	default:
		return family
	}
}

// scope is the lower-case scope word used in sentences.
func scope(a netip.Addr) string {
	switch {
	case a.IsLoopback():
		return "loopback"
	case a.IsLinkLocalUnicast():
		return "link-local"
	case a.IsPrivate():
		return "private"
	case a.Is6():
		return "global"
	default:
		return "public"
	}
}
