// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ip

import (
	"context"
	"net"
	"net/netip"
	"slices"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// Interface is a network interface and its addresses.
type Interface struct {
	Name  string
	Addrs []netip.Addr
}

// Interfaces lists the host interfaces. Tests replace it.
var Interfaces = func(ctx context.Context) ([]Interface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Interface, 0, len(stats))

	for _, s := range stats {
		iface := Interface{Name: s.Name}

		for _, a := range s.Addrs {
			if p, err := netip.ParsePrefix(a.Addr); err == nil {
				iface.Addrs = append(iface.Addrs, p.Addr())
			} else if addr, err := netip.ParseAddr(a.Addr); err == nil {
				iface.Addrs = append(iface.Addrs, addr)
			}
		}

		out = append(out, iface)
	}

	return out, nil
}

// PrimaryAddr returns the source address the host routes public traffic from.
// No packet is sent: connecting a UDP socket only selects a route.
var PrimaryAddr = func(ctx context.Context) (netip.Addr, error) {
	var d net.Dialer

	conn, err := d.DialContext(ctx, "udp", "8.8.8.8:80")
	if err != nil {
		return netip.Addr{}, err
	}
	defer conn.Close() //nolint:errcheck

	ap, err := netip.ParseAddrPort(conn.LocalAddr().String())
	if err != nil {
		return netip.Addr{}, err
	}

	return ap.Addr(), nil
}

var (
	loopback4 = netip.MustParseAddr("127.0.0.1")
	loopback6 = netip.IPv6Loopback()
)

func runList(ctx context.Context, inv *commands.Invocation) error {
	c := console.For(inv)

	var rows [][]string

	if addr, err := PrimaryAddr(ctx); err == nil {
		rows = append(rows, []string{"Primary", addr.String(), "IPv4 (Local)"})
	} else {
		ctxlog.Debug(ctx, "no primary route", "error", err)
	}

	ifaces, err := Interfaces(ctx)
	if err != nil {
		c.Warning("Could not get interface details: %s", err)
	}

	for _, iface := range ifaces {
		for _, a := range iface.Addrs {
			if slices.Contains([]netip.Addr{loopback4, loopback6}, a) {
				continue
			}

			rows = append(rows, []string{iface.Name, a.String(), Classify(a)})
		}
	}

	rows = append(rows,
		[]string{"Localhost", loopback4.String(), Classify(loopback4)},
		[]string{"Localhost", loopback6.String(), Classify(loopback6)},
	)

	c.Table("Local IP Addresses", []string{"INTERFACE", "IP ADDRESS", "TYPE"}, rows)

	return nil
}
