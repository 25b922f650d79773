// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ip

import (
	"context"
	"math/big"
	"net/netip"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

// Subnet is the derived properties of a network prefix.
type Subnet struct {
	Prefix    netip.Prefix // Masked.
	Last      netip.Addr   // Broadcast address for IPv4.
	Netmask   netip.Addr
	Hostmask  netip.Addr
	Hosts     *big.Int // Usable host addresses.
	FirstHost netip.Addr
	LastHost  netip.Addr
}

// ParseSubnet parses `addr/bits` or a bare address, which is a single-host
// prefix. Host bits are masked off rather than rejected.
func ParseSubnet(s string) (Subnet, error) {
	var (
		p   netip.Prefix
		err error
	)

	if strings.Contains(s, "/") {
		p, err = netip.ParsePrefix(s)
	} else {
		var a netip.Addr
		if a, err = netip.ParseAddr(s); err == nil {
			p = netip.PrefixFrom(a, a.BitLen())
		}
	}

	if err != nil {
		return Subnet{}, err
	}

	p = p.Masked()
	first := p.Addr()
	bits := first.BitLen()
	hostBits := bits - p.Bits()

	mask := make([]byte, bits/8)
	for i := range p.Bits() {
		mask[i/8] |= 0x80 >> (i % 8)
	}

	raw := first.AsSlice()
	host := make([]byte, len(mask))
	last := make([]byte, len(mask))

	for i := range mask {
		host[i] = ^mask[i]
		last[i] = raw[i] | host[i]
	}

	sn := Subnet{
		Prefix:    p,
		Last:      addrFrom(last),
		Netmask:   addrFrom(mask),
		Hostmask:  addrFrom(host),
		FirstHost: first,
	}

	sn.LastHost = sn.Last
	total := new(big.Int).Lsh(big.NewInt(1), uint(hostBits))

	// /31 and /32 (and their IPv6 peers) have no network or broadcast address.
	if hostBits <= 1 {
		sn.Hosts = total
		return sn, nil
	}

	sn.Hosts = total.Sub(total, big.NewInt(2))
	sn.FirstHost = first.Next()
	sn.LastHost = sn.Last.Prev()

	return sn, nil
}

func addrFrom(b []byte) netip.Addr {
	a, _ := netip.AddrFromSlice(b)
	return a
}

func runSubnet(_ context.Context, inv *commands.Invocation) error {
	c := console.For(inv)

	sn, err := ParseSubnet(inv.Parsed.Arg(0))
	if err != nil {
		return commands.Failf(1, "Invalid network format: %s", err)
	}

	broadcast := sn.Last.String()
	if sn.Prefix.Addr().Is6() {
		broadcast = "N/A"
	}

	c.Table("Subnet Information: "+sn.Prefix.String(), []string{"PROPERTY", "VALUE"}, [][]string{
		{"Network Address", sn.Prefix.Addr().String()},
		{"Broadcast Address", broadcast},
		{"Netmask", sn.Netmask.String()},
		{"Host Mask", sn.Hostmask.String()},
		{"Number of Hosts", humanize.BigComma(sn.Hosts)},
		{"First Host", sn.FirstHost.String()},
		{"Last Host", sn.LastHost.String()},
		{"CIDR Notation", sn.Prefix.String()},
	})

	return nil
}
