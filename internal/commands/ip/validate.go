// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ip

import (
	"context"
	"net/netip"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

func runValidate(_ context.Context, inv *commands.Invocation) error {
	c := console.For(inv)
	s := inv.Parsed.Arg(0)

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return commands.Failf(1, "Invalid IP address: %s", s)
	}

	if addr.Is4() {
		c.Success("Valid IPv4 address: %s", s)
		c.Info("This is a %s IP address", scope(addr))
	} else {
		c.Success("Valid IPv6 address: %s", s)
		c.Info("This is a %s IPv6 address", scope(addr))
	}

	inv.Summarize("%s is valid", s)

	return nil
}
