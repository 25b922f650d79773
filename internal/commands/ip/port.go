// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ip

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/ctxlog"
)

// DialTimeout bounds a single port probe.
var DialTimeout = 3 * time.Second

const defaultHost = "localhost"

func runPort(ctx context.Context, inv *commands.Invocation) error {
	port, err := commands.ParsePort(inv.Parsed.Arg(0))
	if err != nil {
		return err
	}

	host := inv.Parsed.Arg(1)
	if host == "" {
		host = defaultHost
	}

	ctx, cancel := context.WithTimeout(ctx, DialTimeout)
	defer cancel()

	var d net.Dialer

	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		ctxlog.Debug(ctx, "dial failed", "host", host, "port", port, "error", err)

		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return commands.Failf(1, "Could not resolve hostname: %s", host)
		}

		return commands.Failf(1, "Port %d is closed on %s", port, host)
	}

	_ = conn.Close()

	inv.Summarize("Port %d is open on %s", port, host)

	return nil
}
