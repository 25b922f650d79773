// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ip

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/commands/commandtest"
	"github.com/matt-FFFFFF/plasma/internal/procrun"
	"github.com/matt-FFFFFF/plasma/internal/procrun/procruntest"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{addr: "192.168.1.10", want: "IPv4 (Private)"},
		{addr: "10.0.0.1", want: "IPv4 (Private)"},
		{addr: "127.0.0.1", want: "IPv4 (Loopback)"},
		{addr: "169.254.3.4", want: "IPv4 (Link-local)"},
		{addr: "8.8.8.8", want: "IPv4 (Public)"},
		{addr: "::1", want: "IPv6 (Loopback)"},
		{addr: "fe80::1", want: "IPv6 (Link-local)"},
		{addr: "fd00::1", want: "IPv6 (Private)"},
		{addr: "2001:4860:4860::8888", want: "IPv6 (Public)"},
		{addr: "224.0.0.1", want: "IPv4"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(netip.MustParseAddr(tt.addr)))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		in       string
		wantOut  string
		wantFail bool
	}{
		{in: "192.168.1.1", wantOut: "This is a private IP address"},
		{in: "8.8.8.8", wantOut: "This is a public IP address"},
		{in: "::1", wantOut: "This is a loopback IPv6 address"},
		{in: "2001:db8::1", wantOut: "Valid IPv6 address: 2001:db8::1"},
		{in: "999.1.1.1", wantFail: true},
		{in: "example.com", wantFail: true},
	}

	d := commandtest.Descriptor(t, Source(), "validate")

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := commandtest.Run(t, d, "", tt.in)
			if tt.wantFail {
				assert.Equal(t, 1, commandtest.FailureCode(out.Err))
				assert.Contains(t, out.Err.Error(), "Invalid IP address")

				return
			}

			require.NoError(t, out.Err)
			assert.Contains(t, out.Stdout, tt.wantOut)
		})
	}
}

func TestParseSubnet(t *testing.T) {
	tests := []struct {
		in                                         string
		prefix, last, netmask, hostmask, first, lh string
		hosts                                      string
	}{
		{
			in: "192.168.1.77/24", prefix: "192.168.1.0/24", last: "192.168.1.255",
			netmask: "255.255.255.0", hostmask: "0.0.0.255",
			first: "192.168.1.1", lh: "192.168.1.254", hosts: "254",
		},
		{
			in: "10.0.0.0/8", prefix: "10.0.0.0/8", last: "10.255.255.255",
			netmask: "255.0.0.0", hostmask: "0.255.255.255",
			first: "10.0.0.1", lh: "10.255.255.254", hosts: "16777214",
		},
		{
			in: "10.0.0.5", prefix: "10.0.0.5/32", last: "10.0.0.5",
			netmask: "255.255.255.255", hostmask: "0.0.0.0",
			first: "10.0.0.5", lh: "10.0.0.5", hosts: "1",
		},
		{
			in: "10.0.0.4/31", prefix: "10.0.0.4/31", last: "10.0.0.5",
			netmask: "255.255.255.254", hostmask: "0.0.0.1",
			first: "10.0.0.4", lh: "10.0.0.5", hosts: "2",
		},
		{
			in: "2001:db8::/126", prefix: "2001:db8::/126", last: "2001:db8::3",
			netmask: "ffff:ffff:ffff:ffff:ffff:ffff:ffff:fffc", hostmask: "::3",
			first: "2001:db8::1", lh: "2001:db8::2", hosts: "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sn, err := ParseSubnet(tt.in)
			require.NoError(t, err)

			assert.Equal(t, tt.prefix, sn.Prefix.String())
			assert.Equal(t, tt.last, sn.Last.String())
			assert.Equal(t, tt.netmask, sn.Netmask.String())
			assert.Equal(t, tt.hostmask, sn.Hostmask.String())
			assert.Equal(t, tt.first, sn.FirstHost.String())
			assert.Equal(t, tt.lh, sn.LastHost.String())
			assert.Equal(t, tt.hosts, sn.Hosts.String())
		})
	}

	_, err := ParseSubnet("192.168.1.0/33")
	assert.Error(t, err)
}

func TestSubnetCommand(t *testing.T) {
	d := commandtest.Descriptor(t, Source(), "subnet")

	out := commandtest.Run(t, d, "", "172.16.0.0/12")
	require.NoError(t, out.Err)
	assert.Contains(t, out.Stdout, "Subnet Information: 172.16.0.0/12")
	assert.Contains(t, out.Stdout, "1,048,574")
	assert.Contains(t, out.Stdout, "172.31.255.255")

	out = commandtest.Run(t, d, "", "not-a-network")
	assert.Equal(t, 1, commandtest.FailureCode(out.Err))
}

func TestList(t *testing.T) {
	stubs := gostub.Stub(&Interfaces, func(context.Context) ([]Interface, error) {
		return []Interface{
			{Name: "lo", Addrs: []netip.Addr{netip.MustParseAddr("127.0.0.1"), netip.IPv6Loopback()}},
			{Name: "eth0", Addrs: []netip.Addr{netip.MustParseAddr("192.168.1.20"), netip.MustParseAddr("fe80::abcd")}},
		}, nil
	}).Stub(&PrimaryAddr, func(context.Context) (netip.Addr, error) {
		return netip.MustParseAddr("192.168.1.20"), nil
	})
	defer stubs.Reset()

	out := commandtest.Run(t, commandtest.Descriptor(t, Source(), "list"), "")
	require.NoError(t, out.Err)

	assert.Contains(t, out.Stdout, "Local IP Addresses")
	assert.Contains(t, out.Stdout, "Primary")
	assert.Contains(t, out.Stdout, "eth0")
	assert.Contains(t, out.Stdout, "IPv6 (Link-local)")
	assert.NotContains(t, out.Stdout, "lo ")
	assert.Contains(t, out.Stdout, "Localhost")
}

func TestListWithoutRoute(t *testing.T) {
	stubs := gostub.Stub(&Interfaces, func(context.Context) ([]Interface, error) {
		return nil, errors.New("permission denied")
	}).Stub(&PrimaryAddr, func(context.Context) (netip.Addr, error) {
		return netip.Addr{}, errors.New("network is unreachable")
	})
	defer stubs.Reset()

	out := commandtest.Run(t, commandtest.Descriptor(t, Source(), "list"), "")
	require.NoError(t, out.Err)
	assert.Contains(t, out.Stdout, "Could not get interface details")
	assert.NotContains(t, out.Stdout, "Primary")
	assert.Contains(t, out.Stdout, "::1")
}

func TestPing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		line     string
		exit     int
		wantFail bool
		wantWarn bool
	}{
		{name: "default count", args: []string{"example.com"}, line: "ping -c 4 example.com"},
		{name: "custom count", args: []string{"example.com", "2"}, line: "ping -c 2 example.com"},
		{name: "bad count", args: []string{"example.com", "lots"}, line: "ping -c 4 example.com", wantWarn: true},
		{name: "unreachable", args: []string{"10.255.255.1"}, line: "ping -c 4 10.255.255.1", exit: 1, wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := procruntest.New().On(tt.line, procrun.Result{ExitCode: tt.exit, Stdout: []byte("PING output\n")})
			stubs := gostub.Stub(&Runner, procrun.Runner(s))
			defer stubs.Reset()

			out := commandtest.Run(t, commandtest.Descriptor(t, Source(), "ping"), "", tt.args...)

			assert.Equal(t, []string{tt.line}, s.Calls())
			assert.Contains(t, out.Stdout, "PING output", "ping output is streamed")
			assert.Equal(t, tt.wantWarn, strings.Contains(out.Stdout, "Invalid count"))

			if tt.wantFail {
				assert.Equal(t, 1, commandtest.FailureCode(out.Err))
				return
			}

			require.NoError(t, out.Err)
		})
	}
}

func TestPort(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer l.Close() //nolint:errcheck

	open := strconv.Itoa(l.Addr().(*net.TCPAddr).Port)

	closed, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	shut := strconv.Itoa(closed.Addr().(*net.TCPAddr).Port)
	require.NoError(t, closed.Close())

	d := commandtest.Descriptor(t, Source(), "port")

	out := commandtest.Run(t, d, "", open, "127.0.0.1")
	require.NoError(t, out.Err)
	assert.Equal(t, "Port "+open+" is open on 127.0.0.1", out.Summary)

	out = commandtest.Run(t, d, "", shut, "127.0.0.1")
	assert.Equal(t, 1, commandtest.FailureCode(out.Err))
	assert.Contains(t, out.Err.Error(), "is closed on 127.0.0.1")

	out = commandtest.Run(t, d, "", "70000")
	assert.ErrorIs(t, out.Err, commands.ErrArgument)
}
