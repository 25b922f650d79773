// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input string) (*Console, *bytes.Buffer, *bytes.Buffer) {
	out, errw := &bytes.Buffer{}, &bytes.Buffer{}
	c := New(out, errw, strings.NewReader(input), WithColour(false), WithInteractive(false))

	return c, out, errw
}

func TestStatusLines(t *testing.T) {
	c, out, errw := newTestConsole("")

	c.Info("checking %s", "ports")
	c.Success("done")
	c.Warning("slow")
	c.Error("port %d busy", 8080)

	assert.Equal(t, "ℹ checking ports\n✓ done\n⚠ slow\n", out.String())
	assert.Equal(t, "✗ port 8080 busy\n", errw.String())
}

func TestTable(t *testing.T) {
	c, out, _ := newTestConsole("")

	c.Table("Processes", []string{"PID", "NAME"}, [][]string{{"42", "nginx"}, {"7", "sshd"}})

	got := out.String()
	assert.Contains(t, got, "Processes")
	assert.Contains(t, got, "PID")
	assert.Contains(t, got, "nginx")
	assert.Contains(t, got, "╭")
	assert.Less(t, strings.Index(got, "nginx"), strings.Index(got, "sshd"))
}

func TestPanel(t *testing.T) {
	c, out, _ := newTestConsole("")

	c.Panel("Usage", "plasma <command>")

	got := out.String()
	assert.Contains(t, got, "Usage")
	assert.Contains(t, got, "plasma <command>")
	assert.Contains(t, got, "╭")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		def     bool
		want    bool
		wantErr bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "YES", input: "YES\n", want: true},
		{name: "no", input: "no\n", def: true, want: false},
		{name: "empty uses default true", input: "\n", def: true, want: true},
		{name: "eof uses default false", input: "", want: false},
		{name: "garbage", input: "maybe\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := newTestConsole(tt.input)

			got, err := c.Confirm("Proceed?", tt.def)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAnswer)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Proceed?")
		})
	}
}

func TestChoose(t *testing.T) {
	options := []string{"mit", "apache", "bsd3"}

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "by number", input: "2\n", want: 1},
		{name: "by name", input: "BSD3\n", want: 2},
		{name: "default", input: "\n", want: 0},
		{name: "out of range", input: "9\n", wantErr: true},
		{name: "unknown", input: "gpl\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := newTestConsole(tt.input)

			got, err := c.Choose("License", options, 0)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAnswer)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "  2. apache\n")
		})
	}
}

func TestAskSequential(t *testing.T) {
	c, _, _ := newTestConsole("Jane Doe\n\n")

	name, err := c.Ask("Author", "")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", name)

	year, err := c.Ask("Year", "2026")
	require.NoError(t, err)
	assert.Equal(t, "2026", year)
}
