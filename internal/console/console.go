// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/matt-FFFFFF/plasma/internal/color"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"golang.org/x/term"
)

const (
	symbolInfo    = "ℹ"
	symbolSuccess = "✓"
	symbolWarning = "⚠"
	symbolError   = "✗"
)

// Console writes formatted output for one invocation.
type Console struct {
	out         io.Writer
	err         io.Writer
	in          *bufio.Reader
	colour      bool
	interactive bool
}

// Option configures a Console.
type Option func(*Console)

// WithColour forces colour on or off.
func WithColour(on bool) Option {
	return func(c *Console) {
		c.colour = on
	}
}

// WithInteractive forces the line editor on or off for prompts.
func WithInteractive(on bool) Option {
	return func(c *Console) {
		c.interactive = on
	}
}

// New creates a Console. Colour follows the process policy and prompts are
// interactive when in is a terminal.
func New(out, errw io.Writer, in io.Reader, opts ...Option) *Console {
	if in == nil {
		in = os.Stdin
	}

	c := &Console{
		out:         out,
		err:         errw,
		in:          bufio.NewReader(in),
		colour:      color.Enabled(),
		interactive: isTerminal(in),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// For creates a Console bound to the streams of an invocation.
func For(inv *commands.Invocation, opts ...Option) *Console {
	return New(inv.Stdout, inv.Stderr, inv.Stdin, opts...)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Out returns the standard output stream.
func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) paint(s string, codes ...color.Code) string {
	if !c.colour {
		return s
	}

	return color.Paint(s, codes...)
}

func (c *Console) status(w io.Writer, symbol string, code color.Code, format string, a ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", c.paint(symbol, code), fmt.Sprintf(format, a...))
}

// Info prints an informational line.
func (c *Console) Info(format string, a ...any) {
	c.status(c.out, symbolInfo, color.FgBlue, format, a...)
}

// Success prints a success line.
func (c *Console) Success(format string, a ...any) {
	c.status(c.out, symbolSuccess, color.FgGreen, format, a...)
}

// Warning prints a warning line.
func (c *Console) Warning(format string, a ...any) {
	c.status(c.out, symbolWarning, color.FgYellow, format, a...)
}

// Error prints an error line to the error stream.
func (c *Console) Error(format string, a ...any) {
	c.status(c.err, symbolError, color.FgRed, format, a...)
}

// Println writes plain text followed by a newline.
func (c *Console) Println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

// Table renders rows under a header with a rounded border.
func (c *Console) Table(title string, header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetStyle(table.StyleRounded)

	if title != "" {
		t.SetTitle(title)
	}

	hdr := make(table.Row, len(header))
	for i, h := range header {
		if c.colour {
			hdr[i] = text.FgHiCyan.Sprint(h)
		} else {
			hdr[i] = h
		}
	}

	t.AppendHeader(hdr)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}

		t.AppendRow(row)
	}

	t.Render()
}

// Panel renders body inside a rounded box with an optional bold title line.
func (c *Console) Panel(title, body string) {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	content := body
	if title != "" {
		heading := lipgloss.NewStyle().Bold(true)
		if c.colour {
			heading = heading.Foreground(lipgloss.Color("12"))
		}

		content = heading.Render(title) + "\n\n" + body
	}

	if c.colour {
		style = style.BorderForeground(lipgloss.Color("8"))
	}

	_, _ = fmt.Fprintln(c.out, style.Render(content))
}
