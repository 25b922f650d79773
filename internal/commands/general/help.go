// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package general provides the help command.
package general

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/console"
)

// SourceName identifies this source in discovery errors.
const SourceName = "general"

// Source returns the general command source. The catalog is read when help runs,
// so it sees every command registered after this source.
func Source(catalog commands.Catalog) commands.Source {
	return commands.Static(SourceName, commands.Descriptor{
		Name:     "help",
		Category: commands.DefaultCategory,
		Summary:  "Display help information about commands",
		Help:     "Without an argument, shows how to use plasma. With a command name, shows its usage and related commands.",
		Args: &commands.ArgSpec{
			Positionals: []commands.ArgMeta{{Name: "command", Description: "Command to describe, bare or category:name"}},
		},
		Handler: &help{catalog: catalog},
	})
}

type help struct {
	catalog commands.Catalog
}

// Run implements commands.Handler.
func (h *help) Run(_ context.Context, inv *commands.Invocation) error {
	c := console.For(inv)

	name := inv.Parsed.Arg(0)
	if name == "" {
		generalHelp(c)
		return nil
	}

	d, err := h.lookup(name)
	if err != nil {
		return commands.Failf(1, "command %q not found, run %q to see available commands",
			name, commands.ProgramName+" help")
	}

	c.Panel("Help: "+d.QualifiedName(), describe(d))

	related, err := h.catalog.ByCategory(d.Category)
	if err != nil {
		return nil
	}

	related = slices.DeleteFunc(related, func(r commands.Descriptor) bool { return r.Name == d.Name })
	if len(related) == 0 {
		return nil
	}

	slices.SortFunc(related, func(a, b commands.Descriptor) int { return strings.Compare(a.Name, b.Name) })

	rows := make([][]string, 0, len(related))
	for _, r := range related {
		rows = append(rows, []string{r.QualifiedName(), r.Summary})
	}

	c.Table(fmt.Sprintf("Related %s commands", d.Category), []string{"COMMAND", "DESCRIPTION"}, rows)

	return nil
}

func (h *help) lookup(name string) (commands.Descriptor, error) {
	category, bare, qualified := strings.Cut(name, commands.QualifierSeparator)
	if !qualified {
		return h.catalog.Get(name)
	}

	d, err := h.catalog.Get(bare)
	if err != nil {
		return d, err
	}

	if d.Category != commands.Category(category) {
		return commands.Descriptor{}, fmt.Errorf("%q is not in category %q", bare, category)
	}

	return d, nil
}

func generalHelp(c *console.Console) {
	p := commands.ProgramName

	c.Panel("Plasma Help", strings.Join([]string{
		"A powerful development toolkit",
		"",
		fmt.Sprintf("Usage: %s <command> [args...]", p),
		fmt.Sprintf("       %s <category>:<command> [args...]", p),
	}, "\n"))

	c.Panel("Quick Start", strings.Join([]string{
		fmt.Sprintf("  %-24s Show all commands", p+" list"),
		fmt.Sprintf("  %-24s Show git commands", p+" list:git"),
		fmt.Sprintf("  %-24s Show help for a command", p+" help <command>"),
		fmt.Sprintf("  %-24s Show version information", p+" --version"),
	}, "\n"))
}

func describe(d commands.Descriptor) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Description: %s\n", d.Summary)
	fmt.Fprintf(&b, "Category:    %s\n", d.Category)
	fmt.Fprintf(&b, "Usage:       %s %s", commands.ProgramName, d.Usage())

	if d.Help != "" {
		fmt.Fprintf(&b, "\n\n%s", d.Help)
	}

	if d.Args == nil {
		return b.String()
	}

	if len(d.Args.Actions) > 0 {
		b.WriteString("\n\nActions:")

		for _, a := range d.Args.Actions {
			marker := ""
			if a.Name == d.Args.DefaultAction {
				marker = " (default)"
			}

			fmt.Fprintf(&b, "\n  %-24s %s%s", a.Usage(), a.Description, marker)
		}
	}

	if len(d.Args.Flags) > 0 {
		b.WriteString("\n\nFlags:")

		for _, f := range d.Args.Flags {
			names := "--" + f.Name
			if f.Short != "" {
				names = "-" + f.Short + ", " + names
			}

			fmt.Fprintf(&b, "\n  %-24s %s", names, f.Description)
		}
	}

	return b.String()
}
