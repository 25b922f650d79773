// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/matt-FFFFFF/plasma/internal/color"
	"github.com/matt-FFFFFF/plasma/internal/commands"
)

// Group is one category and its commands in registration order.
type Group struct {
	Category commands.Category
	Commands []commands.Descriptor
}

// Listing is a read-only snapshot of the catalog grouped by category.
type Listing struct {
	Groups []Group
}

// Len returns the number of commands in the listing.
func (l Listing) Len() int {
	n := 0
	for _, g := range l.Groups {
		n += len(g.Commands)
	}

	return n
}

// List returns every command grouped by category, or one category when category is
// not empty. Listing never mutates the catalog.
func (d *Dispatcher) List(category string) (Listing, error) {
	cats := d.catalog.Categories()

	if category != "" {
		cats = []commands.Category{commands.Category(category)}
	}

	l := Listing{Groups: make([]Group, 0, len(cats))}

	for _, c := range cats {
		ds, err := d.catalog.ByCategory(c)
		if err != nil {
			return Listing{}, err
		}

		l.Groups = append(l.Groups, Group{Category: c, Commands: ds})
	}

	return l, nil
}

// Render writes one table per category. Rendering the same listing twice yields
// identical output.
func (l Listing) Render(w io.Writer) error {
	if l.Len() == 0 {
		_, err := fmt.Fprintln(w, "No commands registered.")
		return err
	}

	for i, g := range l.Groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleRounded)
		t.SetTitle(g.Category.String())
		t.AppendHeader(table.Row{heading("COMMAND"), heading("DESCRIPTION")})

		for _, c := range g.Commands {
			t.AppendRow(table.Row{c.QualifiedName(), c.Summary})
		}

		t.Render()
	}

	return nil
}

func heading(s string) string {
	if !color.Enabled() {
		return s
	}

	return text.FgHiCyan.Sprint(s)
}
