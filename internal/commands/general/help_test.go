// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package general

import (
	"context"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/plasma/internal/commandregistry"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/commands/commandtest"
	"github.com/matt-FFFFFF/plasma/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nop = commands.HandlerFunc(func(context.Context, *commands.Invocation) error { return nil })

func helpCommand(t *testing.T) commands.Descriptor {
	t.Helper()

	reg := commandregistry.New()
	require.NoError(t, discovery.Load(context.Background(), reg,
		Source(reg),
		commands.Static("git",
			commands.Descriptor{Name: "sync", Category: "git", Summary: "Pull and push", Handler: nop},
			commands.Descriptor{Name: "status", Category: "git", Summary: "Show status", Handler: nop},
			commands.Descriptor{
				Name: "undo", Category: "git", Summary: "Undo last commit", Handler: nop,
				Args: &commands.ArgSpec{Flags: []commands.FlagMeta{{Name: "yes", Short: "y", Description: "Skip confirmation"}}},
			},
		),
	))

	d, err := reg.Get("help")
	require.NoError(t, err)

	return d
}

func TestGeneralHelp(t *testing.T) {
	out := commandtest.Run(t, helpCommand(t), "")

	require.NoError(t, out.Err)
	assert.Contains(t, out.Stdout, "Plasma Help")
	assert.Contains(t, out.Stdout, "plasma list:git")
	assert.Contains(t, out.Stdout, "plasma --version")
}

func TestCommandHelp(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		contains []string
		absent   []string
	}{
		{
			name: "bare name",
			arg:  "undo",
			contains: []string{
				"Help: git:undo", "Undo last commit", "plasma git:undo [--yes]",
				"-y, --yes", "Related git commands", "git:status", "git:sync",
			},
		},
		{
			name:     "qualified",
			arg:      "git:status",
			contains: []string{"Help: git:status", "Category:    git"},
		},
		{
			name:     "alone in category",
			arg:      "help",
			contains: []string{"Help: general:help", "plasma general:help [command]"},
			absent:   []string{"Related"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := commandtest.Run(t, helpCommand(t), "", tt.arg)
			require.NoError(t, out.Err)

			for _, s := range tt.contains {
				assert.Contains(t, out.Stdout, s)
			}

			for _, s := range tt.absent {
				assert.NotContains(t, out.Stdout, s)
			}
		})
	}
}

func TestCommandHelpRelatedSorted(t *testing.T) {
	out := commandtest.Run(t, helpCommand(t), "", "undo")
	require.NoError(t, out.Err)

	assert.Less(t, strings.Index(out.Stdout, "git:status"), strings.Index(out.Stdout, "git:sync"))
}

func TestCommandHelpUnknown(t *testing.T) {
	for _, name := range []string{"nope", "file:sync"} {
		t.Run(name, func(t *testing.T) {
			out := commandtest.Run(t, helpCommand(t), "", name)

			assert.Equal(t, 1, commandtest.FailureCode(out.Err))
			assert.Contains(t, out.Err.Error(), name)
		})
	}
}
