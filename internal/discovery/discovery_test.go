// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/plasma/internal/commandregistry"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nop = commands.HandlerFunc(func(context.Context, *commands.Invocation) error { return nil })

func desc(name, category string) commands.Descriptor {
	return commands.Descriptor{Name: name, Category: commands.Category(category), Handler: nop}
}

func names(ds []commands.Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.QualifiedName()
	}

	return out
}

func TestLoadInOrder(t *testing.T) {
	reg := commandregistry.New()

	err := Load(context.Background(), reg,
		commands.Static("general", desc("help", "")),
		commands.Static("git", desc("status", "git"), desc("sync", "git")),
		commands.Static("empty"),
		commands.Static("file", desc("size", "file")),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"general:help", "git:status", "git:sync", "file:size"}, names(reg.All()))
	assert.Equal(t, []commands.Category{"general", "git", "file"}, reg.Categories())
}

func TestLoadAggregatesFailures(t *testing.T) {
	reg := commandregistry.New()
	boom := errors.New("manifest unreadable")

	err := Load(context.Background(), reg,
		commands.Static("git", desc("status", "git")),
		commands.Static("dup", desc("size", "file"), desc("status", "file")),
		commands.NewSource("tasks", func(context.Context) ([]commands.Descriptor, error) { return nil, boom }),
		commands.NewSource("panicky", func(context.Context) ([]commands.Descriptor, error) { panic("bad source") }),
		commands.Static("bad", commands.Descriptor{Name: "no handler"}),
		commands.Static("ip", desc("validate", "ip")),
	)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)

	assert.ErrorIs(t, err, ErrSource)
	assert.ErrorIs(t, err, commandregistry.ErrDuplicateName)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, commands.ErrInvalidDescriptor)
	assert.Contains(t, err.Error(), `source "panicky"`)
	assert.Contains(t, err.Error(), "bad source")

	// The duplicate-bearing source registered nothing; healthy sources still loaded.
	assert.Equal(t, []string{"git:status", "ip:validate"}, names(reg.All()))
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reg := commandregistry.New()
	err := Load(ctx, reg, commands.Static("general", desc("help", "")))

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, reg.Len())
}
