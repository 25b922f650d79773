// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package allcommands

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/plasma/internal/commandregistry"
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/commands/tasks"
	"github.com/matt-FFFFFF/plasma/internal/config"
	"github.com/matt-FFFFFF/plasma/internal/discovery"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, manifest string) *commandregistry.Registry {
	t.Helper()

	fs := afero.NewMemMapFs()
	if manifest != "" {
		require.NoError(t, afero.WriteFile(fs, "/proj/.plasma.yaml", []byte(manifest), 0o644))
	}

	stubs := gostub.Stub(&tasks.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	cfg := config.Config{Shell: "/bin/zsh", Home: "/home/dev", Editor: "nano", TasksFile: "/proj/.plasma.yaml"}
	reg := commandregistry.New()
	require.NoError(t, discovery.Load(context.Background(), reg, Sources(cfg, reg)...))

	return reg
}

func TestBuiltinsRegisterInOrder(t *testing.T) {
	reg := load(t, "")

	assert.Equal(t, []commands.Category{"general", "file", "git", "server", "ip", "project", "env"}, reg.Categories())

	for _, name := range []string{"help", "size", "backup", "status", "sync", "undo", "kill", "find", "ports",
		"list", "validate", "subnet", "ping", "port", "license", "path", "shell", "vars"} {
		_, err := reg.Get(name)
		assert.NoError(t, err, name)
	}
}

func TestManifestTasksAppendAfterBuiltins(t *testing.T) {
	reg := load(t, "tasks:\n  - name: build\n    category: dev\n    run: make\n")

	cats := reg.Categories()
	assert.Equal(t, commands.Category("dev"), cats[len(cats)-1])

	d, err := reg.Get("build")
	require.NoError(t, err)
	assert.Equal(t, "dev:build", d.QualifiedName())
}

func TestManifestClashFailsDiscovery(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p.yaml", []byte("tasks:\n  - name: status\n    run: git status\n"), 0o644))

	stubs := gostub.Stub(&tasks.FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	reg := commandregistry.New()
	err := discovery.Load(context.Background(), reg, Sources(config.Config{TasksFile: "/p.yaml"}, reg)...)

	require.Error(t, err)
	assert.ErrorIs(t, err, commandregistry.ErrDuplicateName)
	assert.ErrorIs(t, err, discovery.ErrSource)

	_, err = reg.Get("help")
	assert.NoError(t, err, "healthy sources stay registered")
}
