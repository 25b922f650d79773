// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package allcommands lists every command source in registration order.
package allcommands

import (
	"github.com/matt-FFFFFF/plasma/internal/commands"
	"github.com/matt-FFFFFF/plasma/internal/commands/env"
	"github.com/matt-FFFFFF/plasma/internal/commands/file"
	"github.com/matt-FFFFFF/plasma/internal/commands/general"
	"github.com/matt-FFFFFF/plasma/internal/commands/git"
	"github.com/matt-FFFFFF/plasma/internal/commands/ip"
	"github.com/matt-FFFFFF/plasma/internal/commands/project"
	"github.com/matt-FFFFFF/plasma/internal/commands/server"
	"github.com/matt-FFFFFF/plasma/internal/commands/tasks"
	"github.com/matt-FFFFFF/plasma/internal/config"
)

// Sources returns the built-in sources followed by the task manifest.
// The order here is the registration order and therefore the listing order.
func Sources(cfg config.Config, catalog commands.Catalog) []commands.Source {
	return []commands.Source{
		general.Source(catalog),
		file.Source(),
		git.Source(),
		server.Source(),
		ip.Source(),
		project.Source(),
		env.Source(cfg),
		tasks.Source(cfg.TasksFile),
	}
}
