// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-carried slog logger for plasma.
//
// Diagnostics are written to stderr so that they never mix with command output on stdout.
// The default is a pretty console handler; the JSON handler can be selected through
// configuration. The level is shared by every logger through LevelVar and defaults to WARN.
package ctxlog
