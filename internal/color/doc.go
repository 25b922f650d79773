// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes.
// Whether color is used is decided once at start-up from NO_COLOR, FORCE_COLOR
// and whether stdout is a terminal.
package color
