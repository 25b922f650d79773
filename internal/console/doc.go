// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package console is the user-facing output of command handlers: status lines,
// tables, panels and yes/no or multiple-choice prompts.
//
// Prompts use a line editor when stdin is a terminal and fall back to reading
// one line from the input stream otherwise, so handlers can be driven from tests
// and pipes.
package console
