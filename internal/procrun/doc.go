// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package procrun runs external programs for command handlers.
//
// Output is captured up to a fixed size and can also be streamed to the caller's
// writers. A cancelled context kills the child process. Handlers hold a Runner so
// tests can replace the operating system with a script.
package procrun
