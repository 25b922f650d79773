// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch resolves a requested command against the catalog, validates its
// arguments and runs its handler with fault isolation.
//
// Every outcome is a Result whose Status is one of success, handled_failure, fault or
// rejected. Handler failures never escape as panics or raw errors: a panicking or
// misbehaving handler becomes a fault with its own exit code, distinct from the codes
// handlers may choose themselves.
package dispatch
