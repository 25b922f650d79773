// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry provides the central catalog of command descriptors.
// It enforces a flat, category-independent name namespace and maintains the category
// index as a derived view in registration order. It satisfies the commands.Catalog interface.
package commandregistry
