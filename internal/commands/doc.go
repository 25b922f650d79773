// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commands defines the building blocks shared by the registry, the dispatcher and
// every command source: the immutable Descriptor, the Handler capability, the declarative
// ArgSpec used to validate arguments before a handler runs, and the Source interface that
// the discovery loader enumerates at startup.
//
// Command implementations live in the sub-packages, one per category.
package commands
