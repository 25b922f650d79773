// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultCategory is assigned to descriptors registered without a category.
const DefaultCategory Category = "general"

// ProgramName is the name users type to run plasma, used in hints and usage lines.
const ProgramName = "plasma"

// QualifierSeparator separates the category from the command name in a qualified name,
// e.g. `git:status`.
const QualifierSeparator = ":"

var (
	// ErrInvalidDescriptor is returned when a descriptor is not well formed.
	ErrInvalidDescriptor = errors.New("invalid command descriptor")
	// ErrInvalidCategory is returned when a category key does not match the allowed pattern.
	ErrInvalidCategory = errors.New("invalid category")

	categoryPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	namePattern     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

// Category is a validated key grouping related commands for listing.
type Category string

// ParseCategory validates s as a category key.
// The empty string maps to DefaultCategory.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return DefaultCategory, nil
	}

	if !categoryPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q must match %s", ErrInvalidCategory, s, categoryPattern.String())
	}

	return Category(s), nil
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Descriptor is the immutable record describing one invokable command.
// The registry keeps its own copy, so changing a Descriptor value after it has been
// registered has no effect on the registry.
type Descriptor struct {
	// Name is the unique identifier of the command across all categories.
	Name string
	// Category groups related commands in listings.
	Category Category
	// Summary is the one-line description shown in listings.
	Summary string
	// Help is the longer text shown by the help command.
	Help string
	// Args optionally constrains the accepted arguments. Nil means anything goes.
	Args *ArgSpec
	// Handler is the unit of work.
	Handler Handler
}

// Normalize returns a copy of the descriptor with defaults applied.
func (d Descriptor) Normalize() Descriptor {
	if d.Category == "" {
		d.Category = DefaultCategory
	}

	return d
}

// QualifiedName returns `category:name`.
func (d Descriptor) QualifiedName() string {
	return d.Normalize().Category.String() + QualifierSeparator + d.Name
}

// Usage returns the one-line usage string for the command.
func (d Descriptor) Usage() string {
	if d.Args == nil {
		return d.QualifiedName() + " [args...]"
	}

	return d.Args.Usage(d.QualifiedName())
}

// Validate checks that the descriptor is well formed.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDescriptor)
	}

	if !namePattern.MatchString(d.Name) {
		return fmt.Errorf("%w: name %q must match %s", ErrInvalidDescriptor, d.Name, namePattern.String())
	}

	if _, err := ParseCategory(string(d.Category)); err != nil {
		return errors.Join(fmt.Errorf("%w: command %q", ErrInvalidDescriptor, d.Name), err)
	}

	if d.Handler == nil {
		return fmt.Errorf("%w: command %q has no handler", ErrInvalidDescriptor, d.Name)
	}

	if f, ok := d.Handler.(HandlerFunc); ok && f == nil {
		return fmt.Errorf("%w: command %q has a nil handler func", ErrInvalidDescriptor, d.Name)
	}

	if d.Args != nil {
		if err := d.Args.Validate(); err != nil {
			return errors.Join(fmt.Errorf("%w: command %q", ErrInvalidDescriptor, d.Name), err)
		}
	}

	return nil
}
