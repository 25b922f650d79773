// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matt-FFFFFF/plasma/internal/commands"
)

var (
	// ErrDuplicateName is returned when a command name is already registered, in any category.
	ErrDuplicateName = errors.New("duplicate command name")
	// ErrNotFound is returned when a command name is not registered.
	ErrNotFound = errors.New("command not found")
	// ErrUnknownCategory is returned when no command was ever registered under a category.
	ErrUnknownCategory = errors.New("unknown category")
)

var _ commands.Catalog = (*Registry)(nil)

// Registry holds all command descriptors and the category index derived from them.
// It is written during discovery only and read afterwards, so it carries no lock.
type Registry struct {
	byName     map[string]int // index into ordered
	ordered    []commands.Descriptor
	byCategory map[commands.Category][]int
	categories []commands.Category
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byName:     make(map[string]int),
		byCategory: make(map[commands.Category][]int),
	}
}

// Register validates and inserts a descriptor.
// On error the registry is left unchanged.
func (r *Registry) Register(d commands.Descriptor) error {
	return r.RegisterAll(d)
}

// RegisterAll inserts the descriptors atomically: either all of them are registered or,
// if any is invalid or clashes with an existing or sibling name, none is.
func (r *Registry) RegisterAll(ds ...commands.Descriptor) error {
	pending := make(map[string]struct{}, len(ds))

	for _, d := range ds {
		if err := d.Validate(); err != nil {
			return err
		}

		if existing, ok := r.byName[d.Name]; ok {
			return fmt.Errorf("%w: %q is already registered as %q",
				ErrDuplicateName, d.Name, r.ordered[existing].QualifiedName())
		}

		if _, ok := pending[d.Name]; ok {
			return fmt.Errorf("%w: %q is declared twice", ErrDuplicateName, d.Name)
		}

		pending[d.Name] = struct{}{}
	}

	for _, d := range ds {
		r.insert(d.Normalize())
	}

	return nil
}

func (r *Registry) insert(d commands.Descriptor) {
	idx := len(r.ordered)
	r.ordered = append(r.ordered, d)
	r.byName[d.Name] = idx

	if _, ok := r.byCategory[d.Category]; !ok {
		r.categories = append(r.categories, d.Category)
	}

	r.byCategory[d.Category] = append(r.byCategory[d.Category], idx)
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (commands.Descriptor, error) {
	idx, ok := r.byName[name]
	if !ok {
		return commands.Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return r.ordered[idx], nil
}

// All returns every descriptor in registration order.
func (r *Registry) All() []commands.Descriptor {
	return slices.Clone(r.ordered)
}

// ByCategory returns the descriptors of a category in registration order.
func (r *Registry) ByCategory(c commands.Category) ([]commands.Descriptor, error) {
	idxs, ok := r.byCategory[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	out := make([]commands.Descriptor, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, r.ordered[i])
	}

	return out, nil
}

// Categories returns the category names in first-registration order.
func (r *Registry) Categories() []commands.Category {
	return slices.Clone(r.categories)
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.ordered)
}
