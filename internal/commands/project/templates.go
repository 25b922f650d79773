// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

//go:embed licenses/*.tmpl
var templateFS embed.FS

// ErrUnknownLicense is returned for an identifier with no template.
var ErrUnknownLicense = errors.New("unknown license")

// License is an embedded license template.
type License struct {
	ID   string
	Name string
}

// Licenses lists the available templates in prompt order.
var Licenses = []License{
	{ID: "mit", Name: "MIT License"},
	{ID: "apache", Name: "Apache License 2.0"},
	{ID: "bsd3", Name: "BSD 3-Clause License"},
	{ID: "unlicense", Name: "Unlicense"},
}

// TemplateData fills the copyright line of a template.
type TemplateData struct {
	Year   int
	Author string
}

// Lookup finds a license by case-insensitive identifier.
func Lookup(id string) (License, bool) {
	for _, l := range Licenses {
		if strings.EqualFold(l.ID, id) {
			return l, true
		}
	}

	return License{}, false
}

// Render expands the template of the license with the given identifier.
func Render(id string, data TemplateData) ([]byte, error) {
	l, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLicense, id)
	}

	tmpl, err := template.ParseFS(templateFS, "licenses/"+l.ID+".tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", l.ID, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s template: %w", l.ID, err)
	}

	return bytes.TrimLeft(buf.Bytes(), "\n"), nil
}

func identifiers() string {
	ids := make([]string, len(Licenses))
	for i, l := range Licenses {
		ids[i] = l.ID
	}

	return strings.Join(ids, ", ")
}
