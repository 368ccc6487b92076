/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package modelmap

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"text/template"

	"gopkg.in/yaml.v3"
)

// ModelMap is the parsed model-map document: the target package plus the
// models to register.
type ModelMap struct {
	// Package is the Go package the generated file belongs to.
	Package string `yaml:"package"`
	// Models lists the model registrations to generate.
	Models []ModelDef `yaml:"models"`
}

// ModelDef declares one model registration.
type ModelDef struct {
	// Name is the model name used as the collection key.
	Name string `yaml:"name"`
	// Type is the Go struct type; defaults to Name when empty.
	Type string `yaml:"type,omitempty"`
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load reads and parses a model-map YAML file.
func Load(path string) (*ModelMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model map: %w", err)
	}

	var m ModelMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the model map for the mistakes the generator cannot
// tolerate: missing package, empty model list, bad identifiers, duplicates.
func (m *ModelMap) Validate() error {
	if !identPattern.MatchString(m.Package) {
		return fmt.Errorf("model map: invalid package name %q", m.Package)
	}
	if len(m.Models) == 0 {
		return fmt.Errorf("model map: no models declared")
	}

	seen := make(map[string]bool, len(m.Models))
	for _, def := range m.Models {
		if !identPattern.MatchString(def.Name) {
			return fmt.Errorf("model map: invalid model name %q", def.Name)
		}
		if def.Type != "" && !identPattern.MatchString(def.Type) {
			return fmt.Errorf("model map: invalid type %q for model %q", def.Type, def.Name)
		}
		if seen[def.Name] {
			return fmt.Errorf("model map: duplicate model %q", def.Name)
		}
		seen[def.Name] = true
	}
	return nil
}

// GoType returns the struct type backing the model.
func (d ModelDef) GoType() string {
	if d.Type != "" {
		return d.Type
	}
	return d.Name
}

var generatedTemplate = template.Must(template.New("modelmap").Parse(
	`// Code generated by modelmap. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/suparena/objectstore"
)

func init() {
{{- range .Models}}
	objectstore.RegisterModel[{{.GoType}}]("{{.Name}}")
{{- end}}
}
`))

// Generate writes the registration file for the model map.
func (m *ModelMap) Generate(w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := generatedTemplate.Execute(w, m); err != nil {
		return fmt.Errorf("failed to render registrations: %w", err)
	}
	return nil
}

// Run loads the model map at inputPath and writes the generated
// registration file to outputPath.
func Run(inputPath, outputPath string) error {
	m, err := Load(inputPath)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := m.Generate(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
