package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"dtc-go/packages/compiler/templates"
)

// ViewEntry declares one view of a manifest
type ViewEntry struct {
	Name       string `yaml:"name" validate:"required"`
	File       string `yaml:"file" validate:"required_without=Source,excluded_with=Source"`
	Source     string `yaml:"source" validate:"required_without=File"`
	Element    string `yaml:"element"`
	Attributes string `yaml:"attributes"`
	Arrays     string `yaml:"arrays"`
	String     bool   `yaml:"string"`
	Unminified bool   `yaml:"unminified"`
}

// Manifest lists the views of a project
type Manifest struct {
	Views []ViewEntry `yaml:"views" validate:"required,min=1,dive"`

	// Dir is the directory relative file paths resolve against
	Dir string `yaml:"-"`
}

var manifestValidate = validator.New()

// LoadManifest reads and validates a YAML manifest
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	manifest.Dir = filepath.Dir(path)
	return manifest, nil
}

// ParseManifest decodes and validates manifest data
func ParseManifest(data []byte) (*Manifest, error) {
	manifest := &Manifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := manifestValidate.Struct(manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return manifest, nil
}

// Files returns the view source files of the manifest
func (m *Manifest) Files() []string {
	var files []string
	for _, entry := range m.Views {
		if entry.File != "" {
			files = append(files, m.resolve(entry.File))
		}
	}
	return files
}

func (m *Manifest) resolve(file string) string {
	if filepath.IsAbs(file) || m.Dir == "" {
		return file
	}
	return filepath.Join(m.Dir, file)
}

// Register reads each view's source and registers it with views
func (m *Manifest) Register(views *templates.Views) error {
	for _, entry := range m.Views {
		source := entry.Source
		var file string
		if entry.File != "" {
			file = m.resolve(entry.File)
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("view %s: %w", entry.Name, err)
			}
			source = string(data)
		}
		views.Register(entry.Name, source, &templates.ViewOptions{
			Element:    entry.Element,
			Attributes: entry.Attributes,
			Arrays:     entry.Arrays,
			String:     entry.String,
			Unminified: entry.Unminified,
			File:       file,
		})
	}
	return nil
}
