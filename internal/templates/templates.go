// Package templates provides embedded sample config files for
// sealupd init-config.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed sealupd.*
var templatesFS embed.FS

// ErrNotFound is returned for an unknown template name.
var ErrNotFound = errors.New("template not found")

// Template represents a sample config file with metadata.
type Template struct {
	Name        string // Format name, e.g. "toml"
	FileName    string // Suggested file name
	Description string
	Content     []byte
}

// Available templates with their descriptions.
var templateDescriptions = map[string]string{
	"toml": "TOML config with every option documented",
	"yaml": "YAML config with every option documented",
}

// List returns all available template names sorted alphabetically.
func List() []string {
	entries, err := templatesFS.ReadDir(".")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimPrefix(path.Ext(entry.Name()), "."))
	}

	sort.Strings(names)
	return names
}

// Get returns a template by name. "yml" is accepted for "yaml".
func Get(name string) (*Template, error) {
	name = strings.ToLower(name)
	if name == "yml" {
		name = "yaml"
	}

	filename := "sealupd." + name
	content, err := templatesFS.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (available: %s)", ErrNotFound, name, strings.Join(List(), ", "))
		}
		return nil, fmt.Errorf("failed to read template '%s': %w", name, err)
	}

	return &Template{
		Name:        name,
		FileName:    filename,
		Description: GetDescription(name),
		Content:     content,
	}, nil
}

// GetDescription returns the description for a template.
func GetDescription(name string) string {
	if desc, ok := templateDescriptions[name]; ok {
		return desc
	}
	return "Custom template"
}
