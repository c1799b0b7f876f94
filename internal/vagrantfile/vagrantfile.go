// Package vagrantfile renders the Vagrantfile of a VM from a text/template.
//
// The template is executed against a flat string map: the VM's effective
// settings plus "name" and "directory". Referencing a key that is not in the
// map is an error.
package vagrantfile

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed templates/Vagrantfile.tmpl
var defaultTemplate string

// LoadTemplate returns the contents of the template at path, or the
// built-in template when path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return defaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return string(data), nil
}

// Render executes text against context and returns the result.
func Render(text string, context map[string]string) ([]byte, error) {
	tmpl, err := template.New("Vagrantfile").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return buf.Bytes(), nil
}

// Generate renders text against context and writes it to path, creating
// parent directories as needed and overwriting any existing file.
func Generate(text, path string, context map[string]string) error {
	data, err := Render(text, context)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
