// Package output renders the VM listing printed by "macman list".
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jbweber/macman/internal/status"
)

// Format names a listing format.
type Format string

const (
	// FormatTable is a human-readable table, one row per VM.
	FormatTable Format = "table"
	// FormatYAML is a YAML stream, one document per VM.
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON array for machine consumption.
	FormatJSON Format = "json"
)

// Formats lists the supported formats, default first.
var Formats = []Format{FormatTable, FormatYAML, FormatJSON}

// Formatter renders a VM listing.
type Formatter interface {
	FormatList(list []status.Status) (string, error)
}

// Options controls how a listing is rendered.
type Options struct {
	Format Format
	// NoHeaders omits the header row of the table format.
	NoHeaders bool
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q (valid: %s)", s, FormatNames())
}

// FormatNames returns the supported format names, comma separated.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Write renders list according to opts and writes it to w.
func Write(w io.Writer, opts Options, list []status.Status) error {
	var f Formatter
	switch opts.Format {
	case FormatTable:
		f = &TableFormatter{NoHeaders: opts.NoHeaders}
	case FormatYAML:
		f = &YAMLFormatter{}
	case FormatJSON:
		f = &JSONFormatter{}
	default:
		_, err := ParseFormat(string(opts.Format))
		return err
	}

	out, err := f.FormatList(list)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
