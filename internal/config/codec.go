package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
)

// directoryOption is the CoreSection option holding the VM directory.
const directoryOption = "directory"

// loadOptions match the behaviour users expect from hand-edited files:
// option names are case-insensitive and stored lowercase, and an inline
// comment needs whitespace before its # or ; so URLs and values keep them.
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:          true,
	SpaceBeforeInlineComment: true,
}

// IsReservedName reports whether name cannot be used as a VM identifier
// because its section would be read back as something else.
func IsReservedName(name string) bool {
	switch name {
	case CoreSection, DefaultSection, ini.DefaultSection:
		return true
	}
	return false
}

// Decode parses an INI document into Settings. root is the directory the
// built-in defaults are relative to.
func Decode(r io.Reader, root string) (*Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if keys := f.Section(ini.DefaultSection).KeyStrings(); len(keys) > 0 {
		return nil, fmt.Errorf("failed to parse configuration: option %q outside of any section", keys[0])
	}

	s := NewSettings(root)

	if sec, err := f.GetSection(CoreSection); err == nil && sec.HasKey(directoryOption) {
		s.Directory = sec.Key(directoryOption).String()
	}

	if sec, err := f.GetSection(DefaultSection); err == nil {
		for k, v := range sec.KeysHash() {
			s.Default[k] = v
		}
	}

	for _, sec := range f.Sections() {
		switch sec.Name() {
		case CoreSection, DefaultSection, ini.DefaultSection:
			continue
		}
		s.VMs[sec.Name()] = sec.KeysHash()
	}

	return s, nil
}

// Encode writes s to w as an INI document.
//
// Sections are emitted in a fixed order: the core section, the default
// section, then one section per VM sorted by identifier. Options within a
// section are sorted. Core and default options equal to their built-in value
// are omitted, and so are the core and default sections when left empty.
func Encode(w io.Writer, s *Settings) error {
	builtin := NewSettings(s.root)
	f := ini.Empty()

	core := map[string]string{}
	if s.Directory != builtin.Directory {
		core[directoryOption] = s.Directory
	}
	if err := addSection(f, CoreSection, core); err != nil {
		return err
	}

	defaults := map[string]string{}
	for k, v := range s.Default {
		if bv, ok := builtin.Default[k]; ok && bv == v {
			continue
		}
		defaults[k] = v
	}
	if err := addSection(f, DefaultSection, defaults); err != nil {
		return err
	}

	for _, name := range s.Names() {
		if IsReservedName(name) {
			return fmt.Errorf("%q is a reserved section name and cannot hold a VM", name)
		}
		sec, err := f.NewSection(name)
		if err != nil {
			return fmt.Errorf("failed to add section %q: %w", name, err)
		}
		if err := addKeys(sec, s.VMs[name]); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

// Load reads and decodes the configuration file at path.
func Load(path, root string) (*Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	s, err := Decode(file, root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save encodes s and atomically replaces the file at path. Parent
// directories are created as needed.
func Save(path string, s *Settings) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func addSection(f *ini.File, name string, kv map[string]string) error {
	if len(kv) == 0 {
		return nil
	}
	sec, err := f.NewSection(name)
	if err != nil {
		return fmt.Errorf("failed to add section %q: %w", name, err)
	}
	return addKeys(sec, kv)
}

func addKeys(sec *ini.Section, kv map[string]string) error {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := sec.NewKey(k, kv[k]); err != nil {
			return fmt.Errorf("failed to add option %q to section %q: %w", k, sec.Name(), err)
		}
	}
	return nil
}
