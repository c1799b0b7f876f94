// Package config provides the macman settings model, discovery of the
// configuration file and its INI encoding.
package config

import (
	"path/filepath"
	"sort"
)

const (
	// FileName is the name of the configuration file looked up by Find.
	FileName = "macman.cfg"

	// CoreSection holds global options such as the VM directory.
	CoreSection = "macman"

	// DefaultSection holds options shared by every VM.
	DefaultSection = "default"
)

// Built-in default option values for VMs.
var builtinDefaults = map[string]string{
	"cpus":              "1",
	"ram":               "512",
	"vram":              "16",
	"ip":                "34.34.34.10",
	"url":               "http://files.vagrantup.com/lucid64.box",
	"boot_mode":         "headless",
	"ssh_forward_agent": "true",
}

// Settings is the in-memory representation of a macman configuration.
type Settings struct {
	// Directory is where VM directories (and Vagrantfiles) are stored.
	Directory string

	// Default holds options applied to every VM.
	Default map[string]string

	// VMs maps a VM identifier to its own options.
	VMs map[string]map[string]string

	// root is the directory built-in defaults are relative to.
	root string
}

// NewSettings returns settings holding the built-in defaults. root is the
// directory the default VM directory is relative to, usually the current
// working directory.
func NewSettings(root string) *Settings {
	return &Settings{
		Directory: DefaultDirectory(root),
		Default:   BuiltinDefaults(),
		VMs:       make(map[string]map[string]string),
		root:      root,
	}
}

// DefaultDirectory returns the built-in VM directory for root.
func DefaultDirectory(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return filepath.Join(abs, "var", "vm")
}

// BuiltinDefaults returns a fresh copy of the built-in VM options.
func BuiltinDefaults() map[string]string {
	return copyMap(builtinDefaults)
}

// Get returns the value of option for vm, falling back to the default
// options. The boolean is false when neither defines the option.
func (s *Settings) Get(vm, option string) (string, bool) {
	if opts, ok := s.VMs[vm]; ok {
		if v, ok := opts[option]; ok {
			return v, true
		}
	}
	v, ok := s.Default[option]
	return v, ok
}

// Has reports whether vm is registered.
func (s *Settings) Has(vm string) bool {
	_, ok := s.VMs[vm]
	return ok
}

// Names returns the registered VM identifiers in sorted order.
func (s *Settings) Names() []string {
	names := make([]string, 0, len(s.VMs))
	for name := range s.VMs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Effective returns a new map holding the default options overlaid with the
// options of vm.
func (s *Settings) Effective(vm string) map[string]string {
	merged := copyMap(s.Default)
	for k, v := range s.VMs[vm] {
		merged[k] = v
	}
	return merged
}

// Set stores option=value in the options of vm, registering it if needed.
func (s *Settings) Set(vm, option, value string) {
	if s.VMs == nil {
		s.VMs = make(map[string]map[string]string)
	}
	opts, ok := s.VMs[vm]
	if !ok {
		opts = make(map[string]string)
		s.VMs[vm] = opts
	}
	opts[option] = value
}

// Register adds vm with an empty option map. It returns false if vm was
// already registered.
func (s *Settings) Register(vm string) bool {
	if s.Has(vm) {
		return false
	}
	if s.VMs == nil {
		s.VMs = make(map[string]map[string]string)
	}
	s.VMs[vm] = make(map[string]string)
	return true
}

// Unregister removes vm. It returns false if vm was not registered.
func (s *Settings) Unregister(vm string) bool {
	if !s.Has(vm) {
		return false
	}
	delete(s.VMs, vm)
	return true
}

// VMDirectory returns the directory holding the files of vm.
func (s *Settings) VMDirectory(vm string) string {
	return filepath.Join(s.Directory, vm)
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
