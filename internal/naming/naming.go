// Package naming provides the file naming conventions macman uses for VM
// directories: the generated Vagrantfile and the base box file derived from
// a VM's url setting.
package naming

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Vagrantfile is the name of the machine-description file written in each
// VM directory.
const Vagrantfile = "Vagrantfile"

// SourceKind identifies how a base box is fetched.
type SourceKind int

const (
	// SourceLocal is a path on the local filesystem.
	SourceLocal SourceKind = iota
	// SourceHTTP is an http:// or https:// URL.
	SourceHTTP
	// SourceSSH is an ssh:// location handed to rsync.
	SourceSSH
)

const sshPrefix = "ssh://"

// ClassifySource returns the kind of raw and the location to hand to the
// transfer tool. For ssh:// sources the scheme prefix is stripped
// (e.g. ssh://user@host:boxes/a.box → user@host:boxes/a.box).
func ClassifySource(raw string) (SourceKind, string) {
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return SourceHTTP, raw
	case strings.HasPrefix(raw, sshPrefix):
		return SourceSSH, strings.TrimPrefix(raw, sshPrefix)
	default:
		return SourceLocal, raw
	}
}

// BaseBoxFilename returns the file name of the base box referenced by raw.
//
// Examples:
//
//	http://files.vagrantup.com/lucid64.box?x=1 → lucid64.box
//	ssh://user@host/boxes/base.box            → base.box
//	/srv/boxes/base.box                       → base.box
func BaseBoxFilename(raw string) (string, error) {
	kind, loc := ClassifySource(raw)

	var name string
	switch kind {
	case SourceHTTP:
		u, err := url.Parse(loc)
		if err != nil {
			return "", fmt.Errorf("invalid url %q: %w", raw, err)
		}
		name = path.Base(u.Path)
	case SourceSSH:
		name = path.Base(loc)
	default:
		name = filepath.Base(loc)
	}

	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("no file name in url %q", raw)
	}
	return name, nil
}

// BaseBoxPath returns where the base box for a VM stored in vmDir lives.
// Boxes are shared between VMs, so they sit in the parent of vmDir.
func BaseBoxPath(vmDir, raw string) (string, error) {
	name, err := BaseBoxFilename(raw)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(vmDir), name), nil
}

// VagrantfilePath returns the path of the Vagrantfile for a VM stored in
// vmDir.
func VagrantfilePath(vmDir string) string {
	return filepath.Join(vmDir, Vagrantfile)
}
