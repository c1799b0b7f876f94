// Package status reports the local state of a VM: whether its Vagrantfile
// has been generated and whether its base box is present.
package status

import (
	"os"

	"github.com/jbweber/macman/internal/naming"
)

// Phase is the configuration state of a VM.
type Phase string

const (
	// PhaseUnconfigured means no Vagrantfile exists in the VM directory.
	PhaseUnconfigured Phase = "Unconfigured"
	// PhaseConfigured means the Vagrantfile has been generated.
	PhaseConfigured Phase = "Configured"
)

// Status is a snapshot of a VM's files on disk.
type Status struct {
	Name       string `json:"name" yaml:"name"`
	Directory  string `json:"directory" yaml:"directory"`
	Phase      Phase  `json:"phase" yaml:"phase"`
	BaseBox    string `json:"baseBox,omitempty" yaml:"baseBox,omitempty"`
	Downloaded bool   `json:"downloaded" yaml:"downloaded"`
}

// IsConfigured reports whether a Vagrantfile exists in dir.
func IsConfigured(dir string) bool {
	return exists(naming.VagrantfilePath(dir))
}

// IsDownloaded reports whether the base box for url exists next to dir.
func IsDownloaded(dir, url string) bool {
	box, err := naming.BaseBoxPath(dir, url)
	if err != nil {
		return false
	}
	return exists(box)
}

// Inspect returns the status of the VM name stored in dir whose base box is
// fetched from url.
func Inspect(name, dir, url string) Status {
	st := Status{
		Name:      name,
		Directory: dir,
		Phase:     PhaseUnconfigured,
	}
	if IsConfigured(dir) {
		st.Phase = PhaseConfigured
	}
	if box, err := naming.BaseBoxPath(dir, url); err == nil {
		st.BaseBox = box
		st.Downloaded = exists(box)
	}
	return st
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
