package vm

import "fmt"

// DeletePolicy controls what Delete does when "vagrant destroy" fails.
type DeletePolicy string

const (
	// DeleteBestEffort runs every delete step regardless of earlier failures.
	DeleteBestEffort DeletePolicy = "best-effort"
	// DeleteAbortOnFailure stops after the first step that exits non-zero.
	DeleteAbortOnFailure DeletePolicy = "abort-on-failure"
)

// ParseDeletePolicy parses s. An empty string yields DeleteBestEffort.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case "", DeleteBestEffort:
		return DeleteBestEffort, nil
	case DeleteAbortOnFailure:
		return DeleteAbortOnFailure, nil
	default:
		return "", fmt.Errorf("invalid delete policy %q (valid: %s, %s)", s, DeleteBestEffort, DeleteAbortOnFailure)
	}
}
