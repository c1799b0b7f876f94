package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Find returns the first configuration file found in origin or its ancestors.
//
// At each directory level, starting from origin (or the directory holding
// origin if it is a file), the following paths are checked in order:
//   - <dir>/macman.cfg
//   - <dir>/etc/macman.cfg
//
// The search stops at the filesystem root, so it may end up on
// /etc/macman.cfg. ErrConfigNotFound is returned if nothing matches.
func Find(origin string) (string, error) {
	dir, err := filepath.Abs(origin)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", origin, err)
	}
	if isFile(dir) {
		dir = filepath.Dir(dir)
	}

	for {
		for _, candidate := range candidates(dir) {
			if isFile(candidate) {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// DefaultPath returns where a new configuration file is created when Find
// fails in cwd.
func DefaultPath(cwd string) string {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		abs = cwd
	}
	return filepath.Join(abs, "etc", FileName)
}

func candidates(dir string) []string {
	return []string{
		filepath.Join(dir, FileName),
		filepath.Join(dir, "etc", FileName),
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
