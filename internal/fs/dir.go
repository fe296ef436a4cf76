// Package fs wraps the filesystem and environment lookups gitstamp needs.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// NotADirectoryError is returned when a repository path exists but is a file.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}

// CanonicalDir returns the absolute, symlink-free form of dir, which must exist
// and be a directory. An empty dir means the current working directory.
func CanonicalDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: resolved}
	}
	return resolved, nil
}
