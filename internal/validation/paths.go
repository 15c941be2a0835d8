// Package validation sanitizes the filesystem paths sift manages itself:
// the history database and the line index. The search target path is
// deliberately not validated here; whether it can be read is the search
// engine's call.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const maxPathLength = 4096

// ExpandPath expands a leading ~/ to the home directory and makes the
// path absolute.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	} else if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("invalid tilde usage in %q", path)
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = abs
	}

	return filepath.Clean(path), nil
}

// ValidateStatePath checks a config-sourced path for the usual path
// injection tricks and returns its expanded form.
func ValidateStatePath(path string) (string, error) {
	if strings.Contains(path, "\x00") {
		return "", fmt.Errorf("path contains null bytes")
	}
	if len(path) > maxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", maxPathLength)
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	for _, component := range strings.Split(filepath.ToSlash(expanded), "/") {
		if component == ".." {
			return "", fmt.Errorf("directory traversal not allowed")
		}
	}

	return expanded, nil
}

// EnsureStateDir validates dir and creates it if missing.
func EnsureStateDir(dir string) (string, error) {
	validated, err := ValidateStatePath(dir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(validated)
	switch {
	case os.IsNotExist(err):
		if mkErr := os.MkdirAll(validated, 0o755); mkErr != nil {
			return "", fmt.Errorf("failed to create directory: %w", mkErr)
		}
	case err != nil:
		return "", fmt.Errorf("checking directory: %w", err)
	case !info.IsDir():
		return "", fmt.Errorf("path exists but is not a directory: %s", validated)
	}

	return validated, nil
}
