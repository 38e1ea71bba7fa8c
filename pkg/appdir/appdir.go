// Package appdir locates the per-user state directory (~/.rs2tools).
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const dirName = ".rs2tools"

var (
	once     sync.Once
	cached   string
	cacheErr error
)

// AppDir returns the state directory path without creating it.
func AppDir() (string, error) {
	once.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			cacheErr = fmt.Errorf("appdir: %w", err)
			return
		}
		cached = filepath.Join(home, dirName)
	})
	return cached, cacheErr
}

// Ensure creates the state directory if needed and returns its path.
func Ensure() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("appdir: create %s: %w", dir, err)
	}
	return dir, nil
}

// Resolve joins a relative name onto the state directory. Absolute paths are
// returned as given.
func Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := Ensure()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
