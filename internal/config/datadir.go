package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDir returns the default data directory (~/.affiche), or a
// relative fallback when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".affiche"
	}
	return filepath.Join(home, ".affiche")
}

// PrepareDataDir resolves and creates the data directory.
func PrepareDataDir(dir string) (string, error) {
	if dir == "" {
		dir = DefaultDataDir()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return abs, nil
}
