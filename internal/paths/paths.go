package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dotConfig = ".config"
	appName   = "synthonia"
	dbName    = "synthonia.db"
)

// Dir is ~/.config/synthonia.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dotConfig, appName), nil
}

// Journal returns the journal database path, creating its parent directory.
// A non-empty override is used as is.
func Journal(override string) (string, error) {
	if override != "" {
		if err := os.MkdirAll(filepath.Dir(override), 0o700); err != nil {
			return "", fmt.Errorf("failed to create journal directory: %w", err)
		}
		return override, nil
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", appName, err)
	}
	return filepath.Join(dir, dbName), nil
}
