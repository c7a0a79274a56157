package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureUserConfig makes sure the data dir carries an editable
// config.yml, seeding it from the shipped default on first run. The
// returned path is the one the engine loads; later edits to the shipped
// default never overwrite a user's copy.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat user config: %w", err)
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		return "", fmt.Errorf("open default config: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", fmt.Errorf("create user config: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("seed user config: %w", err)
	}
	return userPath, nil
}
