// Package startup registers the executable to run when the user logs in.
package startup

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

type Outcome int

const (
	Succeeded Outcome = iota
	// Unsupported means nothing was changed because the operating system has
	// no registration backend.
	Unsupported
)

// Add registers exePath as a startup item for the current user.
func Add(log *zap.Logger, exePath string) (Outcome, error) {
	path, err := prepareExePath(exePath)
	if err != nil {
		return Unsupported, fmt.Errorf("failed to prepare the executable path: %w", err)
	}
	return addItem(log, path)
}

// Remove deletes the startup item. Removing an item that was never added
// succeeds.
func Remove(log *zap.Logger, exePath string) (Outcome, error) {
	if _, err := prepareExePath(exePath); err != nil {
		return Unsupported, fmt.Errorf("failed to prepare the executable path: %w", err)
	}
	return removeItem(log)
}

func prepareExePath(exePath string) (string, error) {
	if filepath.IsAbs(exePath) {
		return exePath, nil
	}
	abs, err := filepath.Abs(exePath)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
