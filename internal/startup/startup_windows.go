//go:build windows
// +build windows

package startup

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/windows/registry"
)

const Supported = true

const (
	runKey    = `Software\Microsoft\Windows\CurrentVersion\Run`
	valueName = "Process Machete"
)

func addItem(log *zap.Logger, exePath string) (Outcome, error) {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return Unsupported, fmt.Errorf("failed to create the registry key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(valueName, exePath); err != nil {
		return Unsupported, fmt.Errorf("failed to set the registry value: %w", err)
	}
	log.Debug("Set startup registry value", zap.String("key", runKey), zap.String("path", exePath))
	return Succeeded, nil
}

func removeItem(log *zap.Logger) (Outcome, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return Succeeded, nil
	}
	if err != nil {
		return Unsupported, fmt.Errorf("failed to open the registry key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(valueName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return Unsupported, fmt.Errorf("failed to delete the registry value: %w", err)
	}
	log.Debug("Deleted startup registry value", zap.String("key", runKey))
	return Succeeded, nil
}
