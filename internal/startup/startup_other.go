//go:build !windows
// +build !windows

package startup

import "go.uber.org/zap"

// Supported reports whether this build can manage startup items.
const Supported = false

func addItem(log *zap.Logger, _ string) (Outcome, error) {
	log.Error("You must add the startup item manually on your operating system! Sorry :(")
	return Unsupported, nil
}

func removeItem(log *zap.Logger) (Outcome, error) {
	log.Error("You must remove the startup item manually on your operating system! Sorry :(")
	return Unsupported, nil
}
