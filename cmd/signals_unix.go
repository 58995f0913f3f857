//go:build !windows
// +build !windows

package main

import (
	"os"
	"syscall"
)

// POSIX systems send SIGTERM on logout and shutdown.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
