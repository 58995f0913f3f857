//go:build windows
// +build windows

package main

import "os"

// Windows only delivers os.Interrupt.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
