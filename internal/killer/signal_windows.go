//go:build windows
// +build windows

package killer

import (
	"fmt"

	"github.com/javanhut/machete/internal/proctable"
	"github.com/shirou/gopsutil/v4/process"
)

type windowsSignaler struct{}

// Platform returns the Signaler for the running operating system.
func Platform() Signaler {
	return windowsSignaler{}
}

// Graceful is unsupported: Windows has no signal a process can intercept
// from outside its console, so callers fall back to Forceful.
func (windowsSignaler) Graceful(h proctable.Handle) error {
	return ErrSignalUnsupported
}

func (windowsSignaler) Forceful(h proctable.Handle) error {
	p, err := process.NewProcess(h.PID)
	if err != nil {
		return fmt.Errorf("unable to find pid %d: %w", h.PID, err)
	}
	// TerminateProcess
	return p.Kill()
}
