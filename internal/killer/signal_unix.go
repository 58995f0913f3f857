//go:build !windows
// +build !windows

package killer

import (
	"fmt"

	"github.com/javanhut/machete/internal/proctable"
	"github.com/shirou/gopsutil/v4/process"
)

type posixSignaler struct{}

// Platform returns the Signaler for the running operating system.
func Platform() Signaler {
	return posixSignaler{}
}

func (posixSignaler) Graceful(h proctable.Handle) error {
	p, err := lookup(h)
	if err != nil {
		return err
	}
	// SIGTERM
	return p.Terminate()
}

func (posixSignaler) Forceful(h proctable.Handle) error {
	p, err := lookup(h)
	if err != nil {
		return err
	}
	// SIGKILL
	return p.Kill()
}

func lookup(h proctable.Handle) (*process.Process, error) {
	p, err := process.NewProcess(h.PID)
	if err != nil {
		return nil, fmt.Errorf("unable to find pid %d: %w", h.PID, err)
	}
	return p, nil
}
