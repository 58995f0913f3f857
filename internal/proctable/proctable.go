// Package proctable takes point-in-time snapshots of the operating system's
// process table and answers name lookups against them.
package proctable

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ErrUnsupportedPlatform is returned when processes cannot be enumerated on
// the host operating system.
var ErrUnsupportedPlatform = errors.New("this operating system is unsupported")

var supportedPlatforms = map[string]bool{
	"linux":   true,
	"darwin":  true,
	"windows": true,
	"freebsd": true,
	"openbsd": true,
	"netbsd":  true,
	"solaris": true,
	"aix":     true,
}

// Supported reports whether process enumeration is available on goos.
func Supported(goos string) bool {
	return supportedPlatforms[goos]
}

// Handle identifies a process within a single snapshot. Handles must not be
// carried over to a later snapshot; resolve the PID again instead.
type Handle struct {
	PID  int32
	Name string
}

func (h Handle) String() string {
	return fmt.Sprintf("%s (pid %d)", h.Name, h.PID)
}

// Directory produces snapshots of the running processes.
type Directory interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot is an immutable view of the process table. Handles keep the
// order the operating system listed them in.
type Snapshot struct {
	handles []Handle
	byPID   map[int32]Handle
}

func NewSnapshot(handles []Handle) *Snapshot {
	s := &Snapshot{
		handles: make([]Handle, len(handles)),
		byPID:   make(map[int32]Handle, len(handles)),
	}
	copy(s.handles, handles)
	for _, h := range handles {
		s.byPID[h.PID] = h
	}
	return s
}

// Len returns the number of processes in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.handles)
}

func (s *Snapshot) ByExactName(name string) []Handle {
	var found []Handle
	for _, h := range s.handles {
		if h.Name == name {
			found = append(found, h)
		}
	}
	return found
}

func (s *Snapshot) ByContains(substring string) []Handle {
	var found []Handle
	for _, h := range s.handles {
		if strings.Contains(h.Name, substring) {
			found = append(found, h)
		}
	}
	return found
}

// Resolve looks the PID up in this snapshot.
func (s *Snapshot) Resolve(pid int32) (Handle, bool) {
	h, ok := s.byPID[pid]
	return h, ok
}

// Table is the Directory backed by the live process table.
type Table struct{}

func New() *Table {
	return &Table{}
}

// Snapshot lists every process the current user can see. Processes that
// exit while the table is being read are skipped.
func (t *Table) Snapshot(ctx context.Context) (*Snapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	handles := make([]Handle, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		handles = append(handles, Handle{PID: p.Pid, Name: name})
	}
	return NewSnapshot(handles), nil
}

var _ Directory = (*Table)(nil)
