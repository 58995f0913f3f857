// Package killer sends termination signals to matched processes.
package killer

import (
	"errors"

	"github.com/javanhut/machete/internal/proctable"
)

// ErrSignalUnsupported is returned by a Signaler that cannot deliver the
// requested kind of signal on this platform.
var ErrSignalUnsupported = errors.New("signal not supported on this platform")

// Signaler delivers termination signals. A nil error means the operating
// system accepted the signal, not that the process has exited.
type Signaler interface {
	// Graceful asks the process to exit and lets it clean up first.
	Graceful(h proctable.Handle) error
	// Forceful terminates the process without giving it a chance to react.
	Forceful(h proctable.Handle) error
}

// Reporter receives the outcome of every signal attempt.
type Reporter interface {
	Killed(h proctable.Handle)
	KillFailed(h proctable.Handle, err error)
}

type Issuer struct {
	signaler Signaler
	reporter Reporter
}

func New(signaler Signaler, reporter Reporter) *Issuer {
	return &Issuer{
		signaler: signaler,
		reporter: reporter,
	}
}

// Kill signals the handles in order until limit of them have been killed or
// the handles run out, and returns how many were killed. Failures are
// reported and skipped; they never abort the remaining handles.
func (i *Issuer) Kill(handles []proctable.Handle, gracefully bool, limit int) int {
	killed := 0
	for _, h := range handles {
		if killed >= limit {
			break
		}

		if err := i.signal(h, gracefully); err != nil {
			i.reporter.KillFailed(h, err)
			continue
		}
		killed++
		i.reporter.Killed(h)
	}
	return killed
}

func (i *Issuer) signal(h proctable.Handle, gracefully bool) error {
	if !gracefully {
		return i.signaler.Forceful(h)
	}

	err := i.signaler.Graceful(h)
	if errors.Is(err, ErrSignalUnsupported) {
		return i.signaler.Forceful(h)
	}
	return err
}
