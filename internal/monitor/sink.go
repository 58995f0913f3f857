package monitor

import (
	"github.com/javanhut/machete/internal/killer"
	"github.com/javanhut/machete/internal/proctable"
)

// Sink receives everything noteworthy that happens during a run.
type Sink interface {
	killer.Reporter

	Started(specs int)
	Found(h proctable.Handle)
	// Vanished reports a candidate that exited before its wait was over.
	Vanished(pid int32)
	// Surrendered reports that the deadline dropped specs that never
	// matched. pending is true when found processes are still waiting to be
	// killed.
	Surrendered(pending bool)
	Done(s Summary)
}
