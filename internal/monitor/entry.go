package monitor

import (
	"time"

	"github.com/javanhut/machete/internal/killer"
	"github.com/javanhut/machete/internal/proctable"
	"github.com/javanhut/machete/pkg/config"
)

type entryState int

const (
	searching entryState = iota
	pendingKill
)

// entry tracks one Spec across polls. It moves from searching to pendingKill
// at most once and never goes back.
type entry struct {
	spec       *Spec
	state      entryState
	deadline   time.Time
	candidates []int32
}

// cycle is everything an entry needs to evaluate itself during one poll.
type cycle struct {
	snapshot *proctable.Snapshot
	policy   Policy
	now      time.Time
	issuer   *killer.Issuer
	sink     Sink
}

type outcome struct {
	resolved bool
	killed   int
}

func newEntry(spec *Spec) *entry {
	return &entry{spec: spec, state: searching}
}

func (e *entry) check(c *cycle) outcome {
	if e.state == pendingKill {
		return e.checkPending(c)
	}

	found := e.spec.Match.Find(c.snapshot)
	if len(found) == 0 {
		return outcome{}
	}
	for _, h := range found {
		c.sink.Found(h)
	}

	wait := config.Resolve(e.spec.KillWaitTime, c.policy.DefaultKillWaitTime)
	if wait <= 0 {
		return outcome{resolved: true, killed: e.kill(c, found)}
	}

	e.state = pendingKill
	e.deadline = c.now.Add(wait)
	e.candidates = make([]int32, 0, len(found))
	for _, h := range found {
		e.candidates = append(e.candidates, h.PID)
	}
	return outcome{}
}

// checkPending kills whatever is left of the candidates once the wait is
// over. Candidates are looked up in the current snapshot so a pid that was
// recycled in the meantime is not signalled blindly.
func (e *entry) checkPending(c *cycle) outcome {
	if c.now.Before(e.deadline) {
		return outcome{}
	}

	alive := make([]proctable.Handle, 0, len(e.candidates))
	for _, pid := range e.candidates {
		h, ok := c.snapshot.Resolve(pid)
		if !ok {
			c.sink.Vanished(pid)
			continue
		}
		alive = append(alive, h)
	}
	return outcome{resolved: true, killed: e.kill(c, alive)}
}

func (e *entry) kill(c *cycle, handles []proctable.Handle) int {
	gracefully := config.Resolve(e.spec.KillGracefully, c.policy.DefaultKillGracefully)
	limit := config.Resolve(e.spec.Limit, len(handles))
	return c.issuer.Kill(handles, gracefully, limit)
}
