// Package monitor watches the process table for configured processes and
// kills them once their wait time is over.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/javanhut/machete/internal/killer"
	"github.com/javanhut/machete/internal/proctable"
)

type Monitor struct {
	dir    proctable.Directory
	issuer *killer.Issuer
	sink   Sink
	goos   string
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

func New(dir proctable.Directory, signaler killer.Signaler, sink Sink) *Monitor {
	return &Monitor{
		dir:    dir,
		issuer: killer.New(signaler, sink),
		sink:   sink,
		goos:   runtime.GOOS,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Run polls the process table until every spec has been resolved or the
// policy's deadline gives up on the ones that never showed up. Specs are
// evaluated in the order given. If ctx is cancelled while waiting between
// polls, the summary so far is returned together with ctx.Err().
func (m *Monitor) Run(ctx context.Context, policy Policy, specs []Spec) (Summary, error) {
	if !proctable.Supported(m.goos) {
		return Summary{}, proctable.ErrUnsupportedPlatform
	}
	if policy.RefreshInterval <= 0 {
		return Summary{}, errors.New("refresh interval must be greater than zero")
	}

	entries := make([]*entry, 0, len(specs))
	for i := range specs {
		entries = append(entries, newEntry(&specs[i]))
	}

	summary := Summary{Started: len(specs)}
	m.sink.Started(len(specs))

	start := m.now()
	for len(entries) > 0 {
		snapshot, err := m.dir.Snapshot(ctx)
		if err != nil {
			return summary, fmt.Errorf("failed to refresh processes: %w", err)
		}

		c := &cycle{
			snapshot: snapshot,
			policy:   policy,
			now:      m.now(),
			issuer:   m.issuer,
			sink:     m.sink,
		}
		entries = m.poll(c, entries, &summary)
		if len(entries) == 0 {
			break
		}

		if policy.MaxWaitTime > 0 {
			elapsed := m.now().Sub(start)
			// Purge one interval early so the run never sleeps past the deadline.
			if elapsed+policy.RefreshInterval >= policy.MaxWaitTime {
				before := len(entries)
				entries = purge(entries)
				gaveUp := len(entries) != before
				if gaveUp {
					m.sink.Surrendered(len(entries) > 0)
				}
				if len(entries) == 0 {
					break
				}
			}
		}

		if err := m.sleep(ctx, policy.RefreshInterval); err != nil {
			m.sink.Done(summary)
			return summary, err
		}
	}

	m.sink.Done(summary)
	return summary, nil
}

// poll evaluates every entry against the snapshot and returns the ones that
// are still unresolved, keeping their order.
func (m *Monitor) poll(c *cycle, entries []*entry, summary *Summary) []*entry {
	kept := entries[:0]
	for _, e := range entries {
		out := e.check(c)
		if !out.resolved {
			kept = append(kept, e)
			continue
		}
		summary.record(out.killed)
	}
	return kept
}

// purge keeps only the entries whose processes were already found and are
// waiting out their kill delay.
func purge(entries []*entry) []*entry {
	kept := entries[:0]
	for _, e := range entries {
		if e.state == pendingKill {
			kept = append(kept, e)
		}
	}
	return kept
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
