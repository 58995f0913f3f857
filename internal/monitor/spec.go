package monitor

import (
	"fmt"
	"time"

	"github.com/javanhut/machete/internal/proctable"
)

// Policy holds the run-wide killing settings. It never changes during a run.
type Policy struct {
	// MaxWaitTime bounds how long unmatched specs are watched. Zero disables
	// the deadline.
	MaxWaitTime time.Duration
	// RefreshInterval is the delay between two polls of the process table.
	RefreshInterval time.Duration
	// DefaultKillWaitTime is how long a first-seen match is left alone before
	// it is killed, unless the Spec overrides it.
	DefaultKillWaitTime   time.Duration
	DefaultKillGracefully bool
}

type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchContains
)

// NameMatch selects processes either by their exact name or by a substring
// of it.
type NameMatch struct {
	Kind    MatchKind
	Pattern string
}

func Exact(name string) NameMatch {
	return NameMatch{Kind: MatchExact, Pattern: name}
}

func Contains(substring string) NameMatch {
	return NameMatch{Kind: MatchContains, Pattern: substring}
}

func (m NameMatch) Find(s *proctable.Snapshot) []proctable.Handle {
	if m.Kind == MatchContains {
		return s.ByContains(m.Pattern)
	}
	return s.ByExactName(m.Pattern)
}

func (m NameMatch) String() string {
	if m.Kind == MatchContains {
		return fmt.Sprintf("contains %q", m.Pattern)
	}
	return fmt.Sprintf("exact %q", m.Pattern)
}

// Spec is one configured process pattern. Nil overrides fall back to the
// Policy defaults; a nil Limit kills every match.
type Spec struct {
	Match          NameMatch
	Limit          *int
	KillWaitTime   *time.Duration
	KillGracefully *bool
}
