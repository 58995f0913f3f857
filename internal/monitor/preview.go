package monitor

import (
	"time"

	"github.com/javanhut/machete/internal/proctable"
	"github.com/javanhut/machete/pkg/config"
)

// Preview is what a spec would do against a snapshot, with every override
// already resolved against the policy.
type Preview struct {
	Match      NameMatch
	Wait       time.Duration
	Gracefully bool
	// Limit is zero when every match would be killed.
	Limit   int
	Matches []proctable.Handle
}

// Previews evaluates the specs against one snapshot without signalling
// anything.
func Previews(s *proctable.Snapshot, policy Policy, specs []Spec) []Preview {
	out := make([]Preview, 0, len(specs))
	for _, spec := range specs {
		out = append(out, Preview{
			Match:      spec.Match,
			Wait:       config.Resolve(spec.KillWaitTime, policy.DefaultKillWaitTime),
			Gracefully: config.Resolve(spec.KillGracefully, policy.DefaultKillGracefully),
			Limit:      config.Resolve(spec.Limit, 0),
			Matches:    spec.Match.Find(s),
		})
	}
	return out
}
