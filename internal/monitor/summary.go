package monitor

import "fmt"

// Summary is the outcome of a run.
type Summary struct {
	// Started is the number of configured specs.
	Started int
	// Configured counts specs that resolved with at least one kill.
	Configured int
	// Resolved counts specs that reached a kill attempt, whether or not it
	// killed anything.
	Resolved int
	// Total is the number of individual processes killed.
	Total int
}

func (s *Summary) record(killed int) {
	s.Resolved++
	s.Total += killed
	if killed > 0 {
		s.Configured++
	}
}

// Percent is the share of configured specs that killed something. A run
// without specs is trivially complete.
func (s Summary) Percent() float64 {
	if s.Started == 0 {
		return 100
	}
	return float64(s.Configured) / float64(s.Started) * 100
}

func (s Summary) String() string {
	return fmt.Sprintf("Killed %d total %s, or %d/%d (%.0f%%) of configured processes.",
		s.Total, ProcessWord(s.Total), s.Configured, s.Started, s.Percent())
}

func ProcessWord(n int) string {
	if n == 1 {
		return "process"
	}
	return "processes"
}
