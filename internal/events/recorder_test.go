package events

import (
	"github.com/javanhut/machete/internal/monitor"
	"github.com/javanhut/machete/internal/proctable"
)

// Recorder keeps every event it receives.
type Recorder struct {
	Starts     []int
	Matches    []proctable.Handle
	Kills      []proctable.Handle
	Failures   []proctable.Handle
	Vanishes   []int32
	Surrenders []bool
	Summaries  []monitor.Summary
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Started(specs int) {
	r.Starts = append(r.Starts, specs)
}

func (r *Recorder) Found(h proctable.Handle) {
	r.Matches = append(r.Matches, h)
}

func (r *Recorder) Killed(h proctable.Handle) {
	r.Kills = append(r.Kills, h)
}

func (r *Recorder) KillFailed(h proctable.Handle, _ error) {
	r.Failures = append(r.Failures, h)
}

func (r *Recorder) Vanished(pid int32) {
	r.Vanishes = append(r.Vanishes, pid)
}

func (r *Recorder) Surrendered(pending bool) {
	r.Surrenders = append(r.Surrenders, pending)
}

func (r *Recorder) Done(s monitor.Summary) {
	r.Summaries = append(r.Summaries, s)
}

var _ monitor.Sink = (*Recorder)(nil)
