// Package events routes what happens during a run to logs, notifications
// and tests.
package events

import (
	"fmt"

	"github.com/javanhut/machete/internal/monitor"
	"github.com/javanhut/machete/internal/proctable"
	"go.uber.org/zap"
)

// LogSink writes run events to a zap logger.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Started(specs int) {
	s.log.Sugar().Infof("Started watching for %d %s!", specs, monitor.ProcessWord(specs))
}

func (s *LogSink) Found(h proctable.Handle) {
	s.log.Info("Found: "+h.String(), zap.String("name", h.Name), zap.Int32("pid", h.PID))
}

func (s *LogSink) Killed(h proctable.Handle) {
	s.log.Warn("Killed: "+h.String(), zap.String("name", h.Name), zap.Int32("pid", h.PID))
}

func (s *LogSink) KillFailed(h proctable.Handle, err error) {
	s.log.Warn(fmt.Sprintf("Failed to kill process `%s` with pid %d.", h.Name, h.PID),
		zap.String("name", h.Name), zap.Int32("pid", h.PID), zap.Error(err))
}

func (s *LogSink) Vanished(pid int32) {
	s.log.Warn(fmt.Sprintf("A matching process with pid %d died on its own.", pid), zap.Int32("pid", pid))
}

func (s *LogSink) Surrendered(pending bool) {
	if pending {
		s.log.Warn("Took too long, surrendering after spawned processes are killed. o7")
		return
	}
	s.log.Warn("Took too long, surrendering. o7")
}

func (s *LogSink) Done(summary monitor.Summary) {
	s.log.Info("Done! "+summary.String(),
		zap.Int("total", summary.Total),
		zap.Int("configured", summary.Configured),
		zap.Int("started", summary.Started),
	)
}

// Fanout forwards every event to each of its sinks in order.
type Fanout []monitor.Sink

func (f Fanout) Started(specs int) {
	for _, s := range f {
		s.Started(specs)
	}
}

func (f Fanout) Found(h proctable.Handle) {
	for _, s := range f {
		s.Found(h)
	}
}

func (f Fanout) Killed(h proctable.Handle) {
	for _, s := range f {
		s.Killed(h)
	}
}

func (f Fanout) KillFailed(h proctable.Handle, err error) {
	for _, s := range f {
		s.KillFailed(h, err)
	}
}

func (f Fanout) Vanished(pid int32) {
	for _, s := range f {
		s.Vanished(pid)
	}
}

func (f Fanout) Surrendered(pending bool) {
	for _, s := range f {
		s.Surrendered(pending)
	}
}

func (f Fanout) Done(summary monitor.Summary) {
	for _, s := range f {
		s.Done(summary)
	}
}

var (
	_ monitor.Sink = (*LogSink)(nil)
	_ monitor.Sink = Fanout(nil)
)
