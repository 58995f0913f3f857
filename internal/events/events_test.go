package events

import (
	"errors"
	"testing"

	"github.com/javanhut/machete/internal/monitor"
	"github.com/javanhut/machete/internal/proctable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedSink() (*LogSink, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLogSink(zap.New(core)), logs
}

func TestLogSink_Messages(t *testing.T) {
	sink, logs := observedSink()
	h := proctable.Handle{PID: 42, Name: "app.exe"}

	sink.Started(1)
	sink.Found(h)
	sink.Killed(h)
	sink.KillFailed(h, errors.New("access denied"))
	sink.Vanished(7)
	sink.Surrendered(false)
	sink.Surrendered(true)
	sink.Done(monitor.Summary{Started: 5, Configured: 3, Resolved: 3, Total: 4})

	entries := logs.AllUntimed()
	require.Len(t, entries, 8)

	want := []struct {
		level zapcore.Level
		msg   string
	}{
		{zapcore.InfoLevel, "Started watching for 1 process!"},
		{zapcore.InfoLevel, "Found: app.exe (pid 42)"},
		{zapcore.WarnLevel, "Killed: app.exe (pid 42)"},
		{zapcore.WarnLevel, "Failed to kill process `app.exe` with pid 42."},
		{zapcore.WarnLevel, "A matching process with pid 7 died on its own."},
		{zapcore.WarnLevel, "Took too long, surrendering. o7"},
		{zapcore.WarnLevel, "Took too long, surrendering after spawned processes are killed. o7"},
		{zapcore.InfoLevel, "Done! Killed 4 total processes, or 3/5 (60%) of configured processes."},
	}
	for i, w := range want {
		assert.Equal(t, w.level, entries[i].Level, w.msg)
		assert.Equal(t, w.msg, entries[i].Message)
	}

	assert.Equal(t, int32(42), entries[1].ContextMap()["pid"])
	assert.Equal(t, "access denied", entries[3].ContextMap()["error"])
}

func TestFanout_ForwardsInOrder(t *testing.T) {
	first, second := NewRecorder(), NewRecorder()
	fan := Fanout{first, second}
	h := proctable.Handle{PID: 1, Name: "a"}

	fan.Started(2)
	fan.Found(h)
	fan.Killed(h)
	fan.KillFailed(h, errors.New("x"))
	fan.Vanished(3)
	fan.Surrendered(true)
	fan.Done(monitor.Summary{Started: 2})

	for _, r := range []*Recorder{first, second} {
		assert.Equal(t, []int{2}, r.Starts)
		assert.Equal(t, []proctable.Handle{h}, r.Matches)
		assert.Equal(t, []proctable.Handle{h}, r.Kills)
		assert.Equal(t, []proctable.Handle{h}, r.Failures)
		assert.Equal(t, []int32{3}, r.Vanishes)
		assert.Equal(t, []bool{true}, r.Surrenders)
		assert.Equal(t, []monitor.Summary{{Started: 2}}, r.Summaries)
	}
}

func TestFanout_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		Fanout(nil).Done(monitor.Summary{})
	})
}
