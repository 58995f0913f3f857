package killer

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/javanhut/machete/internal/proctable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type call struct {
	pid      int32
	graceful bool
}

type fakeSignaler struct {
	calls             []call
	fail              map[int32]error
	gracefulUnsupport bool
}

func (f *fakeSignaler) Graceful(h proctable.Handle) error {
	f.calls = append(f.calls, call{pid: h.PID, graceful: true})
	if f.gracefulUnsupport {
		return ErrSignalUnsupported
	}
	return f.fail[h.PID]
}

func (f *fakeSignaler) Forceful(h proctable.Handle) error {
	f.calls = append(f.calls, call{pid: h.PID})
	return f.fail[h.PID]
}

type recorder struct {
	killed []int32
	failed []int32
}

func (r *recorder) Killed(h proctable.Handle) { r.killed = append(r.killed, h.PID) }
func (r *recorder) KillFailed(h proctable.Handle, _ error) { r.failed = append(r.failed, h.PID) }

func handles(pids ...int32) []proctable.Handle {
	out := make([]proctable.Handle, 0, len(pids))
	for _, pid := range pids {
		out = append(out, proctable.Handle{PID: pid, Name: "app"})
	}
	return out
}

func TestKill_ForcefulWhenNotGraceful(t *testing.T) {
	sig := &fakeSignaler{}
	rec := &recorder{}

	n := New(sig, rec).Kill(handles(1, 2), false, 2)

	assert.Equal(t, 2, n)
	assert.Equal(t, []call{{pid: 1}, {pid: 2}}, sig.calls)
	assert.Equal(t, []int32{1, 2}, rec.killed)
	assert.Empty(t, rec.failed)
}

func TestKill_Graceful(t *testing.T) {
	sig := &fakeSignaler{}
	rec := &recorder{}

	n := New(sig, rec).Kill(handles(7), true, 1)

	assert.Equal(t, 1, n)
	assert.Equal(t, []call{{pid: 7, graceful: true}}, sig.calls)
}

func TestKill_GracefulFallsBackToForceful(t *testing.T) {
	sig := &fakeSignaler{gracefulUnsupport: true}
	rec := &recorder{}

	n := New(sig, rec).Kill(handles(7), true, 1)

	assert.Equal(t, 1, n)
	assert.Equal(t, []call{{pid: 7, graceful: true}, {pid: 7}}, sig.calls)
	assert.Equal(t, []int32{7}, rec.killed)
}

func TestKill_RespectsLimitInOrder(t *testing.T) {
	sig := &fakeSignaler{}
	rec := &recorder{}

	n := New(sig, rec).Kill(handles(3, 1, 2), false, 1)

	assert.Equal(t, 1, n)
	assert.Equal(t, []call{{pid: 3}}, sig.calls)
}

func TestKill_FailuresDoNotCountOrStop(t *testing.T) {
	sig := &fakeSignaler{fail: map[int32]error{1: errors.New("no such process")}}
	rec := &recorder{}

	n := New(sig, rec).Kill(handles(1, 2, 3), false, 3)

	assert.Equal(t, 2, n)
	assert.Equal(t, []int32{2, 3}, rec.killed)
	assert.Equal(t, []int32{1}, rec.failed)
}

func TestKill_FailedAttemptLeavesRoomUnderLimit(t *testing.T) {
	sig := &fakeSignaler{fail: map[int32]error{1: errors.New("permission denied")}}
	rec := &recorder{}

	n := New(sig, rec).Kill(handles(1, 2, 3), false, 1)

	assert.Equal(t, 1, n)
	assert.Equal(t, []int32{2}, rec.killed)
	assert.Len(t, sig.calls, 2)
}

func TestKill_NoHandles(t *testing.T) {
	sig := &fakeSignaler{}
	rec := &recorder{}

	assert.Equal(t, 0, New(sig, rec).Kill(nil, true, 5))
	assert.Empty(t, sig.calls)
}

func TestProperty_KillNeverExceedsLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		matched := rapid.IntRange(0, 20).Draw(t, "matched")
		limit := rapid.IntRange(1, 25).Draw(t, "limit")
		graceful := rapid.Bool().Draw(t, "graceful")

		pids := make([]int32, matched)
		for i := range pids {
			pids[i] = int32(i + 100)
		}

		sig := &fakeSignaler{}
		rec := &recorder{}
		n := New(sig, rec).Kill(handles(pids...), graceful, limit)

		want := matched
		if limit < want {
			want = limit
		}
		if n != want {
			t.Fatalf("killed %d of %d with limit %d, want %d", n, matched, limit, want)
		}
		if len(sig.calls) != want {
			t.Fatalf("signalled %d processes, want %d", len(sig.calls), want)
		}
	})
}

func TestPlatform_ExitedProcessFails(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	cmd := exec.Command(exe, "-test.run=^$")
	require.NoError(t, cmd.Run())

	h := proctable.Handle{PID: int32(cmd.Process.Pid), Name: "exited"}
	rec := &recorder{}

	n := New(Platform(), rec).Kill([]proctable.Handle{h}, false, 1)
	assert.Equal(t, 0, n)
	assert.Equal(t, []int32{h.PID}, rec.failed)

	n = New(Platform(), rec).Kill([]proctable.Handle{h}, true, 1)
	assert.Equal(t, 0, n)
}
