package ltrace

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"loov.dev/locktrace/import/tef"
	"loov.dev/locktrace/trace"
)

func newCall(p trace.Primitive, thread int64, start, duration trace.Time, mutex, cond string) trace.Call {
	return trace.Call{
		Primitive: p,
		Thread:    thread,
		TimeRange: trace.TimeRange{Start: start, Finish: start + duration},
		Mutex:     mutex,
		Cond:      cond,
	}
}

func TestEmitMutexLock(t *testing.T) {
	emitter := Emitter{PID: 1234}
	got := emitter.Emit(newCall(trace.MutexLock, 7, trace.Second, 500*trace.Microsecond, "0xAA", ""))

	args := map[string]any{}
	want := []tef.Event{
		{Name: "pthread_mutex_lock(0xAA)", Category: "pthread_mutex_lock", Phase: tef.Complete, Timestamp: 1000000, Duration: 500, ProcessID: 1234, ThreadID: 7, Args: args},
		{Name: "mutex 0xAA", Category: "locking", Phase: tef.AsyncStart, Timestamp: 1000500, ProcessID: 1234, ThreadID: 7, ID: "0xAA", Args: args},
		{Name: "global mutex 0xAA", Category: "locking", Phase: tef.AsyncStart, Timestamp: 1000500, ProcessID: 1234, ThreadID: 1234, ID: "12340xAA", Args: args},
		{Name: "0xAA", Category: "unlocking", Phase: tef.FlowEnd, Timestamp: 1000500, ProcessID: 1234, ThreadID: 7, ID: "0xAA", Args: args},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Emit mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitMutexUnlock(t *testing.T) {
	emitter := Emitter{PID: 1}
	got := emitter.Emit(newCall(trace.MutexUnlock, 3, 2*trace.Second, 2*trace.Microsecond, "0x10", ""))

	args := map[string]any{}
	want := []tef.Event{
		{Name: "pthread_mutex_unlock(0x10)", Category: "pthread_mutex_unlock", Phase: tef.Complete, Timestamp: 2000000, Duration: 2, ProcessID: 1, ThreadID: 3, Args: args},
		{Name: "mutex 0x10", Category: "locking", Phase: tef.AsyncEnd, Timestamp: 2000000, ProcessID: 1, ThreadID: 3, ID: "0x10", Args: args},
		{Name: "global mutex 0x10", Category: "locking", Phase: tef.AsyncEnd, Timestamp: 2000000, ProcessID: 1, ThreadID: 1, ID: "10x10", Args: args},
		{Name: "0x10", Category: "unlocking", Phase: tef.FlowStart, Timestamp: 2000000, ProcessID: 1, ThreadID: 3, ID: "0x10", Args: args},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Emit mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitCondWait(t *testing.T) {
	emitter := Emitter{PID: 1234}
	for _, p := range []trace.Primitive{trace.CondWait, trace.CondTimedWait} {
		got := emitter.Emit(newCall(p, 5, trace.Second, 3*trace.Millisecond, "0xA", "0xC"))
		if len(got) != 7 {
			t.Fatalf("%v: got %d events, want 7", p, len(got))
		}

		complete := got[0]
		if complete.Phase != tef.Complete || complete.Name != p.String()+"(0xC)" {
			t.Errorf("%v: complete event = %+v", p, complete)
		}
		if complete.Timestamp != 1000000 || complete.Duration != 3000 {
			t.Errorf("%v: complete span = %v+%v", p, complete.Timestamp, complete.Duration)
		}

		phases := []tef.Phase{}
		for _, ev := range got[1:] {
			phases = append(phases, ev.Phase)
			if ev.ID != "0xA" && ev.ID != "12340xA" {
				t.Errorf("%v: %s keyed by %q, want the mutex", p, ev.Phase, ev.ID)
			}
		}
		wantPhases := []tef.Phase{tef.AsyncEnd, tef.AsyncEnd, tef.FlowStart, tef.AsyncStart, tef.AsyncStart, tef.FlowEnd}
		if diff := cmp.Diff(wantPhases, phases); diff != "" {
			t.Errorf("%v: phases mismatch (-want +got):\n%s", p, diff)
		}
		for _, ev := range got[1:4] {
			if ev.Timestamp != 1000000 {
				t.Errorf("%v: release %s at %v, want call start", p, ev.Phase, ev.Timestamp)
			}
		}
		for _, ev := range got[4:] {
			if ev.Timestamp != 1003000 {
				t.Errorf("%v: acquire %s at %v, want call end", p, ev.Phase, ev.Timestamp)
			}
		}
	}
}

func TestEmitNotify(t *testing.T) {
	emitter := Emitter{PID: 1234}
	for p, name := range map[trace.Primitive]string{
		trace.CondSignal:    "signal(0xBB)",
		trace.CondBroadcast: "broadcast(0xBB)",
	} {
		got := emitter.Emit(newCall(p, 9, trace.Second, trace.Microsecond, "", "0xBB"))
		want := []tef.Event{{
			Name:      name,
			Category:  p.String(),
			Phase:     tef.Instant,
			Timestamp: 1000000,
			Duration:  1,
			ProcessID: 1234,
			ThreadID:  9,
			Scope:     tef.ScopeGlobal,
			Args:      map[string]any{},
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%v mismatch (-want +got):\n%s", p, diff)
		}
	}
}

func TestEmitNoAddress(t *testing.T) {
	got := Emitter{PID: 1}.Emit(newCall(trace.MutexLock, 1, 0, trace.Microsecond, "", ""))
	if got[0].Name != "pthread_mutex_lock(none)" {
		t.Errorf("name = %q", got[0].Name)
	}
	for _, ev := range got[1:] {
		if ev.ID == "" {
			t.Errorf("%s has no id", ev.Phase)
		}
	}
}
