package ltrace

import (
	"strconv"
	"strings"

	"loov.dev/locktrace/import/tef"
	"loov.dev/locktrace/trace"
)

// DefaultPID is the process id stamped on events when none is configured.
const DefaultPID = 1234

const (
	categoryLocking   = "locking"
	categoryUnlocking = "unlocking"
)

// Emitter turns resolved calls into trace events.
type Emitter struct {
	PID int64
}

// Emit returns the events describing call.
//
// Signal and broadcast produce a single global instant event. Every other
// primitive produces a complete event spanning the call, followed by the
// release of the lock at the call start and/or its acquisition at the call
// end. Each release and acquisition is drawn on the thread lane, on a global
// lane per lock, and as a flow arrow from release to the next acquisition.
func (emitter Emitter) Emit(call trace.Call) []tef.Event {
	if call.Primitive.Notifies() {
		return []tef.Event{emitter.instant(call)}
	}

	events := make([]tef.Event, 0, 7)
	events = append(events, tef.Event{
		Name:      call.Primitive.String() + "(" + orNone(call.Addr()) + ")",
		Category:  call.Primitive.String(),
		Phase:     tef.Complete,
		Timestamp: call.Start.Micros(),
		Duration:  call.Duration().Micros(),
		ProcessID: emitter.PID,
		ThreadID:  call.Thread,
		Args:      map[string]any{},
	})

	lock := orNone(call.LockAddr())
	if call.Primitive.Releases() {
		events = append(events, emitter.lockTriple(call.Thread, lock, call.Start, tef.AsyncEnd, tef.FlowStart)...)
	}
	if call.Primitive.Acquires() {
		events = append(events, emitter.lockTriple(call.Thread, lock, call.Finish, tef.AsyncStart, tef.FlowEnd)...)
	}
	return events
}

func (emitter Emitter) instant(call trace.Call) tef.Event {
	name := strings.TrimPrefix(call.Primitive.String(), "pthread_cond_")
	return tef.Event{
		Name:      name + "(" + orNone(call.Cond) + ")",
		Category:  call.Primitive.String(),
		Phase:     tef.Instant,
		Timestamp: call.Start.Micros(),
		Duration:  call.Duration().Micros(),
		ProcessID: emitter.PID,
		ThreadID:  call.Thread,
		Scope:     tef.ScopeGlobal,
		Args:      map[string]any{},
	}
}

// lockTriple returns the thread scoped, the global and the flow event for a
// lock changing hands at time at.
func (emitter Emitter) lockTriple(thread int64, lock string, at trace.Time, async, flow tef.Phase) []tef.Event {
	ts := at.Micros()
	return []tef.Event{
		{
			Name:      "mutex " + lock,
			Category:  categoryLocking,
			Phase:     async,
			Timestamp: ts,
			ProcessID: emitter.PID,
			ThreadID:  thread,
			ID:        lock,
			Args:      map[string]any{},
		},
		{
			Name:      "global mutex " + lock,
			Category:  categoryLocking,
			Phase:     async,
			Timestamp: ts,
			ProcessID: emitter.PID,
			// all threads share one lane per lock
			ThreadID: emitter.PID,
			ID:       strconv.FormatInt(emitter.PID, 10) + lock,
			Args:     map[string]any{},
		},
		{
			// the first acquisition of a lock has no flow start, viewers drop it
			Name:      lock,
			Category:  categoryUnlocking,
			Phase:     flow,
			Timestamp: ts,
			ProcessID: emitter.PID,
			ThreadID:  thread,
			ID:        lock,
			Args:      map[string]any{},
		},
	}
}

func orNone(addr string) string {
	if addr == "" {
		return trace.NoAddress
	}
	return addr
}
