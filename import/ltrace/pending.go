package ltrace

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"loov.dev/locktrace/trace"
)

// Pending is the start of a call whose completion is logged later.
type Pending struct {
	Primitive trace.Primitive
	Start     trace.Time
	Cond      string
	Mutex     string
}

// Tracker holds the pending call of every thread.
type Tracker struct {
	pending map[int64]Pending
}

func NewTracker() *Tracker {
	return &Tracker{pending: make(map[int64]Pending)}
}

// Begin records the pending call of thread, replacing any previous one.
func (tracker *Tracker) Begin(thread int64, call Pending) {
	tracker.pending[thread] = call
}

// Resume removes and returns the pending call of thread.
func (tracker *Tracker) Resume(thread int64) (Pending, bool) {
	call, ok := tracker.pending[thread]
	if ok {
		delete(tracker.pending, thread)
	}
	return call, ok
}

func (tracker *Tracker) Len() int { return len(tracker.pending) }

// Threads returns the threads with a pending call in ascending order.
func (tracker *Tracker) Threads() []int64 {
	threads := maps.Keys(tracker.pending)
	slices.Sort(threads)
	return threads
}
