package trace

import "math"

// NoAddress stands in for an address the log line did not carry.
const NoAddress = "none"

// Call is a single fully resolved synchronization call of one thread.
type Call struct {
	Primitive Primitive
	Thread    int64
	TimeRange

	// Mutex and Cond are hex addresses as printed by the tracer, empty when
	// the call did not mention them.
	Mutex string
	Cond  string
}

// Addr returns the address that identifies the call: the condition variable
// when there is one, otherwise the mutex.
func (call *Call) Addr() string {
	if call.Cond != "" {
		return call.Cond
	}
	return call.Mutex
}

// LockAddr returns the address of the lock the call acquires or releases.
//
// Condition waits release and reacquire their mutex, so the mutex is
// preferred over the condition variable.
func (call *Call) LockAddr() string {
	if call.Mutex != "" {
		return call.Mutex
	}
	return call.Cond
}

type TimeRange struct {
	Start  Time
	Finish Time
}

var InvalidRange = TimeRange{
	Start:  math.MaxInt64,
	Finish: math.MinInt64,
}

func (a TimeRange) Duration() Time {
	return a.Finish - a.Start
}

func (a TimeRange) Expand(b TimeRange) TimeRange {
	return TimeRange{
		Start:  a.Start.Min(b.Start),
		Finish: a.Finish.Max(b.Finish),
	}
}
