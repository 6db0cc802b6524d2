package trace

// Primitive is a pthread synchronization call recognized in the log.
type Primitive int

const (
	Unknown Primitive = iota
	MutexLock
	MutexUnlock
	CondWait
	CondTimedWait
	CondSignal
	CondBroadcast
)

// Primitives lists the recognized primitives in detection order.
var Primitives = []Primitive{
	MutexLock,
	MutexUnlock,
	CondWait,
	CondTimedWait,
	CondSignal,
	CondBroadcast,
}

var primitiveNames = [...]string{
	Unknown:       "unknown",
	MutexLock:     "pthread_mutex_lock",
	MutexUnlock:   "pthread_mutex_unlock",
	CondWait:      "pthread_cond_wait",
	CondTimedWait: "pthread_cond_timedwait",
	CondSignal:    "pthread_cond_signal",
	CondBroadcast: "pthread_cond_broadcast",
}

// String returns the C function name of the primitive.
func (p Primitive) String() string {
	if p < 0 || int(p) >= len(primitiveNames) {
		return primitiveNames[Unknown]
	}
	return primitiveNames[p]
}

// Notifies reports whether p wakes waiters without touching a lock.
func (p Primitive) Notifies() bool { return p == CondSignal || p == CondBroadcast }

// Releases reports whether p gives up its mutex when it starts.
func (p Primitive) Releases() bool {
	return p == MutexUnlock || p == CondWait || p == CondTimedWait
}

// Acquires reports whether p holds its mutex when it returns.
func (p Primitive) Acquires() bool {
	return p == MutexLock || p == CondWait || p == CondTimedWait
}

// Waits reports whether p blocks on a condition variable.
func (p Primitive) Waits() bool { return p == CondWait || p == CondTimedWait }
