package tef

// This package implements the JSON Array Format of
// https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU/preview?tab=t.0#heading=h.yr4qxyxotyw

/*
[
  {"name": "pthread_mutex_lock(0x55d1)", "cat": "pthread_mutex_lock", "ph": "X", "ts": 829, "dur": 4, "pid": 1234, "tid": 7, "args": {}},
  {"name": "mutex 0x55d1", "cat": "locking", "ph": "b", "ts": 833, "pid": 1234, "tid": 7, "id": "0x55d1", "args": {}}
]
*/

type Event struct {
	// The name of the event, as displayed in Trace Viewer
	Name string `json:"name"`
	// The event categories. This is a comma separated list of categories for the event.
	// The categories can be used to hide events in the Trace Viewer UI.
	Category string `json:"cat"`
	// The event type. This is a single character which changes depending on the type of
	// event being output.
	Phase Phase `json:"ph"`
	// The tracing clock timestamp of the event, in microseconds.
	Timestamp float64 `json:"ts"`
	// Duration specifies the duration for Complete events, in microseconds.
	Duration float64 `json:"dur,omitempty"`
	// The process ID for the process that output this event.
	ProcessID int64 `json:"pid"`
	// The thread ID for the thread that output this event.
	ThreadID int64 `json:"tid"`
	// ID correlates async and flow events.
	ID string `json:"id,omitempty"`
	// Scope of an instant event.
	Scope Scope `json:"s,omitempty"`

	// Any arguments provided for the event. Trace Viewer expects an object,
	// so this should never be nil.
	Args map[string]any `json:"args"`
}

type Phase string

const (
	DurationBegin Phase = "B"
	DurationEnd   Phase = "E"
	Complete      Phase = "X"
	Instant       Phase = "i"
	Counter       Phase = "C"

	AsyncStart   Phase = "b"
	AsyncInstant Phase = "n"
	AsyncEnd     Phase = "e"

	FlowStart Phase = "s"
	FlowStep  Phase = "t"
	FlowEnd   Phase = "f"

	Metadata Phase = "M"
)

// Scope decides how far an instant event is drawn.
type Scope string

const (
	ScopeGlobal  Scope = "g"
	ScopeProcess Scope = "p"
	ScopeThread  Scope = "t"
)
