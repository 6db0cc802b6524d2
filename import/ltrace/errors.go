package ltrace

import "fmt"

// MalformedLineError is returned for a line that does not start with a
// thread id and a timestamp, or whose times do not fit in trace.Time.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (err *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: malformed %q: %s", err.Line, err.Text, err.Reason)
}

func (err *MalformedLineError) Unwrap() error { return err.Err }

// UnpairedResumeError is returned for a "resumed" line without a preceding
// "unfinished" line on the same thread.
type UnpairedResumeError struct {
	Line   int
	Thread int64
	Text   string
}

func (err *UnpairedResumeError) Error() string {
	return fmt.Sprintf("line %d: thread %d resumed a call that was never unfinished: %q", err.Line, err.Thread, err.Text)
}
