package tef

import (
	"encoding/json"
	"io"

	"github.com/zeebo/errs/v2"
)

// Builder accumulates events in emission order.
type Builder struct {
	events []Event
}

func (b *Builder) Add(events ...Event) {
	b.events = append(b.events, events...)
}

func (b *Builder) Len() int { return len(b.events) }

// Events returns the accumulated events. The slice is shared with b.
func (b *Builder) Events() []Event { return b.events }

// WriteTo writes the accumulated events as a single JSON array.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := WriteJSON(cw, b.events)
	return cw.n, err
}

// WriteJSON writes events as one JSON array followed by a newline.
func WriteJSON(w io.Writer, events []Event) error {
	if events == nil {
		events = []Event{}
	}
	for i := range events {
		if events[i].Args == nil {
			events[i].Args = map[string]any{}
		}
	}
	if err := json.NewEncoder(w).Encode(events); err != nil {
		return errs.Wrap(err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
