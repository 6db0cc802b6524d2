package ltrace

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zeebo/errs/v2"

	"loov.dev/locktrace/import/tef"
	"loov.dev/locktrace/trace"
)

// Options configures a Converter.
type Options struct {
	// PID is stamped on every event, DefaultPID when zero.
	PID int64
	// Log receives the processed lines and call annotations at debug level.
	Log logrus.FieldLogger
}

// Converter interprets a pthread call log line by line.
//
// It pairs "unfinished" and "resumed" lines of the same thread into a single
// call and accumulates the events emitted for every call.
type Converter struct {
	emitter Emitter
	log     logrus.FieldLogger
	tracker *Tracker
	builder tef.Builder
	line    int
}

func NewConverter(opts Options) *Converter {
	if opts.PID == 0 {
		opts.PID = DefaultPID
	}
	if opts.Log == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		opts.Log = discard
	}
	return &Converter{
		emitter: Emitter{PID: opts.PID},
		log:     opts.Log,
		tracker: NewTracker(),
	}
}

// Feed interprets the next line of the log and returns the events emitted
// for it. The events are also kept by the converter.
func (conv *Converter) Feed(text string) ([]tef.Event, error) {
	call, ok, err := conv.Resolve(text)
	if err != nil || !ok {
		return nil, err
	}
	events := conv.emitter.Emit(call)
	conv.builder.Add(events...)
	return events, nil
}

// Resolve interprets the next line of the log without emitting events.
//
// ok is false when the line names no primitive or starts a split call.
func (conv *Converter) Resolve(text string) (call trace.Call, ok bool, err error) {
	conv.line++

	line, ok, err := Parse(text)
	line.Number = conv.line
	if err != nil {
		var malformed *MalformedLineError
		if errors.As(err, &malformed) {
			malformed.Line = line.Number
		}
		return call, false, err
	}
	conv.log.Debug(line.Text)
	if !ok {
		return call, false, nil
	}

	log := conv.log.WithField("tid", line.Thread)

	call = trace.Call{
		Primitive: line.Primitive,
		Thread:    line.Thread,
		Mutex:     line.Mutex,
		Cond:      line.Cond,
	}
	duration := trace.Microsecond
	if line.HasDuration {
		duration = line.Duration
	}
	start := line.Time

	if !line.Primitive.Notifies() {
		switch line.Marker {
		case Unfinished:
			conv.tracker.Begin(line.Thread, Pending{
				Primitive: line.Primitive,
				Start:     line.Time,
				Cond:      line.Cond,
				Mutex:     line.Mutex,
			})
			log.Debugf("%.0f %s[start] %s", line.Time.Micros(), line.Primitive, orNone(line.Mutex))
			return call, false, nil

		case Resumed:
			pending, found := conv.tracker.Resume(line.Thread)
			if !found {
				return call, false, &UnpairedResumeError{
					Line:   line.Number,
					Thread: line.Thread,
					Text:   line.Text,
				}
			}
			start, call.Cond, call.Mutex = pending.Start, pending.Cond, pending.Mutex
			if pending.Primitive != line.Primitive {
				log.WithField("line", line.Number).Warnf("%s resumed a pending %s", line.Primitive, pending.Primitive)
			}
			log.Debugf("%.0f %s[end] %s", start.Micros(), line.Primitive, orNone(call.Mutex))

		default:
			log.Debugf("%.0f %s[once] %s", start.Micros(), line.Primitive, orNone(call.Mutex))
		}
	}

	if duration == 0 {
		duration = trace.Microsecond
	}
	finish := start + duration
	if finish < start {
		return call, false, &MalformedLineError{
			Line:   line.Number,
			Text:   line.Text,
			Reason: "call ends past the representable time range",
		}
	}
	call.TimeRange = trace.TimeRange{Start: start, Finish: finish}
	return call, true, nil
}

// Events returns the events emitted so far.
func (conv *Converter) Events() []tef.Event { return conv.builder.Events() }

// Builder returns the accumulated events.
func (conv *Converter) Builder() *tef.Builder { return &conv.builder }

// Unresumed returns the threads whose last call was never resumed.
func (conv *Converter) Unresumed() []int64 { return conv.tracker.Threads() }

// Convert reads a whole log and returns its events.
func Convert(r io.Reader, opts Options) (*tef.Builder, error) {
	conv := NewConverter(opts)
	err := scan(r, func(text string) error {
		_, err := conv.Feed(text)
		return err
	})
	if err != nil {
		return nil, err
	}
	conv.warnUnresumed()
	return conv.Builder(), nil
}

// Walk reads a whole log and calls fn with every resolved call in log order.
func Walk(r io.Reader, opts Options, fn func(trace.Call) error) error {
	conv := NewConverter(opts)
	err := scan(r, func(text string) error {
		call, ok, err := conv.Resolve(text)
		if err != nil || !ok {
			return err
		}
		return fn(call)
	})
	if err != nil {
		return err
	}
	conv.warnUnresumed()
	return nil
}

func (conv *Converter) warnUnresumed() {
	if threads := conv.Unresumed(); len(threads) > 0 {
		conv.log.WithField("threads", threads).Warn("calls left unfinished at end of log")
	}
}

// scan calls fn with every line of r, without the line terminator.
// Lines may be of any length.
func scan(r io.Reader, fn func(text string) error) error {
	reader := bufio.NewReader(r)
	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
			if fnErr := fn(text); fnErr != nil {
				return fnErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errs.Errorf("failed to read log: %w", err)
		}
	}
}
