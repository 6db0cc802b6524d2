package ltrace

import (
	"regexp"
	"strconv"
	"strings"

	"loov.dev/locktrace/trace"
)

// Marker tells whether a line is one half of a split call.
type Marker int

const (
	Whole Marker = iota
	Unfinished
	Resumed
)

func (m Marker) String() string {
	switch m {
	case Unfinished:
		return "unfinished"
	case Resumed:
		return "resumed"
	default:
		return "whole"
	}
}

// Line is a single parsed line of a pthread call log.
//
//	7 1634548923.000123 pthread_mutex_lock(mutex=0x55d1c0) = 0 <0.000012>
type Line struct {
	Number int
	Text   string

	Thread    int64
	Time      trace.Time
	Primitive trace.Primitive

	// Duration is valid only when HasDuration is set.
	Duration    trace.Time
	HasDuration bool

	Mutex  string
	Cond   string
	Marker Marker
}

var (
	rxDuration = regexp.MustCompile(`<(?P<duration>[0-9]+\.[0-9]+)>`)
	rxMutex    = regexp.MustCompile(`mutex=(?P<mutex>0x[0-9a-fA-F]+)`)
	rxCond     = regexp.MustCompile(`cond=(?P<cond>0x[0-9a-fA-F]+)`)
)

// Parse parses a log line.
//
// ok is false when the line does not name any recognized primitive. Lines
// without a thread id and timestamp fail with *MalformedLineError.
func Parse(text string) (line Line, ok bool, err error) {
	line.Text = strings.TrimRight(text, "\r\n")

	fields := strings.Fields(line.Text)
	if len(fields) < 2 {
		return line, false, &MalformedLineError{
			Text:   line.Text,
			Reason: "expected thread id and timestamp",
		}
	}

	line.Thread, err = strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return line, false, &MalformedLineError{
			Text:   line.Text,
			Reason: "invalid thread id " + strconv.Quote(fields[0]),
			Err:    err,
		}
	}
	line.Time, err = trace.ParseSeconds(fields[1])
	if err != nil {
		return line, false, &MalformedLineError{
			Text:   line.Text,
			Reason: "invalid timestamp " + strconv.Quote(fields[1]),
			Err:    err,
		}
	}

	line.Primitive = detectPrimitive(line.Text)
	if line.Primitive == trace.Unknown {
		return line, false, nil
	}

	if s, found := submatch(rxDuration, "duration", line.Text); found {
		d, err := trace.ParseSeconds(s)
		if err != nil {
			return line, false, &MalformedLineError{
				Text:   line.Text,
				Reason: "invalid duration " + strconv.Quote(s),
				Err:    err,
			}
		}
		line.Duration, line.HasDuration = d, true
	}
	line.Mutex, _ = submatch(rxMutex, "mutex", line.Text)
	line.Cond, _ = submatch(rxCond, "cond", line.Text)

	switch {
	case strings.Contains(line.Text, "unfinished"):
		line.Marker = Unfinished
	case strings.Contains(line.Text, "resumed"):
		line.Marker = Resumed
	}

	return line, true, nil
}

// detectPrimitive returns the last primitive in detection order whose name
// occurs in text.
func detectPrimitive(text string) trace.Primitive {
	found := trace.Unknown
	for _, p := range trace.Primitives {
		if strings.Contains(text, p.String()) {
			found = p
		}
	}
	return found
}

// submatch returns the named group of the first match of rx in text.
func submatch(rx *regexp.Regexp, name, text string) (string, bool) {
	m := rx.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[rx.SubexpIndex(name)], true
}
