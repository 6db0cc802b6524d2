package tef

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/valyala/fastjson"
	"github.com/zeebo/errs/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"loov.dev/locktrace/trace"
)

// Summary describes the contents of a trace file.
type Summary struct {
	Events     int
	Phases     map[Phase]int
	Categories map[string]int
	Threads    map[int64]int
	trace.TimeRange
}

// Inspect summarizes a trace in either the JSON Array Format or the
// JSON Object Format.
func Inspect(data []byte) (Summary, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return Summary{}, errs.Errorf("failed to parse trace: %w", err)
	}

	var events []*fastjson.Value
	switch v.Type() {
	case fastjson.TypeArray:
		events, _ = v.Array()
	case fastjson.TypeObject:
		traceEvents := v.Get("traceEvents")
		if traceEvents == nil {
			return Summary{}, errs.Errorf("trace object has no traceEvents")
		}
		events, err = traceEvents.Array()
		if err != nil {
			return Summary{}, errs.Errorf("invalid traceEvents: %w", err)
		}
	default:
		return Summary{}, errs.Errorf("trace must be an array or object, got %s", v.Type())
	}

	summary := Summary{
		Phases:     make(map[Phase]int),
		Categories: make(map[string]int),
		Threads:    make(map[int64]int),
		TimeRange:  trace.InvalidRange,
	}
	for _, ev := range events {
		if ev.Type() != fastjson.TypeObject {
			return Summary{}, errs.Errorf("event %d is %s, not an object", summary.Events, ev.Type())
		}
		summary.Events++
		summary.Phases[Phase(ev.GetStringBytes("ph"))]++
		summary.Categories[string(ev.GetStringBytes("cat"))]++
		summary.Threads[ev.GetInt64("tid")]++

		start := trace.FromMicros(ev.GetFloat64("ts"))
		finish := start + trace.FromMicros(ev.GetFloat64("dur"))
		summary.TimeRange = summary.TimeRange.Expand(trace.TimeRange{Start: start, Finish: finish})
	}
	return summary, nil
}

// Report writes a human readable form of the summary.
func (summary Summary) Report(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "events:   %s\n", humanize.Comma(int64(summary.Events))); err != nil {
		return err
	}
	if summary.Events == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "threads:  %d\nspan:     %v (%.0fus .. %.0fus)\n",
		len(summary.Threads),
		summary.Duration().Std(), summary.Start.Micros(), summary.Finish.Micros())
	if err != nil {
		return err
	}

	phases := maps.Keys(summary.Phases)
	slices.Sort(phases)
	for _, ph := range phases {
		if _, err := fmt.Fprintf(w, "phase %-3s %s\n", ph, humanize.Comma(int64(summary.Phases[ph]))); err != nil {
			return err
		}
	}

	categories := maps.Keys(summary.Categories)
	slices.Sort(categories)
	for _, cat := range categories {
		if _, err := fmt.Fprintf(w, "cat %-24s %s\n", cat, humanize.Comma(int64(summary.Categories[cat]))); err != nil {
			return err
		}
	}
	return nil
}
