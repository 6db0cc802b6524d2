package trace

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Histogram counts call durations by Bucket.
type Histogram map[int64]int

// Stats aggregates how long threads spent in blocking calls per address.
type Stats struct {
	Calls map[Primitive]int64
	// Groups maps "mutex" and "cond" to per address histograms.
	Groups map[string]map[string]Histogram
}

func NewStats() *Stats {
	return &Stats{
		Calls:  make(map[Primitive]int64),
		Groups: make(map[string]map[string]Histogram),
	}
}

// Add records a resolved call.
//
// Mutex locks are bucketed under "mutex" and condition waits under "cond",
// both keyed by the mutex address.
func (stats *Stats) Add(call Call) {
	stats.Calls[call.Primitive]++

	var group string
	switch {
	case call.Primitive == MutexLock:
		group = "mutex"
	case call.Primitive.Waits():
		group = "cond"
	default:
		return
	}

	byAddr, ok := stats.Groups[group]
	if !ok {
		byAddr = make(map[string]Histogram)
		stats.Groups[group] = byAddr
	}
	addr := call.LockAddr()
	if addr == "" {
		addr = NoAddress
	}
	hist, ok := byAddr[addr]
	if !ok {
		hist = make(Histogram)
		byAddr[addr] = hist
	}
	hist[Bucket(call.Duration())]++
}

// Bucket returns d in whole milliseconds rounded up to a power of two.
func Bucket(d Time) int64 {
	ms := int64(d / Millisecond)
	if ms <= 0 {
		return 0
	}
	v := int64(1)
	for v < ms {
		v <<= 1
	}
	return v
}

// Report writes the call counts and histograms in a stable order.
func (stats *Stats) Report(w io.Writer) error {
	var total int64
	for _, p := range Primitives {
		n := stats.Calls[p]
		total += n
		if n == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-24s %12s\n", p, humanize.Comma(n)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%-24s %12s\n", "total", humanize.Comma(total)); err != nil {
		return err
	}

	groups := maps.Keys(stats.Groups)
	slices.Sort(groups)
	for _, group := range groups {
		if _, err := fmt.Fprintf(w, "\nname:%s\n# elapsed time[ms]\n", group); err != nil {
			return err
		}

		byAddr := stats.Groups[group]
		addrs := maps.Keys(byAddr)
		slices.Sort(addrs)
		for _, addr := range addrs {
			hist := byAddr[addr]
			buckets := maps.Keys(hist)
			slices.Sort(buckets)
			for _, bucket := range buckets {
				_, err := fmt.Fprintf(w, "%s : %8d, %s\n", addr, bucket, humanize.Comma(int64(hist[bucket])))
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
