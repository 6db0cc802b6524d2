package trace

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/errs/v2"
)

// Time in nanoseconds
type Time int64

const (
	Nanosecond  Time = 1
	Microsecond      = 1000 * Nanosecond
	Millisecond      = 1000 * Microsecond
	Second           = 1000 * Millisecond
)

func (t Time) Std() time.Duration {
	return time.Duration(int64(t) * int64(time.Nanosecond))
}

// Micros returns t in microseconds, the unit of trace event timestamps.
func (t Time) Micros() float64 { return float64(t) / float64(Microsecond) }

// FromMicros converts a trace event timestamp back to Time.
func FromMicros(us float64) Time { return Time(math.Round(us * float64(Microsecond))) }

func (t Time) Min(b Time) Time {
	if t < b {
		return t
	}
	return b
}

func (t Time) Max(b Time) Time {
	if t > b {
		return t
	}
	return b
}

// ParseSeconds parses a decimal number of seconds such as "1634548923.000123".
//
// Plain decimals are converted exactly, digits past nanoseconds are dropped.
// Anything else strconv.ParseFloat accepts goes through float64.
func ParseSeconds(s string) (Time, error) {
	if t, ok := parseDecimalSeconds(s); ok {
		return t, nil
	}
	if allDecimal(s) {
		return 0, errs.Errorf("seconds out of range %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.Errorf("invalid seconds %q", s)
	}
	ns := f * float64(Second)
	if math.IsNaN(ns) || ns >= math.MaxInt64 || ns < math.MinInt64 {
		return 0, errs.Errorf("seconds out of range %q", s)
	}
	return Time(math.Round(ns)), nil
}

func parseDecimalSeconds(s string) (Time, bool) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, false
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, false
	}

	var sec int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil || v > math.MaxInt64/int64(Second) {
			return 0, false
		}
		sec = v
	}

	if len(frac) > 9 {
		frac = frac[:9]
	}
	var nsec int64
	if frac != "" {
		frac += strings.Repeat("0", 9-len(frac))
		v, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false
		}
		nsec = v
	}
	if sec == math.MaxInt64/int64(Second) && nsec > math.MaxInt64%int64(Second) {
		return 0, false
	}

	t := Time(sec)*Second + Time(nsec)
	if neg {
		t = -t
	}
	return t, true
}

// allDecimal reports whether s is a plain decimal that parseDecimalSeconds
// only rejects for its range.
func allDecimal(s string) bool {
	whole, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	return whole+frac != "" && allDigits(whole) && allDigits(frac)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
