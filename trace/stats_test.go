package trace

import (
	"bytes"
	"testing"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		in   Time
		want int64
	}{
		{0, 0},
		{999 * Microsecond, 0},
		{Millisecond, 1},
		{2 * Millisecond, 2},
		{3 * Millisecond, 4},
		{5 * Millisecond, 8},
		{1024 * Millisecond, 1024},
		{1025 * Millisecond, 2048},
	}
	for _, test := range tests {
		if got := Bucket(test.in); got != test.want {
			t.Errorf("Bucket(%v) = %d, want %d", test.in.Std(), got, test.want)
		}
	}
}

func TestStats(t *testing.T) {
	stats := NewStats()
	add := func(p Primitive, d Time, mutex, cond string) {
		stats.Add(Call{Primitive: p, TimeRange: TimeRange{Start: Second, Finish: Second + d}, Mutex: mutex, Cond: cond})
	}
	add(MutexLock, 3*Millisecond, "0xb", "")
	add(MutexLock, 4*Millisecond, "0xb", "")
	add(MutexLock, Microsecond, "0xa", "")
	add(MutexUnlock, Microsecond, "0xa", "")
	add(CondWait, 100*Millisecond, "0xa", "0xc")
	add(CondSignal, Microsecond, "", "0xc")

	if got := stats.Groups["mutex"]["0xb"][4]; got != 2 {
		t.Errorf("mutex 0xb bucket 4 = %d, want 2", got)
	}
	if got := stats.Groups["cond"]["0xa"][128]; got != 1 {
		t.Errorf("cond 0xa bucket 128 = %d, want 1", got)
	}
	if _, ok := stats.Groups["cond"]["0xc"]; ok {
		t.Error("cond wait keyed by the condition variable")
	}

	var buf bytes.Buffer
	if err := stats.Report(&buf); err != nil {
		t.Fatal(err)
	}
	want := "" +
		"pthread_mutex_lock                  3\n" +
		"pthread_mutex_unlock                1\n" +
		"pthread_cond_wait                   1\n" +
		"pthread_cond_signal                 1\n" +
		"total                               6\n" +
		"\n" +
		"name:cond\n" +
		"# elapsed time[ms]\n" +
		"0xa :      128, 1\n" +
		"\n" +
		"name:mutex\n" +
		"# elapsed time[ms]\n" +
		"0xa :        0, 1\n" +
		"0xb :        4, 2\n"
	if buf.String() != want {
		t.Errorf("Report:\n%s\nwant:\n%s", buf.String(), want)
	}
}
