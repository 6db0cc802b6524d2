package trace

import "testing"

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want Time
	}{
		{"1.000000", Second},
		{"0.000500", 500 * Microsecond},
		{"1634548923.000123", 1634548923*Second + 123*Microsecond},
		{"0.000000123", 123},
		{"0.0000001239", 123},
		{"2", 2 * Second},
		{".5", 500 * Millisecond},
		{"-1.5", -1500 * Millisecond},
		{"1e-3", Millisecond},
		{"9223372036.854775807", 1<<63 - 1},
	}
	for _, test := range tests {
		got, err := ParseSeconds(test.in)
		if err != nil {
			t.Errorf("ParseSeconds(%q): %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseSeconds(%q) = %d, want %d", test.in, got, test.want)
		}
	}

	for _, in := range []string{"", ".", "abc", "1.2.3", "nan", "inf", "1e300",
		"9223372036.9", "9223372036.854775808", "-9223372036.9", "9223372037", "9.3e9"} {
		if _, err := ParseSeconds(in); err == nil {
			t.Errorf("ParseSeconds(%q) succeeded", in)
		}
	}
}

func TestMicros(t *testing.T) {
	if got := (1500 * Millisecond).Micros(); got != 1500000 {
		t.Errorf("Micros = %v", got)
	}
	if got := FromMicros(2.5); got != 2500 {
		t.Errorf("FromMicros = %v", got)
	}
}
