package geneval

import "testing"

func TestParseCMakeInteger(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"16", 16},
		{"0x10", 16},
		{"010", 8},
		{"0b11", 3},
		{"-0b11", -3},
		{"-16", -16},
	}
	for _, tc := range cases {
		got, err := parseCMakeInteger(tc.in)
		if err != nil {
			t.Fatalf("parseCMakeInteger(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseCMakeInteger(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCMakeIntegerRejectsGarbage(t *testing.T) {
	if _, err := parseCMakeInteger("abc"); err == nil {
		t.Fatalf("expected an error for non-numeric input")
	}
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.10", -1},
		{"1.2.0", "1.2", 0},
		{"2.0", "1.9", 1},
		{"1.0.0", "1.0.0", 0},
	}
	for _, tc := range cases {
		got, err := compareVersions(tc.a, tc.b)
		if err != nil {
			t.Fatalf("compareVersions(%q, %q) error: %v", tc.a, tc.b, err)
		}
		if sign(got) != tc.want {
			t.Fatalf("compareVersions(%q, %q) = %d, want sign %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
