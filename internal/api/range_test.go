package api

import (
	"fmt"
	"testing"
)

func TestParseRange(t *testing.T) {
	const size = 100

	cases := []struct {
		name   string
		header string
		ok     bool
		start  int64
		end    int64
	}{
		{"both bounds", "bytes=0-9", true, 0, 9},
		{"middle", "bytes=10-49", true, 10, 49},
		{"single byte", "bytes=42-42", true, 42, 42},
		{"to last byte", "bytes=0-99", true, 0, 99},
		{"end clamped past EOF", "bytes=90-200", true, 90, 99},
		{"open ended", "bytes=25-", true, 25, 99},
		{"open ended from zero", "bytes=0-", true, 0, 99},
		{"suffix", "bytes=-10", true, 90, 99},
		{"suffix whole file", "bytes=-100", true, 0, 99},
		{"suffix clamped", "bytes=-1000", true, 0, 99},

		{"start past EOF", "bytes=100-", false, 0, 0},
		{"start way past EOF", "bytes=500-600", false, 0, 0},
		{"inverted", "bytes=50-10", false, 0, 0},
		{"zero suffix", "bytes=-0", false, 0, 0},
		{"both absent", "bytes=-", false, 0, 0},
		{"empty", "", false, 0, 0},
		{"no unit", "0-9", false, 0, 0},
		{"wrong unit", "items=0-9", false, 0, 0},
		{"case sensitive unit", "Bytes=0-9", false, 0, 0},
		{"spaces", "bytes= 0-9", false, 0, 0},
		{"negative start", "bytes=-5-9", false, 0, 0},
		{"trailing garbage", "bytes=0-9x", false, 0, 0},
		{"hex digits", "bytes=0x0-0x9", false, 0, 0},
		{"no dash", "bytes=42", false, 0, 0},
		{"multi-range", "bytes=0-9,20-29", false, 0, 0},
		{"multi-range valid parts", "bytes=0-4,5-9", false, 0, 0},
		{"bare comma", "bytes=,", false, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng, ok := parseRange(tc.header, size)
			if ok != tc.ok {
				t.Fatalf("parseRange(%q, %d): expected ok=%v, got %v", tc.header, size, tc.ok, ok)
			}
			if !ok {
				return
			}
			if rng.start != tc.start || rng.end != tc.end {
				t.Fatalf("parseRange(%q, %d): expected [%d,%d], got [%d,%d]",
					tc.header, size, tc.start, tc.end, rng.start, rng.end)
			}
		})
	}
}

func TestParseRangeRoundTrip(t *testing.T) {
	const size = int64(1000)
	for _, bounds := range [][2]int64{{0, 0}, {0, 999}, {1, 2}, {500, 998}, {999, 999}} {
		a, b := bounds[0], bounds[1]
		header := fmt.Sprintf("bytes=%d-%d", a, b)
		rng, ok := parseRange(header, size)
		if !ok {
			t.Fatalf("expected %q to parse", header)
		}
		if rng.start != a || rng.end != b {
			t.Fatalf("%q: expected [%d,%d], got [%d,%d]", header, a, b, rng.start, rng.end)
		}
		want := fmt.Sprintf("bytes %d-%d/%d", a, b, size)
		if got := contentRangeHeader(rng.start, rng.end, size); got != want {
			t.Fatalf("expected header %q, got %q", want, got)
		}
	}
}

func TestParseRangeEmptyFile(t *testing.T) {
	for _, header := range []string{"bytes=0-0", "bytes=0-", "bytes=-1", "bytes=-100"} {
		if _, ok := parseRange(header, 0); ok {
			t.Fatalf("expected %q against empty file to be unsatisfiable", header)
		}
	}
}

func TestParseRangeTerabyteSizes(t *testing.T) {
	const size = int64(5) * 1024 * 1024 * 1024 * 1024 // 5 TiB

	rng, ok := parseRange("bytes=4398046511104-", size)
	if !ok {
		t.Fatal("expected large open-ended range to parse")
	}
	if rng.start != 4398046511104 || rng.end != size-1 {
		t.Fatalf("unexpected range [%d,%d]", rng.start, rng.end)
	}

	want := fmt.Sprintf("bytes 4398046511104-%d/%d", size-1, size)
	if got := contentRangeHeader(rng.start, rng.end, size); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseRangeOverflowLiteral(t *testing.T) {
	// A wellformed literal too large for int64 clamps like any other
	// past-EOF end bound.
	rng, ok := parseRange("bytes=0-99999999999999999999999", 100)
	if !ok {
		t.Fatal("expected oversized end bound to clamp")
	}
	if rng.start != 0 || rng.end != 99 {
		t.Fatalf("unexpected range [%d,%d]", rng.start, rng.end)
	}

	if _, ok := parseRange("bytes=99999999999999999999999-", 100); ok {
		t.Fatal("expected oversized start bound to be unsatisfiable")
	}
}

func TestContentRangeUnsatisfiable(t *testing.T) {
	if got := contentRangeUnsatisfiable(12345); got != "bytes */12345" {
		t.Fatalf("unexpected sentinel %q", got)
	}
}
