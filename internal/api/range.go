package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// byteRange is one inclusive byte interval within a file of known size.
// Both bounds are valid positions: 0 <= start <= end < size.
type byteRange struct {
	start int64
	end   int64
}

func (r byteRange) length() int64 {
	return r.end - r.start + 1
}

// parseRange parses a Range request header against a known file size.
// Only the exact form "bytes=<start>-<end>" is accepted, where either
// bound may be absent but not both. A different unit, non-digit content,
// trailing garbage or a multi-range list is unsatisfiable, as is any
// range against an empty file.
func parseRange(header string, size int64) (byteRange, bool) {
	// Multi-range requests are rejected before any arithmetic.
	if strings.Contains(header, ",") {
		return byteRange{}, false
	}
	spec, found := strings.CutPrefix(header, "bytes=")
	if !found || size <= 0 {
		return byteRange{}, false
	}
	dash := strings.IndexByte(spec, '-')
	if dash < 0 {
		return byteRange{}, false
	}
	startStr, endStr := spec[:dash], spec[dash+1:]
	if startStr == "" && endStr == "" {
		return byteRange{}, false
	}

	// Suffix form "-N": the last N bytes.
	if startStr == "" {
		n, ok := parseByteCount(endStr)
		if !ok || n == 0 {
			return byteRange{}, false
		}
		start := size - n
		if start < 0 {
			start = 0
		}
		return byteRange{start: start, end: size - 1}, true
	}

	start, ok := parseByteCount(startStr)
	if !ok || start >= size {
		return byteRange{}, false
	}

	// Open-ended form "start-": to the end of the file.
	if endStr == "" {
		return byteRange{start: start, end: size - 1}, true
	}

	end, ok := parseByteCount(endStr)
	if !ok || end < start {
		return byteRange{}, false
	}
	// A client may ask past EOF to mean "to the end".
	if end > size-1 {
		end = size - 1
	}
	return byteRange{start: start, end: end}, true
}

// parseByteCount parses a non-negative base-10 integer literal. Literals
// too large for int64 saturate rather than fail, so absurd-but-wellformed
// offsets get the same clamping as merely-large ones.
func parseByteCount(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return math.MaxInt64, true
	}
	return n, true
}

// contentRangeHeader formats the Content-Range value for a satisfied range.
func contentRangeHeader(start, end, size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", start, end, size)
}

// contentRangeUnsatisfiable formats the RFC 7233 unsatisfied-range sentinel.
func contentRangeUnsatisfiable(size int64) string {
	return fmt.Sprintf("bytes */%d", size)
}
