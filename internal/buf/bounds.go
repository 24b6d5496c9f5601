package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// SumOverflowSafe adds every term, returning ok = false as soon as the running
// total would overflow int.
func SumOverflowSafe(terms ...int) (int, bool) {
	total := 0
	for _, t := range terms {
		var ok bool
		if total, ok = AddOverflowSafe(total, t); !ok {
			return 0, false
		}
	}
	return total, true
}

// Int64ToInt converts v to int, returning ok = false when it does not fit.
func Int64ToInt(v int64) (int, bool) {
	if v < math.MinInt || v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}

// CheckSpan validates that size bytes starting at offset fit in a region of
// regionLen bytes. Returns the end offset if valid, or an error describing
// the specific failure (overflow or out of bounds).
//
//	end, err := buf.CheckSpan(limit, off, uint64(sectionSize))
//	if err != nil {
//	    return fmt.Errorf("section: %w", err)
//	}
func CheckSpan(regionLen, offset, size uint64) (uint64, error) {
	if size > math.MaxUint64-offset {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", offset, size)
	}
	end := offset + size
	if end > regionLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, regionLen)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
