// Package buf contains overflow-safe bounds arithmetic for raw memory
// regions. Every checked access in mem and the unmanaged containers funnels
// through these helpers so overflow handling lives in one place.
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

// MulOverflowSafe multiplies a and b, returning ok = false when the result
// would overflow int. This is essential for count * elementSize calculations
// when sizing typed spans.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// CheckRange validates that the byte range [off, off+n) lies within a region
// of regionLen bytes. Returns the end offset if valid, or an error describing
// the specific failure (negative input, overflow, or out of bounds).
func CheckRange(regionLen, off, n int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + len=%d", off, n)
	}
	if end > regionLen {
		return 0, fmt.Errorf("bounds: end=%d > region=%d", end, regionLen)
	}
	return end, nil
}

// CheckSpanBounds validates that count elements of elemSize bytes fit in a
// region of regionLen bytes starting at off. Returns the end offset if valid.
//
// This is the recommended way to validate a typed span before handing out a
// slice over raw memory:
//
//	end, err := buf.CheckSpanBounds(size, off, count, elemSize)
//	if err != nil {
//	    return fmt.Errorf("span: %w", err)
//	}
func CheckSpanBounds(regionLen, off, count, elemSize int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	if elemSize < 0 {
		return 0, fmt.Errorf("negative element size: %d", elemSize)
	}
	total, ok := MulOverflowSafe(count, elemSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}
	return CheckRange(regionLen, off, total)
}

// Has reports whether [off, off+n) is within a region of regionLen bytes.
func Has(regionLen, off, n int) bool {
	_, err := CheckRange(regionLen, off, n)
	return err == nil
}
