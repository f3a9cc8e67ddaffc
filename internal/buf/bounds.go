package buf

import (
	"errors"
	"fmt"
	"math"
)

// ErrShort reports a read that would cross the end of the buffer.
var ErrShort = errors.New("buf: read past end of buffer")

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

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or when either operand is negative. Length fields read from
// evidence are never allowed to be negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckListBounds validates that count elements of elementSize bytes fit in a
// buffer of bufLen bytes starting at offset. It returns the end offset. The
// returned error wraps ErrShort when the range runs off the buffer.
//
//	end, err := buf.CheckListBounds(len(raw), 28, int(pathLen), 2)
//	if err != nil {
//	    return fmt.Errorf("path: %w", err)
//	}
func CheckListBounds(bufLen, offset, count, elementSize int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset %d: %w", offset, ErrShort)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count %d: %w", count, ErrShort)
	}
	if elementSize < 0 {
		return 0, fmt.Errorf("negative element size %d: %w", elementSize, ErrShort)
	}

	totalSize, ok := MulOverflowSafe(count, elementSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d: %w", count, elementSize, ErrShort)
	}

	endOffset, ok := AddOverflowSafe(offset, totalSize)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d: %w", offset, totalSize, ErrShort)
	}

	if endOffset > bufLen {
		return 0, fmt.Errorf("end=%d > len=%d: %w", endOffset, bufLen, ErrShort)
	}

	return endOffset, nil
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

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
