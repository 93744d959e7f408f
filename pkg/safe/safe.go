// Package safe provides overflow-checked arithmetic and conversions for chain counters.
package safe

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrOverflow reports a result that does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// Add64 returns a+b or ErrOverflow when the sum wraps.
func Add64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return sum, nil
}

// Next32 returns v+1 or ErrOverflow at math.MaxUint32.
func Next32(v uint32) (uint32, error) {
	if v == math.MaxUint32 {
		return 0, fmt.Errorf("%w: successor of %d", ErrOverflow, v)
	}
	return v + 1, nil
}

// Exceeds reports whether base+add is greater than total, treating a wrapped sum as greater.
func Exceeds(base uint64, add uint32, total uint64) bool {
	sum, carry := bits.Add64(base, uint64(add), 0)
	return carry != 0 || sum > total
}

// Uint64 converts a signed or unsigned integer to uint64, rejecting negatives.
func Uint64[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: value %d out of uint64 range", ErrOverflow, v)
	}
	return uint64(v), nil
}

// Uint32 converts a signed or unsigned integer to uint32 with range validation.
func Uint32[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: value %d out of uint32 range", ErrOverflow, v)
	}
	return uint32(v), nil
}
