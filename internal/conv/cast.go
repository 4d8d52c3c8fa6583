// Package conv provides checked integer conversions.
//
// Counts and offsets read from disk are untrusted; these helpers turn a
// narrowing or sign-crossing cast into an explicit error instead of a
// silent wraparound. For conversions that are provably safe by domain
// constraints, use direct casts.
package conv

import (
	"fmt"
	"math"
)

// IntToUint32 converts int to uint32.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("cannot convert %d to uint32: negative", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("cannot convert %d to uint32: too large", v)
	}
	return uint32(v), nil
}

// Uint32ToInt converts uint32 to int.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("cannot convert %d to int: too large", v)
	}
	return int(v), nil
}

// Int64ToInt converts int64 to int.
func Int64ToInt(v int64) (int, error) {
	if v > int64(math.MaxInt) || v < int64(math.MinInt) {
		return 0, fmt.Errorf("cannot convert %d to int: out of range", v)
	}
	return int(v), nil
}
