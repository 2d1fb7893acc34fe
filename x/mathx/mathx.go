// Package mathx holds the small numeric helpers shared by the HID sinks.
package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rel8 saturates a relative movement to the symmetric int8 range used by
// HID mouse axes (-127..127).
func Rel8[T constraints.Signed](v T) int8 {
	return int8(Clamp(int64(v), -127, 127))
}
