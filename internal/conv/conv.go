// Package conv provides checked integer conversions used when interning
// automaton states into dense IDs.
//
// The helpers panic on overflow: a description with more than 2^32 states
// cannot be represented and indicates a programming error upstream.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms never overflow int
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Pow2Saturating returns 2^n, or math.MaxInt when the result does not fit.
func Pow2Saturating(n int) int {
	if n < 0 {
		return 0
	}
	if n >= 62 {
		return math.MaxInt
	}
	return 1 << uint(n)
}
