// Package safeconv provides safe integer type conversion functions that panic on overflow.
// Tree-sitter reports byte offsets and point coordinates as uint; Go string and
// slice indexing wants int. These helpers make the conversion boundary explicit.
package safeconv

// MaxInt is the maximum value for int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MustUintToInt converts uint to int, panics on overflow.
// Use only when overflow is logically impossible (e.g. byte offsets
// into an in-memory source buffer).
func MustUintToInt(v uint) int {
	if v > uint(MaxInt) {
		panic("safeconv: uint to int overflow")
	}

	return int(v)
}

// MustIntToUint converts int to uint, panics if negative.
// Use only when negative values are logically impossible.
func MustIntToUint(v int) uint {
	if v < 0 {
		panic("safeconv: negative int to uint conversion")
	}

	return uint(v)
}
