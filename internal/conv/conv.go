// Package conv holds checked integer narrowing for arena indices.
package conv

import "math"

// IntToUint32 converts n to uint32. It panics if n does not fit, which
// means a program outgrew the 32-bit op index space.
func IntToUint32(n int) uint32 {
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic("regx: integer out of uint32 range")
	}
	return uint32(n)
}
