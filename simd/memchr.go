// Package simd provides byte search primitives built on SWAR (SIMD Within A
// Register): eight haystack bytes are tested per step with uint64
// arithmetic. The functions behave like bytes.IndexByte and bytes.Index and
// are portable to every GOARCH.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// broadcast replicates b into every byte of a uint64.
func broadcast(b byte) uint64 {
	return uint64(b) * lo8
}

// zeroBytes sets the high bit of each zero byte of v (Hacker's Delight).
// Borrows may also mark bytes above the first zero byte, so only the lowest
// mark is exact.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) &^ v & hi8
}

// Memchr returns the index of the first needle in haystack, or -1.
func Memchr(haystack []byte, needle byte) int {
	m := broadcast(needle)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk ^ m); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// Memchr2 returns the index of the first byte equal to n1 or n2, or -1.
func Memchr2(haystack []byte, n1, n2 byte) int {
	m1, m2 := broadcast(n1), broadcast(n2)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^m1) | zeroBytes(chunk^m2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if c := haystack[i]; c == n1 || c == n2 {
			return i
		}
	}
	return -1
}

// Memchr3 returns the index of the first byte equal to n1, n2 or n3, or -1.
func Memchr3(haystack []byte, n1, n2, n3 byte) int {
	m1, m2, m3 := broadcast(n1), broadcast(n2), broadcast(n3)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^m1) | zeroBytes(chunk^m2) | zeroBytes(chunk^m3); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if c := haystack[i]; c == n1 || c == n2 || c == n3 {
			return i
		}
	}
	return -1
}

// MemchrPair returns the first index i with haystack[i] == b1 and
// haystack[i+offset] == b2, or -1.
func MemchrPair(haystack []byte, b1, b2 byte, offset int) int {
	if offset < 0 || offset >= len(haystack) {
		return -1
	}
	limit := len(haystack) - offset
	for i := 0; i < limit; i++ {
		j := Memchr(haystack[i:limit], b1)
		if j < 0 {
			return -1
		}
		i += j
		if haystack[i+offset] == b2 {
			return i
		}
	}
	return -1
}
