package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack, or
// -1. An empty needle matches at 0, as with bytes.Index.
//
// Candidates are found by scanning for the two rarest bytes of needle at
// their relative distance (see SelectRareBytes), then verified in full.
//
//	simd.Memmem([]byte("hello world"), []byte("world")) // 6
//	simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))   // 4
func Memmem(haystack, needle []byte) int {
	n := len(needle)
	switch {
	case n == 0:
		return 0
	case n > len(haystack):
		return -1
	case n == 1:
		return Memchr(haystack, needle[0])
	}

	rare := SelectRareBytes(needle)
	lo, hi := rare.Index1, rare.Index2
	if lo > hi {
		lo, hi = hi, lo
	}
	b1, b2 := needle[lo], needle[hi]
	last := len(haystack) - n // last possible start

	for s := 0; s <= last; s++ {
		j := MemchrPair(haystack[s+lo:last+hi+1], b1, b2, hi-lo)
		if j < 0 {
			return -1
		}
		s += j
		if bytes.Equal(haystack[s:s+n], needle) {
			return s
		}
	}
	return -1
}
