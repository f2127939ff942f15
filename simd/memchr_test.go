package simd

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   byte
		want     int
	}{
		{"empty", "", 'a', -1},
		{"short hit", "abc", 'c', 2},
		{"short miss", "abc", 'z', -1},
		{"chunk boundary", "0123456789abcdef", '8', 8},
		{"tail", "0123456789abcdefX", 'X', 16},
		{"first of many", "xxxxxxxxxxxxxxxx", 'x', 0},
		{"zero byte", "abc\x00def", 0, 3},
		{"high byte", "abc\xffdef", 0xff, 3},
		{"borrow after match", "\x01\x00\x01\x01\x01\x01\x01\x01\x01", 0x01, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Memchr([]byte(tt.haystack), tt.needle))
		})
	}
}

func TestMemchrMatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []byte("abcdef\x00\x01\x80\xff")
	for n := 0; n < 100; n++ {
		h := make([]byte, n)
		for i := range h {
			h[i] = alphabet[rng.IntN(len(alphabet))]
		}
		for _, c := range alphabet {
			want := bytes.IndexByte(h, c)
			assert.Equal(t, want, Memchr(h, c), "Memchr(%q, %q)", h, c)
		}
		a, b, c := alphabet[rng.IntN(len(alphabet))], alphabet[rng.IntN(len(alphabet))], alphabet[rng.IntN(len(alphabet))]
		want2, want3 := -1, -1
		for i, x := range h {
			if want2 < 0 && (x == a || x == b) {
				want2 = i
			}
			if want3 < 0 && (x == a || x == b || x == c) {
				want3 = i
			}
		}
		assert.Equal(t, want2, Memchr2(h, a, b), "Memchr2(%q)", h)
		assert.Equal(t, want3, Memchr3(h, a, b, c), "Memchr3(%q)", h)
	}
}

func TestMemchrPair(t *testing.T) {
	tests := []struct {
		haystack string
		b1, b2   byte
		offset   int
		want     int
	}{
		{"abcabd", 'a', 'd', 2, 3},
		{"abcabd", 'a', 'c', 2, 0},
		{"abcabd", 'a', 'z', 2, -1},
		{"ab", 'a', 'b', 2, -1},
		{"ab", 'a', 'b', -1, -1},
		{"xxxxxxxxxxxxxxxxaxxxb", 'a', 'b', 4, 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MemchrPair([]byte(tt.haystack), tt.b1, tt.b2, tt.offset), "%q", tt.haystack)
	}
}

func TestMemmem(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             int
	}{
		{"hello world", "world", 6},
		{"hello world", "xyz", -1},
		{"aaaaaabaaaa", "aab", 4},
		{"abc", "", 0},
		{"", "a", -1},
		{"ab", "abc", -1},
		{"abc", "c", 2},
		{"user@example.com", "@example.", 4},
		{strings.Repeat("ab", 40) + "abQb", "bQ", 81},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			assert.Equal(t, tt.want, Memmem([]byte(tt.haystack), []byte(tt.needle)))
		})
	}
}

func TestMemmemMatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	alphabet := []byte("ab@Q")
	for iter := 0; iter < 500; iter++ {
		h := make([]byte, rng.IntN(64))
		for i := range h {
			h[i] = alphabet[rng.IntN(len(alphabet))]
		}
		needle := make([]byte, 1+rng.IntN(5))
		for i := range needle {
			needle[i] = alphabet[rng.IntN(len(alphabet))]
		}
		assert.Equal(t, bytes.Index(h, needle), Memmem(h, needle), "Memmem(%q, %q)", h, needle)
	}
}

func TestSelectRareBytes(t *testing.T) {
	info := SelectRareBytes([]byte("hello@world"))
	assert.Equal(t, byte('@'), info.Byte1)
	assert.Equal(t, 5, info.Index1)
	assert.NotEqual(t, info.Index1, info.Index2)

	assert.Equal(t, RareByteInfo{}, SelectRareBytes(nil))
	assert.Equal(t, RareByteInfo{Byte1: 'x', Byte2: 'x'}, SelectRareBytes([]byte("x")))
	assert.Less(t, ByteRank('Z'), ByteRank('e'))
}
