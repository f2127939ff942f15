package ranges

import "unicode"

// Bounds of the code points that participate in simple case folding.
// Runes outside [minFold, maxFold] fold only to themselves.
const (
	minFold = 0x0041
	maxFold = 0x1e943
)

// Fold returns the closure of s under simple case folding: for every member
// c, all runes in the unicode.SimpleFold orbit of c are members too.
func (s *Set) Fold() *Set {
	out := make([]Range, 0, s.Len())
	for _, rg := range s.Ranges() {
		out = append(out, rg)
		if rg.Lo <= minFold && rg.Hi >= maxFold {
			continue
		}
		lo, hi := max(rg.Lo, minFold), min(rg.Hi, maxFold)
		for c := lo; c <= hi; c++ {
			for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
				out = append(out, Range{f, f})
			}
		}
	}
	return &Set{r: normalize(out)}
}

// EqualFold reports whether a and b are equal under simple case folding.
func EqualFold(a, b rune) bool {
	if a == b {
		return true
	}
	if a < minFold || a > maxFold || b < minFold || b > maxFold {
		return false
	}
	// ASCII fast path.
	if a < 0x80 && b < 0x80 {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		// K and S fold with non-ASCII runes but never with each other.
		return a == b
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

// FoldOrbit returns c followed by every other rune c folds to.
func FoldOrbit(c rune) []rune {
	orbit := []rune{c}
	if c < minFold || c > maxFold {
		return orbit
	}
	for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return orbit
}

// IsASCIIFoldable reports whether every rune c folds to is ASCII, so that
// byte-level ASCII case folding finds all case variants of c.
func IsASCIIFoldable(c rune) bool {
	if c >= 0x80 {
		return false
	}
	for _, f := range FoldOrbit(c) {
		if f >= 0x80 {
			return false
		}
	}
	return true
}
