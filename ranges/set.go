// Package ranges provides code point interval sets and the Unicode tables
// consulted by character class tokens and range operations.
//
// A Set is an immutable, normalized list of inclusive [Lo, Hi] intervals.
// All algebra (Union, Intersect, Subtract, Complement, Fold) returns a new Set,
// so sets obtained from the registry can be shared freely between compiled
// patterns and goroutines.
package ranges

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxRune is the largest code point a Set may contain.
const MaxRune = unicode.MaxRune

// Range is an inclusive code point interval.
type Range struct {
	Lo rune
	Hi rune
}

// Set is a sorted list of non-overlapping, non-adjacent ranges.
// The zero value and nil are both the empty set.
type Set struct {
	r []Range
}

// New returns the normalized union of the given ranges.
// Ranges with Lo > Hi are ignored.
func New(rs ...Range) *Set {
	out := make([]Range, 0, len(rs))
	for _, rg := range rs {
		if rg.Lo > rg.Hi {
			continue
		}
		out = append(out, clampRange(rg))
	}
	return &Set{r: normalize(out)}
}

// Of returns the set containing exactly the given runes.
func Of(runes ...rune) *Set {
	out := make([]Range, 0, len(runes))
	for _, c := range runes {
		out = append(out, Range{c, c})
	}
	return New(out...)
}

// All returns the set of every code point.
func All() *Set {
	return &Set{r: []Range{{0, MaxRune}}}
}

// FromTable converts a unicode.RangeTable into a Set.
func FromTable(t *unicode.RangeTable) *Set {
	if t == nil {
		return &Set{}
	}
	out := make([]Range, 0, len(t.R16)+len(t.R32))
	for _, r16 := range t.R16 {
		out = appendStrided(out, rune(r16.Lo), rune(r16.Hi), rune(r16.Stride))
	}
	for _, r32 := range t.R32 {
		out = appendStrided(out, rune(r32.Lo), rune(r32.Hi), rune(r32.Stride))
	}
	return &Set{r: normalize(out)}
}

func appendStrided(out []Range, lo, hi, stride rune) []Range {
	if stride == 1 {
		return append(out, Range{lo, hi})
	}
	for c := lo; c <= hi; c += stride {
		out = append(out, Range{c, c})
	}
	return out
}

// Ranges returns the intervals of s. The slice must not be modified.
func (s *Set) Ranges() []Range {
	if s == nil {
		return nil
	}
	return s.r
}

// Len returns the number of intervals in s.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.r)
}

// Count returns the number of code points in s.
func (s *Set) Count() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, rg := range s.r {
		n += int(rg.Hi-rg.Lo) + 1
	}
	return n
}

// IsEmpty reports whether s contains no code points.
func (s *Set) IsEmpty() bool {
	return s == nil || len(s.r) == 0
}

// Single returns the only code point of s, if s has exactly one.
func (s *Set) Single() (rune, bool) {
	if s == nil || len(s.r) != 1 || s.r[0].Lo != s.r[0].Hi {
		return 0, false
	}
	return s.r[0].Lo, true
}

// Contains reports whether c is a member of s.
func (s *Set) Contains(c rune) bool {
	if s == nil {
		return false
	}
	r := s.r
	// Linear scan beats binary search on the short classes most patterns use.
	if len(r) <= 8 {
		for _, rg := range r {
			if c < rg.Lo {
				return false
			}
			if c <= rg.Hi {
				return true
			}
		}
		return false
	}
	lo, hi := 0, len(r)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		switch {
		case c < r[m].Lo:
			hi = m
		case c > r[m].Hi:
			lo = m + 1
		default:
			return true
		}
	}
	return false
}

// Union returns s ∪ o.
func (s *Set) Union(o *Set) *Set {
	out := make([]Range, 0, s.Len()+o.Len())
	out = append(out, s.Ranges()...)
	out = append(out, o.Ranges()...)
	return &Set{r: normalize(out)}
}

// Complement returns every code point not in s.
func (s *Set) Complement() *Set {
	out := make([]Range, 0, s.Len()+1)
	next := rune(0)
	for _, rg := range s.Ranges() {
		if rg.Lo > next {
			out = append(out, Range{next, rg.Lo - 1})
		}
		next = rg.Hi + 1
	}
	if next <= MaxRune {
		out = append(out, Range{next, MaxRune})
	}
	return &Set{r: out}
}

// Intersect returns s ∩ o.
func (s *Set) Intersect(o *Set) *Set {
	a, b := s.Ranges(), o.Ranges()
	var out []Range
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := max(a[i].Lo, b[j].Lo)
		hi := min(a[i].Hi, b[j].Hi)
		if lo <= hi {
			out = append(out, Range{lo, hi})
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return &Set{r: out}
}

// Subtract returns s \ o.
func (s *Set) Subtract(o *Set) *Set {
	if o.IsEmpty() {
		return s.clone()
	}
	return s.Intersect(o.Complement())
}

// Equal reports whether s and o contain the same code points.
func (s *Set) Equal(o *Set) bool {
	return slices.Equal(s.Ranges(), o.Ranges())
}

func (s *Set) clone() *Set {
	return &Set{r: slices.Clone(s.Ranges())}
}

// String renders s in character class syntax, e.g. [0-9A-Z_a-z].
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, rg := range s.Ranges() {
		writeClassRune(&b, rg.Lo)
		if rg.Hi != rg.Lo {
			if rg.Hi != rg.Lo+1 {
				b.WriteByte('-')
			}
			writeClassRune(&b, rg.Hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}

func writeClassRune(b *strings.Builder, c rune) {
	switch {
	case c < 0x20 || c == 0x7f || !utf8.ValidRune(c):
		fmt.Fprintf(b, `\x{%X}`, c)
	case strings.ContainsRune(`\[]-^`, c):
		b.WriteByte('\\')
		b.WriteRune(c)
	case c > 0x7f && !unicode.IsPrint(c):
		fmt.Fprintf(b, `\x{%X}`, c)
	default:
		b.WriteRune(c)
	}
}

func clampRange(rg Range) Range {
	if rg.Lo < 0 {
		rg.Lo = 0
	}
	if rg.Hi > MaxRune {
		rg.Hi = MaxRune
	}
	return rg
}

// normalize sorts rs in place and merges overlapping or adjacent ranges.
func normalize(rs []Range) []Range {
	if len(rs) < 2 {
		return rs
	}
	slices.SortFunc(rs, func(a, b Range) int {
		if a.Lo != b.Lo {
			return int(a.Lo - b.Lo)
		}
		return int(a.Hi - b.Hi)
	})
	w := 0
	for _, rg := range rs[1:] {
		last := &rs[w]
		if rg.Lo <= last.Hi+1 {
			if rg.Hi > last.Hi {
				last.Hi = rg.Hi
			}
			continue
		}
		w++
		rs[w] = rg
	}
	return rs[:w+1]
}
