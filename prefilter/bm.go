package prefilter

import "fmt"

// BMPattern searches for one literal with the Boyer-Moore-Horspool
// bad-character rule. It is built for the required literal of a pattern: if
// the literal does not occur in a window of the subject, no match can lie in
// that window.
//
// Under case folding the literal must be ASCII-foldable (every rune with a
// case variant is ASCII); bytes are compared after ASCII lowercasing.
//
// A BMPattern is immutable and safe for concurrent use.
type BMPattern struct {
	pattern []byte
	folded  []byte // lowercased pattern, nil unless fold
	shift   [256]int
}

// NewBMPattern builds the shift table for lit.
func NewBMPattern(lit []byte, fold bool) *BMPattern {
	bm := &BMPattern{pattern: append([]byte(nil), lit...)}
	key := bm.pattern
	if fold {
		bm.folded = make([]byte, len(lit))
		for i, c := range lit {
			bm.folded[i] = lower(c)
		}
		key = bm.folded
	}

	m := len(key)
	for i := range bm.shift {
		bm.shift[i] = max(m, 1)
	}
	for i := 0; i < m-1; i++ {
		d := m - 1 - i
		c := key[i]
		bm.shift[c] = d
		if fold && c >= 'a' && c <= 'z' {
			bm.shift[c-'a'+'A'] = d
		}
	}
	return bm
}

// Len returns the literal length in bytes.
func (bm *BMPattern) Len() int { return len(bm.pattern) }

// IsFold reports whether the pattern compares case-insensitively.
func (bm *BMPattern) IsFold() bool { return bm.folded != nil }

func (bm *BMPattern) String() string {
	if bm.folded != nil {
		return fmt.Sprintf("bm{%q, fold}", bm.pattern)
	}
	return fmt.Sprintf("bm{%q}", bm.pattern)
}

// Matches returns the offset in content of the first occurrence of the
// literal wholly inside content[start:limit], or -1. start and limit are
// clamped to [0, len(content)]. An empty literal matches at start.
func (bm *BMPattern) Matches(content []byte, start, limit int) int {
	start = max(start, 0)
	limit = min(limit, len(content))
	m := len(bm.pattern)
	if m == 0 {
		if start <= limit {
			return start
		}
		return -1
	}

	key := bm.pattern
	if bm.folded != nil {
		key = bm.folded
	}
	// i is the index of the last byte of the current window.
	for i := start + m - 1; i < limit; {
		j, k := m-1, i
		for j >= 0 && bm.eq(content[k], key[j]) {
			j--
			k--
		}
		if j < 0 {
			return k + 1
		}
		i += bm.shift[content[i]]
	}
	return -1
}

func (bm *BMPattern) eq(c, p byte) bool {
	if bm.folded != nil {
		return lower(c) == p
	}
	return c == p
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
