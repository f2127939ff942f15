// Package literal analyses parsed patterns for literal text that every match
// must contain.
//
// Two analyses feed the search layer:
//   - head literals: a Seq of alternatives, one of which starts every match
//     (e.g. "foo" and "bar" for /(foo|bar)\d+/), used by candidate prefilters;
//   - the required literal: the longest run of characters every match
//     contains somewhere (e.g. "@example." for /\w+@example\.\w+/), handed to
//     the Boyer-Moore pre-filter.
package literal

import (
	"bytes"
	"slices"
)

// Literal is a byte sequence extracted from a pattern. Complete is true when
// the literal spells out an entire match of the token it came from, so that
// whatever follows the token may extend it.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debugging representation: literal{bytes, complete=bool}.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// Bytes returns the literal byte strings in order.
func (s *Seq) Bytes() [][]byte {
	if s.IsEmpty() {
		return nil
	}
	out := make([][]byte, len(s.literals))
	for i, lit := range s.literals {
		out[i] = lit.Bytes
	}
	return out
}

// hasEmpty reports whether any literal is the empty string.
func (s *Seq) hasEmpty() bool {
	for _, lit := range s.literals {
		if len(lit.Bytes) == 0 {
			return true
		}
	}
	return false
}

// makeInexact clears the Complete flag of every literal.
func (s *Seq) makeInexact() {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// allInexact reports whether no literal can be extended further.
func (s *Seq) allInexact() bool {
	for _, lit := range s.literals {
		if lit.Complete {
			return false
		}
	}
	return true
}

// Minimize removes literals that have a shorter literal of the sequence as
// a prefix: for prefix search the shorter one already finds every candidate.
// Duplicates collapse to one.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	slices.SortStableFunc(s.literals, func(a, b Literal) int {
		return len(a.Bytes) - len(b.Bytes)
	})
	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(cur.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by all literals.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		prefix = commonPrefix(prefix, lit.Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}
	return bytes.Clone(prefix)
}

func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
