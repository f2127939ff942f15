// Package prefilter finds candidate match positions before the backtracking
// matcher runs.
//
// Two kinds of filter are built from the literal analysis of a pattern:
//   - a Prefilter over head literals reports positions where a match may
//     start (memchr, memmem, or Aho-Corasick for many literals);
//   - a BMPattern over the required literal reports whether a window of the
//     subject can contain a match at all.
//
// Neither ever rejects a position where a match exists.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/regx/literal"
	"github.com/coregx/regx/simd"
)

// Prefilter reports candidate start positions. Every match of the pattern
// starts at a position Find reports.
type Prefilter interface {
	// Find returns the first candidate at or after start, or -1.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is always a match of the
	// literal set, i.e. the pattern is exactly the literal alternation.
	IsComplete() bool

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int
}

// Builder selects a prefilter for a set of head literals:
//
//	one single-byte literal        memchr
//	one longer literal             memmem
//	up to three distinct lead bytes
//	with a single-byte literal     memchr2 / memchr3 on the lead bytes
//	otherwise                      Aho-Corasick
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a builder for head literals, as returned by
// literal.Extractor.ExtractPrefixes.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the prefilter, or nil when there are no usable literals.
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() {
		return nil
	}
	for i := 0; i < seq.Len(); i++ {
		if seq.Get(i).Len() == 0 {
			return nil
		}
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if lit.Len() == 1 {
			return &memchrPrefilter{needle: lit.Bytes[0], complete: lit.Complete}
		}
		return &memmemPrefilter{needle: append([]byte(nil), lit.Bytes...), complete: lit.Complete}
	}

	if lead := leadBytes(seq); len(lead) <= 3 && minLen(seq) == 1 {
		return &byteSetPrefilter{bytes: lead}
	}
	return newAhoCorasick(seq)
}

func minLen(seq *literal.Seq) int {
	n := seq.Get(0).Len()
	for i := 1; i < seq.Len(); i++ {
		n = min(n, seq.Get(i).Len())
	}
	return n
}

// leadBytes returns the distinct first bytes of the literals.
func leadBytes(seq *literal.Seq) []byte {
	var seen [256]bool
	var out []byte
	for i := 0; i < seq.Len(); i++ {
		c := seq.Get(i).Bytes[0]
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func allComplete(seq *literal.Seq) bool {
	for i := 0; i < seq.Len(); i++ {
		if !seq.Get(i).Complete {
			return false
		}
	}
	return true
}

// memchrPrefilter scans for a single byte.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	if i := simd.Memchr(haystack[start:], p.needle); i >= 0 {
		return start + i
	}
	return -1
}

func (p *memchrPrefilter) IsComplete() bool { return p.complete }

func (p *memchrPrefilter) HeapBytes() int { return 0 }

// memmemPrefilter scans for a single substring.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	if i := simd.Memmem(haystack[start:], p.needle); i >= 0 {
		return start + i
	}
	return -1
}

func (p *memmemPrefilter) IsComplete() bool { return p.complete }

func (p *memmemPrefilter) HeapBytes() int { return len(p.needle) }

// byteSetPrefilter scans for up to three lead bytes.
type byteSetPrefilter struct {
	bytes []byte
}

func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	h := haystack[start:]
	var i int
	switch len(p.bytes) {
	case 1:
		i = simd.Memchr(h, p.bytes[0])
	case 2:
		i = simd.Memchr2(h, p.bytes[0], p.bytes[1])
	default:
		i = simd.Memchr3(h, p.bytes[0], p.bytes[1], p.bytes[2])
	}
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *byteSetPrefilter) IsComplete() bool { return false }

func (p *byteSetPrefilter) HeapBytes() int { return len(p.bytes) }

// ahoCorasickPrefilter scans for many literals at once.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
	size     int
}

func newAhoCorasick(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	size := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		size += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto, complete: allComplete(seq), size: size}
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool { return p.complete }

// HeapBytes approximates the automaton by its pattern bytes.
func (p *ahoCorasickPrefilter) HeapBytes() int { return p.size }
