package literal

import (
	"unicode/utf8"

	"github.com/coregx/regx/ranges"
	"github.com/coregx/regx/syntax"
)

// maxDepth bounds recursion over malformed or hand-built trees.
const maxDepth = 100

// ExtractorConfig limits literal extraction.
type ExtractorConfig struct {
	// MaxLiterals limits the number of alternative head literals. Beyond it
	// the head literal set is abandoned. Default: 64.
	MaxLiterals int

	// MaxLiteralLen truncates each head literal. Default: 64.
	MaxLiteralLen int

	// MaxClassSize is the largest character class (after case folding) that
	// is expanded into one literal per member. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts literals from parsed patterns.
//
//	"hello"         prefixes ["hello"]          required "hello"
//	"(foo|bar)\d"   prefixes ["foo", "bar"]     required none
//	"[ab]x+yz"      prefixes ["ax", "bx"]       required "yz"
//	"\w+@host\."    prefixes none               required "@host."
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns literals one of which starts every match of tree,
// or an empty Seq when no such finite set exists (a match may start with
// anything, or may be empty). The literals are exact bytes; case-insensitive
// characters are expanded into their fold orbits.
func (e *Extractor) ExtractPrefixes(tree *syntax.Tree) *Seq {
	seq := e.prefixes(tree.Root, tree.Flags, 0)
	if seq == nil || seq.IsEmpty() || seq.hasEmpty() {
		return NewSeq()
	}
	for i := range seq.literals {
		if lit := &seq.literals[i]; len(lit.Bytes) > e.config.MaxLiteralLen {
			lit.Bytes = lit.Bytes[:e.config.MaxLiteralLen]
			lit.Complete = false
		}
	}
	seq.Minimize()
	return seq
}

// prefixes returns the head literals of t, or nil when they are unbounded.
func (e *Extractor) prefixes(t *syntax.Token, flags syntax.Flags, depth int) *Seq {
	if depth > maxDepth {
		return nil
	}
	fold := flags.Has(syntax.IgnoreCase)
	switch t.Kind {
	case syntax.KindEmpty, syntax.KindAnchor, syntax.KindLook:
		return NewSeq(NewLiteral(nil, true))

	case syntax.KindChar:
		return e.runeSeq(t.Rune, fold)

	case syntax.KindString:
		acc := NewSeq(NewLiteral(nil, true))
		for _, r := range t.Runes {
			next := e.runeSeq(r, fold)
			if next == nil {
				acc.makeInexact()
				break
			}
			acc = e.cross(acc, next)
			if acc == nil {
				return nil
			}
			if acc.allInexact() {
				break
			}
		}
		return acc

	case syntax.KindRange:
		if t.Negated {
			return nil
		}
		s := t.Set
		if fold {
			s = s.Fold()
		}
		if s.Count() > e.config.MaxClassSize || s.Contains(utf8.RuneError) {
			return nil
		}
		var lits []Literal
		for _, rg := range s.Ranges() {
			for c := rg.Lo; c <= rg.Hi; c++ {
				lits = append(lits, NewLiteral([]byte(string(c)), true))
			}
		}
		return NewSeq(lits...)

	case syntax.KindConcat:
		acc := NewSeq(NewLiteral(nil, true))
		for _, sub := range t.Sub {
			next := e.prefixes(sub, flags, depth+1)
			if next == nil {
				acc.makeInexact()
				break
			}
			crossed := e.cross(acc, next)
			if crossed == nil {
				acc.makeInexact()
				break
			}
			acc = crossed
			if acc.allInexact() {
				break
			}
		}
		return acc

	case syntax.KindUnion, syntax.KindCondition:
		var lits []Literal
		for _, sub := range t.Sub {
			seq := e.prefixes(sub, flags, depth+1)
			if seq == nil {
				return nil
			}
			lits = append(lits, seq.literals...)
			if len(lits) > e.config.MaxLiterals {
				return nil
			}
		}
		return NewSeq(lits...)

	case syntax.KindClosure:
		if t.Max == 0 {
			return NewSeq(NewLiteral(nil, true))
		}
		seq := e.prefixes(t.Sub[0], flags, depth+1)
		if seq == nil {
			return nil
		}
		if t.Min != 1 || t.Max != 1 {
			seq.makeInexact()
		}
		if t.Min == 0 {
			seq.literals = append(seq.literals, NewLiteral(nil, true))
		}
		return seq

	case syntax.KindParen, syntax.KindIndependent:
		return e.prefixes(t.Sub[0], flags, depth+1)

	case syntax.KindModifier:
		return e.prefixes(t.Sub[0], (flags|t.Add)&^t.Remove, depth+1)
	}
	// Dot, Backref
	return nil
}

// runeSeq returns the literals matching a single character, or nil for
// U+FFFD, which also matches any invalid byte of the subject.
func (e *Extractor) runeSeq(r rune, fold bool) *Seq {
	if r == utf8.RuneError {
		return nil
	}
	if !fold {
		return NewSeq(NewLiteral([]byte(string(r)), true))
	}
	orbit := ranges.FoldOrbit(r)
	if len(orbit) > e.config.MaxClassSize {
		return nil
	}
	lits := make([]Literal, len(orbit))
	for i, c := range orbit {
		lits[i] = NewLiteral([]byte(string(c)), true)
	}
	return NewSeq(lits...)
}

// cross extends every complete literal of a with every literal of b.
// It returns nil when the product exceeds MaxLiterals.
func (e *Extractor) cross(a, b *Seq) *Seq {
	var out []Literal
	for _, x := range a.literals {
		if !x.Complete {
			out = append(out, x)
			continue
		}
		for _, y := range b.literals {
			joined := make([]byte, 0, len(x.Bytes)+len(y.Bytes))
			joined = append(append(joined, x.Bytes...), y.Bytes...)
			out = append(out, NewLiteral(joined, y.Complete))
		}
		if len(out) > e.config.MaxLiterals {
			return nil
		}
	}
	return NewSeq(out...)
}

// Required is a run of characters that every match contains contiguously.
// When Fold is set the run matches ASCII case-insensitively; every rune of a
// folded run is either ASCII-foldable or has no case variants.
type Required struct {
	Runes []rune
	Fold  bool
}

// Bytes returns the UTF-8 encoding of the run.
func (r *Required) Bytes() []byte {
	return []byte(string(r.Runes))
}

// String returns the run as a string.
func (r *Required) String() string {
	return string(r.Runes)
}

// ExtractRequired returns the longest run of characters that every match of
// tree contains, or nil when there is none. Ties go to the leftmost run.
func (e *Extractor) ExtractRequired(tree *syntax.Tree) *Required {
	w := &runWalker{}
	w.walk(tree.Root, tree.Flags, 0)
	w.flush()
	return w.best
}

// runWalker scans the mandatory path of a token tree, collecting runs of
// adjacent characters.
type runWalker struct {
	cur  []rune
	fold bool
	best *Required
}

func (w *runWalker) flush() {
	if len(w.cur) > 0 && (w.best == nil || len(w.cur) > len(w.best.Runes)) {
		w.best = &Required{Runes: w.cur, Fold: w.fold}
	}
	w.cur = nil
}

func (w *runWalker) add(r rune, fold bool) {
	if r == utf8.RuneError {
		// Matches invalid bytes too, so it has no fixed encoding.
		w.flush()
		return
	}
	if fold {
		switch {
		case len(ranges.FoldOrbit(r)) == 1:
			// Runes without case variants join either kind of run.
			fold = w.fold && len(w.cur) > 0
		case !ranges.IsASCIIFoldable(r):
			w.flush()
			return
		}
	}
	if len(w.cur) > 0 && fold != w.fold {
		w.flush()
	}
	if len(w.cur) == 0 {
		w.fold = fold
	}
	w.cur = append(w.cur, r)
}

func (w *runWalker) walk(t *syntax.Token, flags syntax.Flags, depth int) {
	if depth > maxDepth {
		w.flush()
		return
	}
	fold := flags.Has(syntax.IgnoreCase)
	switch t.Kind {
	case syntax.KindEmpty, syntax.KindAnchor, syntax.KindLook:
		// Zero-width: neighbours stay adjacent.

	case syntax.KindChar:
		w.add(t.Rune, fold)

	case syntax.KindString:
		for _, r := range t.Runes {
			w.add(r, fold)
		}

	case syntax.KindRange:
		if c, ok := t.Set.Single(); ok && !t.Negated {
			w.add(c, fold)
			return
		}
		w.flush()

	case syntax.KindConcat:
		for _, sub := range t.Sub {
			w.walk(sub, flags, depth+1)
		}

	case syntax.KindParen, syntax.KindIndependent:
		w.walk(t.Sub[0], flags, depth+1)

	case syntax.KindModifier:
		w.walk(t.Sub[0], (flags|t.Add)&^t.Remove, depth+1)

	case syntax.KindClosure:
		switch {
		case t.Min == 1 && t.Max == 1:
			w.walk(t.Sub[0], flags, depth+1)
		case t.Min >= 1:
			// The first iteration is mandatory but its neighbours are not
			// adjacent to it.
			w.flush()
			w.walk(t.Sub[0], flags, depth+1)
			w.flush()
		default:
			w.flush()
		}

	default:
		// Dot, Union, Backref, Condition
		w.flush()
	}
}
