package syntax

import (
	"fmt"

	"github.com/coregx/regx/ranges"
)

// Factory creates the tokens of one pattern and owns them. Canonical tokens
// (dot, anchors, empty) are allocated once per factory and shared, and named
// ranges resolve through the ranges registry so that repeated requests for the
// same name share one immutable set.
//
// A Factory is not safe for concurrent use.
type Factory struct {
	tokens []*Token

	empty   *Token
	dot     *Token
	anchors [numAnchors]*Token
	named   map[rangeKey]*Token
}

type rangeKey struct {
	name    string
	negated bool
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	f := &Factory{named: make(map[rangeKey]*Token)}
	f.empty = f.add(&Token{Kind: KindEmpty})
	f.dot = f.add(&Token{Kind: KindDot})
	for a := range f.anchors {
		f.anchors[a] = f.add(&Token{Kind: KindAnchor, Anchor: AnchorKind(a)})
	}
	return f
}

func (f *Factory) add(t *Token) *Token {
	f.tokens = append(f.tokens, t)
	return t
}

// Len returns the number of tokens the factory has allocated.
func (f *Factory) Len() int {
	return len(f.tokens)
}

// Empty returns the canonical empty token.
func (f *Factory) Empty() *Token { return f.empty }

// Dot returns the canonical dot token.
func (f *Factory) Dot() *Token { return f.dot }

// Anchor returns the canonical token for a.
func (f *Factory) Anchor(a AnchorKind) *Token {
	return f.anchors[a]
}

// Char returns a token matching c.
func (f *Factory) Char(c rune) *Token {
	return f.add(&Token{Kind: KindChar, Rune: c})
}

// String returns a token matching the literal rs. Zero runes yield the empty
// token and one rune yields a Char.
func (f *Factory) String(rs []rune) *Token {
	switch len(rs) {
	case 0:
		return f.empty
	case 1:
		return f.Char(rs[0])
	}
	return f.add(&Token{Kind: KindString, Runes: rs})
}

// Class returns a range token over s.
func (f *Factory) Class(s *ranges.Set, negated bool) *Token {
	return f.add(&Token{Kind: KindRange, Set: s, Negated: negated})
}

// Range returns the range token for a registered category, block or
// pseudo-range name. Lookup is case-sensitive. Unknown names yield an error
// wrapping ErrUnknownRangeName.
func (f *Factory) Range(name string, negated bool) (*Token, error) {
	key := rangeKey{name, negated}
	if t, ok := f.named[key]; ok {
		return t, nil
	}
	s, ok := ranges.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRangeName, name)
	}
	t := f.add(&Token{Kind: KindRange, Set: s, Negated: negated, Name: name})
	f.named[key] = t
	return t, nil
}

// Concat returns a token matching subs in sequence.
func (f *Factory) Concat(subs ...*Token) *Token {
	switch len(subs) {
	case 0:
		return f.empty
	case 1:
		return subs[0]
	}
	return f.add(&Token{Kind: KindConcat, Sub: subs})
}

// Union returns a token matching the first of subs that succeeds.
func (f *Factory) Union(subs ...*Token) *Token {
	switch len(subs) {
	case 0:
		return f.empty
	case 1:
		return subs[0]
	}
	return f.add(&Token{Kind: KindUnion, Sub: subs})
}

// Closure returns a token repeating sub between min and max times.
// max < 0 means unbounded.
func (f *Factory) Closure(sub *Token, min, max int, greedy bool) *Token {
	if max < 0 {
		max = -1
	}
	return f.add(&Token{Kind: KindClosure, Sub: []*Token{sub}, Min: min, Max: max, Greedy: greedy})
}

// Paren returns a group token. group 0 is non-capturing.
func (f *Factory) Paren(sub *Token, group int, name string) *Token {
	return f.add(&Token{Kind: KindParen, Sub: []*Token{sub}, Group: group, Name: name})
}

// Backref returns a token matching the text of group n.
func (f *Factory) Backref(n int) *Token {
	return f.add(&Token{Kind: KindBackref, Group: n})
}

// Look returns a lookaround assertion over sub.
func (f *Factory) Look(sub *Token, behind, negate bool) *Token {
	return f.add(&Token{Kind: KindLook, Sub: []*Token{sub}, Behind: behind, Negate: negate})
}

// Modifier returns a token matching sub with add set and remove cleared.
func (f *Factory) Modifier(sub *Token, add, remove Flags) *Token {
	return f.add(&Token{Kind: KindModifier, Sub: []*Token{sub}, Add: add, Remove: remove})
}

// Independent returns an atomic group over sub.
func (f *Factory) Independent(sub *Token) *Token {
	return f.add(&Token{Kind: KindIndependent, Sub: []*Token{sub}})
}

// Condition returns a conditional group. When cond is nil the condition is
// "group has participated in the match".
func (f *Factory) Condition(group int, cond, yes, no *Token) *Token {
	return f.add(&Token{Kind: KindCondition, Group: group, Cond: cond, Sub: []*Token{yes, no}})
}
