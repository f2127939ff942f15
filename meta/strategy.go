package meta

import (
	"github.com/coregx/regx/syntax"
)

// Strategy is the way an Engine finds the positions it hands to the matcher.
//
// Independently of the strategy, a pattern with a required literal also
// gets a Boyer-Moore pre-filter that rejects subjects (and tails of
// subjects) the literal does not occur in.
type Strategy int

const (
	// UseBacktrack tries the matcher at every position.
	UseBacktrack Strategy = iota

	// UseAnchored tries the matcher at the search start only. Selected when
	// every match must begin at the start of the text (\A, or ^ without m).
	UseAnchored

	// UsePrefilter tries the matcher only where a head literal occurs.
	// Selected when every match begins with one of a small set of literals.
	UsePrefilter

	// UseBoyerMoore tries the matcher at every position while the required
	// literal still occurs ahead. Selected when there are no head literals
	// but there is a required literal.
	UseBoyerMoore
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseBacktrack:
		return "UseBacktrack"
	case UseAnchored:
		return "UseAnchored"
	case UsePrefilter:
		return "UsePrefilter"
	case UseBoyerMoore:
		return "UseBoyerMoore"
	default:
		return "Unknown"
	}
}

// selectStrategy picks the strategy from the parts that compilation built.
func selectStrategy(anchored, hasPrefilter, hasBM bool) Strategy {
	switch {
	case anchored:
		return UseAnchored
	case hasPrefilter:
		return UsePrefilter
	case hasBM:
		return UseBoyerMoore
	default:
		return UseBacktrack
	}
}

// StrategyReason explains why s was selected.
func StrategyReason(s Strategy) string {
	switch s {
	case UseAnchored:
		return "every match starts at the beginning of the text"
	case UsePrefilter:
		return "every match starts with a head literal"
	case UseBoyerMoore:
		return "every match contains a required literal"
	default:
		return "no literal or anchor to search for"
	}
}

// isStartAnchored reports whether every match of tree must begin at offset
// 0. Inline modifiers are not looked through, so (?m)^a is conservatively
// reported as unanchored.
func isStartAnchored(tree *syntax.Tree) bool {
	return startAnchored(tree.Root, tree.Flags, 0)
}

func startAnchored(t *syntax.Token, flags syntax.Flags, depth int) bool {
	if depth > 100 {
		return false
	}
	switch t.Kind {
	case syntax.KindAnchor:
		switch t.Anchor {
		case syntax.AnchorTextStart:
			return true
		case syntax.AnchorLineStart:
			return !flags.Has(syntax.Multiline)
		}
		return false
	case syntax.KindConcat:
		return len(t.Sub) > 0 && startAnchored(t.Sub[0], flags, depth+1)
	case syntax.KindParen, syntax.KindIndependent:
		return startAnchored(t.Sub[0], flags, depth+1)
	case syntax.KindUnion:
		for _, sub := range t.Sub {
			if !startAnchored(sub, flags, depth+1) {
				return false
			}
		}
		return len(t.Sub) > 0
	default:
		return false
	}
}
