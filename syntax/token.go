package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/regx/ranges"
)

// Kind identifies the type of a Token and determines which fields are valid.
type Kind uint8

const (
	// KindEmpty matches the empty string
	KindEmpty Kind = iota

	// KindChar matches a single code point (Rune)
	KindChar

	// KindRange matches one code point in Set, or outside it when Negated
	KindRange

	// KindDot matches any code point except line terminators (unless s)
	KindDot

	// KindAnchor is a zero-width assertion (Anchor)
	KindAnchor

	// KindString matches a literal sequence (Runes)
	KindString

	// KindConcat matches Sub in order
	KindConcat

	// KindUnion matches the first alternative of Sub that leads to success
	KindUnion

	// KindClosure repeats Sub[0] between Min and Max times (Max -1 = unbounded)
	KindClosure

	// KindParen groups Sub[0]; Group > 0 marks a capture group
	KindParen

	// KindBackref matches the text captured by Group
	KindBackref

	// KindLook asserts Sub[0] ahead of or behind the cursor without consuming
	KindLook

	// KindModifier applies Add and removes Remove while matching Sub[0]
	KindModifier

	// KindIndependent matches Sub[0] atomically: no backtracking into it
	KindIndependent

	// KindCondition matches Sub[0] when its condition holds, Sub[1] otherwise
	KindCondition
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindChar:
		return "Char"
	case KindRange:
		return "Range"
	case KindDot:
		return "Dot"
	case KindAnchor:
		return "Anchor"
	case KindString:
		return "String"
	case KindConcat:
		return "Concat"
	case KindUnion:
		return "Union"
	case KindClosure:
		return "Closure"
	case KindParen:
		return "Paren"
	case KindBackref:
		return "Backref"
	case KindLook:
		return "Look"
	case KindModifier:
		return "Modifier"
	case KindIndependent:
		return "Independent"
	case KindCondition:
		return "Condition"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// AnchorKind identifies a zero-width assertion.
type AnchorKind uint8

const (
	AnchorLineStart       AnchorKind = iota // ^
	AnchorLineEnd                           // $
	AnchorTextStart                         // \A
	AnchorTextEndNewline                    // \Z
	AnchorTextEnd                           // \z
	AnchorWordBoundary                      // \b
	AnchorNonWordBoundary                   // \B
	AnchorWordStart                         // \<
	AnchorWordEnd                           // \>
	numAnchors
)

var anchorSyntax = [numAnchors]string{`^`, `$`, `\A`, `\Z`, `\z`, `\b`, `\B`, `\<`, `\>`}

// String returns the pattern syntax of the anchor
func (a AnchorKind) String() string {
	if a < numAnchors {
		return anchorSyntax[a]
	}
	return fmt.Sprintf("Anchor(%d)", a)
}

// Token is one node of a parsed pattern. Kind determines which fields are
// valid. Tokens are created by a Factory and are immutable once the parse
// that produced them has returned.
type Token struct {
	Kind Kind

	Rune  rune   // Char
	Runes []rune // String

	Set     *ranges.Set // Range
	Negated bool        // Range
	Name    string      // Range (category or block), Paren (group name)

	Anchor AnchorKind // Anchor

	Min, Max int  // Closure
	Greedy   bool // Closure

	Group int // Paren, Backref, Condition (0 when the condition is a Look)

	Behind bool // Look
	Negate bool // Look

	Add, Remove Flags // Modifier

	Cond *Token   // Condition with a lookaround test
	Sub  []*Token // children
}

// String renders a one-line description of t, without its children.
func (t *Token) String() string {
	switch t.Kind {
	case KindChar:
		return "Char " + strconv.QuoteRune(t.Rune)
	case KindString:
		return "String " + strconv.Quote(string(t.Runes))
	case KindRange:
		var b strings.Builder
		b.WriteString("Range ")
		if t.Negated {
			b.WriteString("^")
		}
		if t.Name != "" {
			b.WriteString(t.Name)
		} else {
			b.WriteString(t.Set.String())
		}
		return b.String()
	case KindAnchor:
		return "Anchor " + t.Anchor.String()
	case KindClosure:
		mode := "greedy"
		if !t.Greedy {
			mode = "lazy"
		}
		if t.Max < 0 {
			return fmt.Sprintf("Closure{%d,} %s", t.Min, mode)
		}
		return fmt.Sprintf("Closure{%d,%d} %s", t.Min, t.Max, mode)
	case KindParen:
		switch {
		case t.Group == 0:
			return "Paren"
		case t.Name != "":
			return fmt.Sprintf("Paren #%d <%s>", t.Group, t.Name)
		default:
			return fmt.Sprintf("Paren #%d", t.Group)
		}
	case KindBackref:
		return fmt.Sprintf("Backref \\%d", t.Group)
	case KindLook:
		dir, pol := "ahead", "positive"
		if t.Behind {
			dir = "behind"
		}
		if t.Negate {
			pol = "negative"
		}
		return "Look " + dir + " " + pol
	case KindModifier:
		s := "Modifier (?" + t.Add.String()
		if t.Remove != 0 {
			s += "-" + t.Remove.String()
		}
		return s + ")"
	case KindCondition:
		if t.Cond == nil {
			return fmt.Sprintf("Condition (%d)", t.Group)
		}
		return "Condition (look)"
	default:
		return t.Kind.String()
	}
}

// IsZeroWidth reports whether t never consumes input.
func (t *Token) IsZeroWidth() bool {
	switch t.Kind {
	case KindEmpty, KindAnchor, KindLook:
		return true
	}
	return false
}
