package syntax

import (
	"strings"

	"github.com/coregx/regx/ranges"
)

// Flags control parsing and lowering of a pattern.
type Flags uint16

const (
	// IgnoreCase (i) matches letters under simple case folding
	IgnoreCase Flags = 1 << iota

	// Multiline (m) makes ^ and $ match at line boundaries
	Multiline

	// DotAll (s) lets . match line terminators
	DotAll

	// Extended (x) ignores whitespace and #-comments outside classes
	Extended

	// UnicodeClasses (u) makes \d, \w and \s use Unicode categories
	UnicodeClasses

	// UnicodeWordBoundary (w) makes \b, \B, \< and \> use Unicode word characters
	UnicodeWordBoundary

	// XMLSchema (X) selects the XML Schema regular expression grammar
	XMLSchema

	// NoFixedString (F) disables the Boyer-Moore pre-filter
	NoFixedString

	// NoHeadLiteral (H) disables the head-literal prefilter
	NoHeadLiteral
)

// inlineFlags are the flags a pattern may toggle with (?imsxwu-imsxwu).
const inlineFlags = IgnoreCase | Multiline | DotAll | Extended | UnicodeClasses | UnicodeWordBoundary

var flagLetters = []struct {
	letter byte
	flag   Flags
}{
	{'i', IgnoreCase},
	{'m', Multiline},
	{'s', DotAll},
	{'x', Extended},
	{'u', UnicodeClasses},
	{'w', UnicodeWordBoundary},
	{'X', XMLSchema},
	{'F', NoFixedString},
	{'H', NoHeadLiteral},
}

func flagFor(c byte) (Flags, bool) {
	for _, fl := range flagLetters {
		if fl.letter == c {
			return fl.flag, true
		}
	}
	return 0, false
}

// ParseFlags parses an option string such as "imX". Each letter may appear
// at most once; unknown letters produce an *Error with CodeInvalidFlag.
func ParseFlags(opts string) (Flags, error) {
	var f Flags
	for i := 0; i < len(opts); i++ {
		fl, ok := flagFor(opts[i])
		if !ok || f&fl != 0 {
			return 0, &Error{Code: CodeInvalidFlag, Pattern: opts, Offset: i}
		}
		f |= fl
	}
	return f, nil
}

// String returns the option letters of f in canonical order.
func (f Flags) String() string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			b.WriteByte(fl.letter)
		}
	}
	return b.String()
}

// Has reports whether every flag in fl is set in f.
func (f Flags) Has(fl Flags) bool {
	return f&fl == fl
}

// ClassMode reports which convenience-class definitions apply under f.
func (f Flags) ClassMode() ranges.Mode {
	switch {
	case f&XMLSchema != 0:
		return ranges.XML
	case f&UnicodeClasses != 0:
		return ranges.Unicode
	default:
		return ranges.Perl
	}
}
