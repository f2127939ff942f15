package ranges

import (
	"fmt"
	"sync"
)

// Mode selects which definition of the convenience classes applies.
type Mode uint8

const (
	// Perl is the default: ASCII \d, \w and \s.
	Perl Mode = iota
	// Unicode uses general categories for \d, \w and \s.
	Unicode
	// XML uses the XML Schema Part 2 definitions.
	XML
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case Perl:
		return "Perl"
	case Unicode:
		return "Unicode"
	case XML:
		return "XML"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// Class identifies a convenience class escape.
type Class uint8

const (
	Digit     Class = iota // \d
	Word                   // \w
	Space                  // \s
	NameStart              // \i
	Name                   // \c
	numClasses
)

// String returns the escape that denotes the class.
func (c Class) String() string {
	switch c {
	case Digit:
		return `\d`
	case Word:
		return `\w`
	case Space:
		return `\s`
	case NameStart:
		return `\i`
	case Name:
		return `\c`
	default:
		return fmt.Sprintf("Class(%d)", c)
	}
}

// XML 1.0 (Fifth Edition) NameStartChar.
var nameStartRanges = []Range{
	{':', ':'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'},
	{0xC0, 0xD6}, {0xD8, 0xF6}, {0xF8, 0x2FF}, {0x370, 0x37D},
	{0x37F, 0x1FFF}, {0x200C, 0x200D}, {0x2070, 0x218F}, {0x2C00, 0x2FEF},
	{0x3001, 0xD7FF}, {0xF900, 0xFDCF}, {0xFDF0, 0xFFFD}, {0x10000, 0xEFFFF},
}

// NameChar adds these to NameStartChar.
var nameExtraRanges = []Range{
	{'-', '.'}, {'0', '9'}, {0xB7, 0xB7}, {0x300, 0x36F}, {0x203F, 0x2040},
}

var classTable = sync.OnceValue(func() [3][numClasses]*Set {
	var t [3][numClasses]*Set

	nameStart := New(nameStartRanges...)
	name := nameStart.Union(New(nameExtraRanges...))
	for m := range t {
		t[m][NameStart] = nameStart
		t[m][Name] = name
	}

	t[Perl][Digit] = New(Range{'0', '9'})
	t[Perl][Word] = New(Range{'0', '9'}, Range{'A', 'Z'}, Range{'_', '_'}, Range{'a', 'z'})
	t[Perl][Space] = Of(' ', '\t', '\n', '\r', '\f')

	nd := MustLookup("Nd")
	t[Unicode][Digit] = nd
	t[Unicode][Word] = MustLookup("L").Union(MustLookup("M")).Union(nd).Union(MustLookup("Pc"))
	t[Unicode][Space] = MustLookup("Z").Union(New(Range{'\t', '\r'}, Range{0x85, 0x85}))

	t[XML][Digit] = nd
	t[XML][Word] = MustLookup("P").Union(MustLookup("Z")).Union(MustLookup("C")).Complement()
	t[XML][Space] = Of(' ', '\t', '\n', '\r')
	return t
})

// ClassSet returns the set denoted by class c under mode m.
// \i and \c are the XML name classes in every mode.
func ClassSet(c Class, m Mode) *Set {
	if c >= numClasses || m > XML {
		return &Set{}
	}
	return classTable()[m][c]
}

// IsWordChar reports whether c is a word character for word-boundary tests:
// [0-9A-Za-z_] when unicode is false, the Unicode \w class otherwise.
func IsWordChar(c rune, unicode bool) bool {
	if c < 0x80 {
		return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
	}
	if !unicode {
		return false
	}
	return classTable()[Unicode][Word].Contains(c)
}
