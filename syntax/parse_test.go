package syntax

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, pattern string, flags Flags) *Tree {
	t.Helper()
	tree, err := Parse(pattern, flags)
	require.NoError(t, err, "pattern %q", pattern)
	return tree
}

func TestGroupNumbering(t *testing.T) {
	tree := mustParse(t, `(a)(?:b)(?<x>c)((d))(?P<y>e)`, 0)
	assert.Equal(t, 5, tree.Groups)
	if diff := cmp.Diff([]string{"", "", "x", "", "", "y"}, tree.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, tree.GroupIndex("x"))
	assert.Equal(t, 5, tree.GroupIndex("y"))
	assert.Equal(t, -1, tree.GroupIndex("z"))
	assert.Equal(t, -1, tree.GroupIndex(""))
}

func TestConcatMergesLiterals(t *testing.T) {
	tree := mustParse(t, `abc`, 0)
	require.Equal(t, KindString, tree.Root.Kind)
	assert.Equal(t, "abc", string(tree.Root.Runes))

	tree = mustParse(t, `ab*`, 0)
	require.Equal(t, KindConcat, tree.Root.Kind)
	require.Len(t, tree.Root.Sub, 2)
	assert.Equal(t, KindChar, tree.Root.Sub[0].Kind)
	assert.Equal(t, KindClosure, tree.Root.Sub[1].Kind)

	tree = mustParse(t, `a(?#comment)b`, 0)
	assert.Equal(t, "ab", string(tree.Root.Runes))

	tree = mustParse(t, "a b # trailing\n c", Extended)
	assert.Equal(t, "abc", string(tree.Root.Runes))
}

func TestQuantifiers(t *testing.T) {
	tests := []struct {
		pattern string
		min     int
		max     int
		greedy  bool
	}{
		{`a*`, 0, -1, true},
		{`a+`, 1, -1, true},
		{`a?`, 0, 1, true},
		{`a*?`, 0, -1, false},
		{`a{3}`, 3, 3, true},
		{`a{2,}`, 2, -1, true},
		{`a{2,5}?`, 2, 5, false},
		{`a{,4}`, 0, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root := mustParse(t, tt.pattern, 0).Root
			require.Equal(t, KindClosure, root.Kind)
			assert.Equal(t, tt.min, root.Min)
			assert.Equal(t, tt.max, root.Max)
			assert.Equal(t, tt.greedy, root.Greedy)
		})
	}
}

func TestLiteralBrace(t *testing.T) {
	for _, pattern := range []string{`a{`, `a{x}`, `a{,}`} {
		root := mustParse(t, pattern, 0).Root
		assert.Equal(t, KindString, root.Kind, pattern)
		assert.Equal(t, pattern, string(root.Runes))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		flags   Flags
		code    Code
		offset  int
	}{
		{`(a`, 0, CodeUnterminatedGroup, 0},
		{`a)`, 0, CodeUnbalancedParen, 1},
		{`[z-a]`, 0, CodeInvalidRange, 2},
		{`[a-\d]`, 0, CodeInvalidRange, 2},
		{`[abc`, 0, CodeMissingBracket, 0},
		{`\p{Foo}`, 0, CodeUnknownRangeName, 0},
		{`(a)\2`, 0, CodeInvalidBackref, 3},
		{`(a\1)`, 0, CodeInvalidBackref, 2},
		{`\1(a)`, 0, CodeInvalidBackref, 0},
		{`\0`, 0, CodeInvalidBackref, 0},
		{`\k<nope>`, 0, CodeInvalidBackref, 0},
		{`a{3,1}`, 0, CodeInvalidRepeat, 1},
		{`a**`, 0, CodeInvalidRepeat, 2},
		{`*a`, 0, CodeMissingOperand, 0},
		{`a|*`, 0, CodeMissingOperand, 2},
		{`{2}`, 0, CodeMissingOperand, 0},
		{`a\`, 0, CodeInvalidEscape, 1},
		{`\q`, 0, CodeInvalidEscape, 0},
		{`\x4`, 0, CodeInvalidEscape, 0},
		{`(?z)`, 0, CodeInvalidFlag, 2},
		{`(?i-)`, 0, CodeInvalidFlag, 2},
		{`(?<1a>x)`, 0, CodeInvalidGroupName, 3},
		{`(?<n>a)(?<n>b)`, 0, CodeInvalidGroupName, 7},
		{`(a)(?(1))`, 0, CodeMissingOperand, 8},
		{`(x)(?(1)a|b|c)`, 0, CodeInvalidCondition, 3},
		{`(?(2)a)`, 0, CodeInvalidBackref, 2},
		{`(?(x)a)`, 0, CodeInvalidCondition, 2},
		{`a*?`, XMLSchema, CodeUnsupportedInXML, 2},
		{`(?:a)`, XMLSchema, CodeUnsupportedInXML, 0},
		{`\b`, XMLSchema, CodeUnsupportedInXML, 0},
		{`(a)\1`, XMLSchema, CodeUnsupportedInXML, 3},
		{`\f`, XMLSchema, CodeInvalidEscape, 0},
		{`a{`, XMLSchema, CodeInvalidRepeat, 1},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern, tt.flags)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPatternSyntax)

			var serr *Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.code, serr.Code, "code: %v", serr)
			assert.Equal(t, tt.offset, serr.Offset, "offset: %v", serr)
			assert.Equal(t, tt.pattern, serr.Pattern)
		})
	}
}

func TestUnknownRangeNameError(t *testing.T) {
	_, err := Parse(`[\p{IsKlingon}]`, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRangeName)
	assert.ErrorIs(t, err, ErrPatternSyntax)
	assert.Contains(t, err.Error(), "IsKlingon")

	// Range names are case-sensitive.
	_, err = Parse(`\p{lu}`, 0)
	assert.ErrorIs(t, err, ErrUnknownRangeName)
}

func TestXMLSchemaMode(t *testing.T) {
	root := mustParse(t, `^a$`, XMLSchema).Root
	require.Equal(t, KindString, root.Kind)
	assert.Equal(t, "^a$", string(root.Runes))

	digit := mustParse(t, `\d`, XMLSchema).Root
	assert.True(t, digit.Set.Contains(0x661))

	perl := mustParse(t, `\d`, 0).Root
	assert.False(t, perl.Set.Contains(0x661))

	uni := mustParse(t, `\d`, UnicodeClasses).Root
	assert.True(t, uni.Set.Contains(0x661))
}

func TestInlineFlags(t *testing.T) {
	root := mustParse(t, `a(?i)b|c`, 0).Root
	require.Equal(t, KindUnion, root.Kind)
	require.Len(t, root.Sub, 2)

	first := root.Sub[0]
	require.Equal(t, KindConcat, first.Kind)
	assert.Equal(t, KindChar, first.Sub[0].Kind)
	assert.Equal(t, KindModifier, first.Sub[1].Kind)
	assert.Equal(t, IgnoreCase, first.Sub[1].Add)

	second := root.Sub[1]
	require.Equal(t, KindModifier, second.Kind)
	assert.Equal(t, 'c', second.Sub[0].Rune)

	mod := mustParse(t, `(?i-s:a)`, 0).Root
	require.Equal(t, KindModifier, mod.Kind)
	assert.Equal(t, IgnoreCase, mod.Add)
	assert.Equal(t, DotAll, mod.Remove)

	// Inline x changes how the rest of the group is parsed.
	ext := mustParse(t, `(?x) a b `, 0).Root
	require.Equal(t, KindModifier, ext.Kind)
	assert.Equal(t, "ab", string(ext.Sub[0].Runes))
}

func TestLookaroundAndAtomic(t *testing.T) {
	tests := []struct {
		pattern string
		behind  bool
		negate  bool
	}{
		{`(?=a)`, false, false},
		{`(?!a)`, false, true},
		{`(?<=a)`, true, false},
		{`(?<!a)`, true, true},
	}
	for _, tt := range tests {
		root := mustParse(t, tt.pattern, 0).Root
		require.Equal(t, KindLook, root.Kind, tt.pattern)
		assert.Equal(t, tt.behind, root.Behind, tt.pattern)
		assert.Equal(t, tt.negate, root.Negate, tt.pattern)
	}

	root := mustParse(t, `(?>ab)`, 0).Root
	assert.Equal(t, KindIndependent, root.Kind)
}

func TestConditions(t *testing.T) {
	root := mustParse(t, `(a)?(?(1)b|c)`, 0).Root
	require.Equal(t, KindConcat, root.Kind)
	cond := root.Sub[1]
	require.Equal(t, KindCondition, cond.Kind)
	assert.Equal(t, 1, cond.Group)
	assert.Nil(t, cond.Cond)
	assert.Equal(t, 'b', cond.Sub[0].Rune)
	assert.Equal(t, 'c', cond.Sub[1].Rune)

	named := mustParse(t, `(?<q>a)(?(<q>)b)`, 0).Root
	cond = named.Sub[1]
	assert.Equal(t, 1, cond.Group)
	assert.Equal(t, KindEmpty, cond.Sub[1].Kind)

	look := mustParse(t, `(?(?=x)xy|z)`, 0).Root
	require.Equal(t, KindCondition, look.Kind)
	require.NotNil(t, look.Cond)
	assert.Equal(t, KindLook, look.Cond.Kind)

	// A condition may name a group defined later.
	fwd := mustParse(t, `(?(1)a|b)(c)`, 0)
	assert.Equal(t, 1, fwd.Groups)
}

func TestBackrefDigits(t *testing.T) {
	root := mustParse(t, `(a)\10`, 0).Root
	require.Equal(t, KindConcat, root.Kind)
	require.Len(t, root.Sub, 3)
	assert.Equal(t, KindBackref, root.Sub[1].Kind)
	assert.Equal(t, 1, root.Sub[1].Group)
	assert.Equal(t, '0', root.Sub[2].Rune)

	tree := mustParse(t, `(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)\10`, 0)
	last := tree.Root.Sub[len(tree.Root.Sub)-1]
	assert.Equal(t, 10, last.Group)

	named := mustParse(t, `(?<w>a)\k<w>`, 0).Root
	assert.Equal(t, 1, named.Sub[1].Group)
}

func TestClasses(t *testing.T) {
	tests := []struct {
		pattern string
		in      []rune
		out     []rune
	}{
		{`[a-z-[aeiou]]`, []rune{'b', 'z'}, []rune{'a', 'e', 'A'}},
		{`[^a-z-[0-9]]`, []rune{'A', '!'}, []rune{'b', '5'}},
		{`[\d_]`, []rune{'5', '_'}, []rune{'a'}},
		{`[]a]`, []rune{']', 'a'}, []rune{'b'}},
		{`[a-]`, []rune{'a', '-'}, []rune{'b'}},
		{`[-a]`, []rune{'a', '-'}, []rune{'b'}},
		{`[\p{Lu}x]`, []rune{'Q', 'x'}, []rune{'q'}},
		{`[\P{L}]`, []rune{'1'}, []rune{'q'}},
		{`[\x41-\x{43}]`, []rune{'A', 'B', 'C'}, []rune{'D'}},
		{`[\b]`, []rune{'\b'}, []rune{'b'}},
		{`[\W]`, []rune{'-'}, []rune{'a'}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root := mustParse(t, tt.pattern, 0).Root
			require.Equal(t, KindRange, root.Kind)
			require.False(t, root.Negated)
			for _, c := range tt.in {
				assert.True(t, root.Set.Contains(c), "%q", c)
			}
			for _, c := range tt.out {
				assert.False(t, root.Set.Contains(c), "%q", c)
			}
		})
	}

	neg := mustParse(t, `[^abc]`, 0).Root
	assert.True(t, neg.Negated)
	assert.True(t, neg.Set.Contains('a'))
}

func TestEscapes(t *testing.T) {
	root := mustParse(t, `\x41\x{42}C\.\t`, 0).Root
	assert.Equal(t, "ABC.\t", string(root.Runes))

	anchors := mustParse(t, `\A\b\B\<\>\Z\z`, 0).Root
	require.Equal(t, KindConcat, anchors.Kind)
	want := []AnchorKind{AnchorTextStart, AnchorWordBoundary, AnchorNonWordBoundary,
		AnchorWordStart, AnchorWordEnd, AnchorTextEndNewline, AnchorTextEnd}
	for i, a := range want {
		assert.Equal(t, a, anchors.Sub[i].Anchor)
	}
}

func TestFactoryCanonicalTokens(t *testing.T) {
	f := NewFactory()
	assert.Same(t, f.Dot(), f.Dot())
	assert.Same(t, f.Anchor(AnchorLineStart), f.Anchor(AnchorLineStart))

	a, err := f.Range("Nd", false)
	require.NoError(t, err)
	b, err := f.Range("Nd", false)
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := f.Range("Nd", true)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Same(t, a.Set, c.Set)

	_, err = f.Range("Bogus", false)
	assert.ErrorIs(t, err, ErrUnknownRangeName)

	before := f.Len()
	f.Char('x')
	assert.Equal(t, before+1, f.Len())
}

func TestWidth(t *testing.T) {
	tests := []struct {
		pattern string
		lo, hi  int
	}{
		{`a`, 1, 1},
		{`abc`, 3, 3},
		{`a{2,3}`, 2, 3},
		{`a|bcd`, 1, 3},
		{`a*`, 0, -1},
		{`(a)\1`, 1, -1},
		{`(?=abc)x`, 1, 1},
		{`^$`, 0, 0},
		{`(?:ab){0,2}c?`, 0, 5},
		{`(a)?(?(1)bc|d)`, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			lo, hi := mustParse(t, tt.pattern, 0).Root.Width()
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags("imX")
	require.NoError(t, err)
	assert.Equal(t, IgnoreCase|Multiline|XMLSchema, f)
	assert.Equal(t, "imX", f.String())
	assert.True(t, f.Has(IgnoreCase|XMLSchema))
	assert.False(t, f.Has(DotAll))

	f, err = ParseFlags("")
	require.NoError(t, err)
	assert.Zero(t, f)

	for _, bad := range []string{"q", "ii", "iq"} {
		_, err := ParseFlags(bad)
		assert.ErrorIs(t, err, ErrPatternSyntax, bad)
	}
}

func TestDump(t *testing.T) {
	out := mustParse(t, `(a+)|b`, 0).Dump()
	assert.Contains(t, out, "Union")
	assert.Contains(t, out, "Paren #1")
	assert.Contains(t, out, "Closure{1,} greedy")
	assert.Contains(t, out, "Char 'a'")
	assert.Contains(t, out, "Char 'b'")
}

func TestParseDeterministic(t *testing.T) {
	a := mustParse(t, `(x|y)+\d{2}(?<n>z)`, 0)
	b := mustParse(t, `(x|y)+\d{2}(?<n>z)`, 0)
	assert.Equal(t, a.Dump(), b.Dump())
	assert.Equal(t, a.Names, b.Names)
}

func TestAnchorEnd(t *testing.T) {
	tree := mustParse(t, `a|ab`, 0)
	at := tree.AnchorEnd()
	require.Equal(t, KindConcat, at.Root.Kind)
	require.Len(t, at.Root.Sub, 2)
	assert.Same(t, tree.Root, at.Root.Sub[0])
	assert.Equal(t, KindAnchor, at.Root.Sub[1].Kind)
	assert.Equal(t, AnchorTextEnd, at.Root.Sub[1].Anchor)
	assert.Equal(t, tree.Groups, at.Groups)
	assert.Equal(t, KindUnion, tree.Root.Kind, "original tree is unchanged")
}
