package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lits(ss ...string) []Literal {
	out := make([]Literal, len(ss))
	for i, s := range ss {
		out[i] = NewLiteral([]byte(s), true)
	}
	return out
}

func strs(s *Seq) []string {
	var out []string
	for _, b := range s.Bytes() {
		out = append(out, string(b))
	}
	return out
}

func TestLiteralBasic(t *testing.T) {
	lit := NewLiteral([]byte("test"), true)
	assert.Equal(t, 4, lit.Len())
	assert.Equal(t, "literal{test, complete=true}", lit.String())
	assert.Equal(t, "literal{, complete=false}", NewLiteral(nil, false).String())
}

func TestSeqBasics(t *testing.T) {
	var nilSeq *Seq
	assert.Equal(t, 0, nilSeq.Len())
	assert.True(t, nilSeq.IsEmpty())
	assert.Nil(t, nilSeq.Bytes())

	s := NewSeq(lits("foo", "bar")...)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.IsEmpty())
	assert.Equal(t, "bar", string(s.Get(1).Bytes))
	assert.Equal(t, []string{"foo", "bar"}, strs(s))
}

func TestSeqMinimize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"prefix covers longer", []string{"foobar", "foo"}, []string{"foo"}},
		{"chain", []string{"abc", "ab", "a"}, []string{"a"}},
		{"independent", []string{"hello", "world"}, []string{"hello", "world"}},
		{"duplicates", []string{"x", "x"}, []string{"x"}},
		{"stable order", []string{"bb", "a", "cc"}, []string{"a", "bb", "cc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeq(lits(tt.in...)...)
			s.Minimize()
			assert.Equal(t, tt.want, strs(s))
		})
	}
}

func TestLongestCommonPrefix(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"hello", "help", "hero"}, "he"},
		{[]string{"abc", "def"}, ""},
		{[]string{"same", "same"}, "same"},
		{[]string{"ab", "abc"}, "ab"},
		{nil, ""},
	}
	for _, tt := range tests {
		got := NewSeq(lits(tt.in...)...).LongestCommonPrefix()
		assert.Equal(t, tt.want, string(got), "%v", tt.in)
	}
}

func TestSeqCompleteness(t *testing.T) {
	s := NewSeq(lits("a", "b")...)
	assert.False(t, s.allInexact())
	s.makeInexact()
	assert.True(t, s.allInexact())
	assert.False(t, s.hasEmpty())
	assert.True(t, NewSeq(lits("a", "")...).hasEmpty())
}
