package xsd

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/regx"
)

func TestPatternValidateLexical(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		valid   bool
	}{
		{``, "", true},
		{``, "a", false},
		{`\d{3}-\d{4}`, "555-1234", true},
		{`\d{3}-\d{4}`, "555-12345", false},
		{`\d{3}-\d{4}`, "x555-1234", false},
		{`[A-Z]{2}`, "ab", false},
		{`a|ab`, "ab", true},
		{`(ab)?c|d`, "abc", true},
		{`(ab)?c|d`, "abd", false},
		{`\i\c*`, "xs:string", true},
		{`\i\c*`, "-abc", false},
		{`[a-z-[aeiou]]+`, "xyz", true},
		{`[a-z-[aeiou]]+`, "xaz", false},
		{`\p{IsBasicLatin}+`, "plain", true},
		{`\p{IsBasicLatin}+`, "café", false},
		{`\p{Lu}\p{Ll}*`, "Émile", true},
		{`.+`, "line\nbreak", false},
		{`.+`, "a b", true},
		{`^\d$`, "^1$", true},
		{`\s*`, " \t\r\n", true},
	}
	v := NewValidator(nil)
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.value, func(t *testing.T) {
			p, err := v.Pattern(tt.pattern)
			require.NoError(t, err)
			err = p.ValidateLexical(tt.value)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsViolation(err), "want violation, got %v", err)
		})
	}
}

func TestPatternSyntaxErrors(t *testing.T) {
	v := NewValidator(nil)
	for _, pattern := range []string{`a(?=b)`, `\bword`, `(a)\1`, `a+?`, `[a-`, `\p{IsKlingon}`} {
		t.Run(pattern, func(t *testing.T) {
			_, err := v.Pattern(pattern)
			require.Error(t, err)
			assert.ErrorIs(t, err, regx.ErrPatternSyntax)
			assert.Contains(t, err.Error(), "xsd: pattern facet")
		})
	}
}

func TestPatternSetIsOr(t *testing.T) {
	v := NewValidator(nil)
	ps, err := v.PatternSet(`\d+`, `[a-z]+`)
	require.NoError(t, err)

	assert.NoError(t, ps.ValidateLexical("123"))
	assert.NoError(t, ps.ValidateLexical("abc"))

	err = ps.ValidateLexical("a1")
	var ve *ViolationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "a1", ve.Value)
	assert.Equal(t, []string{`\d+`, `[a-z]+`}, ve.Patterns)
	assert.Equal(t, `xsd: value "a1" does not match any pattern in set: "\\d+", "[a-z]+"`, err.Error())

	empty := &PatternSet{}
	assert.NoError(t, empty.ValidateLexical("anything"))
}

func TestFacetsAreAnded(t *testing.T) {
	v := NewValidator(nil)
	f, err := v.Facets(
		[]string{`[A-Z]{2}\d+`},
		[]string{`.{4}`, `.{6}`},
	)
	require.NoError(t, err)
	require.Len(t, f.Steps, 2)

	assert.NoError(t, f.ValidateLexical("AB12"))
	assert.NoError(t, f.ValidateLexical("AB1234"))

	err = f.ValidateLexical("AB123")
	var ve *ViolationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Patterns, 2)

	err = f.ValidateLexical("ab12")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, `xsd: value "ab12" does not match pattern "[A-Z]{2}\\d+"`, err.Error())

	_, err = v.Facets([]string{`ok`}, []string{`(`})
	assert.ErrorIs(t, err, regx.ErrPatternSyntax)
}

func TestLimitIsNotViolation(t *testing.T) {
	config := regx.DefaultConfig()
	config.MaxSteps = 10_000
	v := NewValidator(regx.NewCache(0, config))

	p, err := v.Pattern(`(a|aa)*(b|c)`)
	require.NoError(t, err)
	err = p.ValidateLexical(strings.Repeat("a", 40))
	require.Error(t, err)
	assert.False(t, IsViolation(err))
	assert.True(t, errors.Is(err, regx.ErrStepLimitExceeded))

	// The limit error wins over a plain mismatch in the same step.
	ps, err := v.PatternSet(`b+`, `(a|aa)*(b|c)`)
	require.NoError(t, err)
	err = ps.ValidateLexical(strings.Repeat("a", 40))
	assert.ErrorIs(t, err, regx.ErrStepLimitExceeded)
}

func TestValidatorSharesCache(t *testing.T) {
	cache := regx.NewCache(0, regx.DefaultConfig())
	a, err := NewValidator(cache).Pattern(`\d+`)
	require.NoError(t, err)
	b, err := NewValidator(cache).Pattern(`\d+`)
	require.NoError(t, err)
	assert.Same(t, a.Regex(), b.Regex())
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, "pattern", a.Name())
}
