package meta

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/regx/prog"
	"github.com/coregx/regx/syntax"
)

func mustCompile(t *testing.T, pattern string, flags syntax.Flags) *Engine {
	t.Helper()
	e, err := CompileWithConfig(pattern, flags, DefaultConfig())
	require.NoError(t, err, "pattern %q", pattern)
	return e
}

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		want    Strategy
	}{
		{`hello`, 0, UsePrefilter},
		{`foo|bar|baz|qux`, 0, UsePrefilter},
		{`^abc`, 0, UseAnchored},
		{`\Aabc|\Adef`, 0, UseAnchored},
		{`^abc`, syntax.Multiline, UsePrefilter},
		{`\w+@host`, 0, UseBoyerMoore},
		{`hello`, syntax.NoHeadLiteral, UseBoyerMoore},
		{`hello`, syntax.NoHeadLiteral | syntax.NoFixedString, UseBacktrack},
		{`\w+`, 0, UseBacktrack},
		{`x*`, 0, UseBacktrack},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.flags.String(), func(t *testing.T) {
			e := mustCompile(t, tt.pattern, tt.flags)
			assert.Equal(t, tt.want, e.Strategy(), "reason: %s", StrategyReason(e.Strategy()))
		})
	}
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "UseBacktrack", UseBacktrack.String())
	assert.Equal(t, "UseBoyerMoore", UseBoyerMoore.String())
	assert.Equal(t, "Unknown", Strategy(99).String())
}

func TestSearchAt(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		input   string
		start   int
		want    []int // nil: no match
	}{
		{`a|ab`, 0, "xab", 0, []int{1, 2}},
		{`\w+@host`, 0, "me@host you@host", 0, []int{0, 7}},
		{`\w+@host`, 0, "me@host you@host", 3, []int{8, 16}},
		{`b+`, 0, "aaabbb", 0, []int{3, 6}},
		{`hello`, 0, "say hello", 0, []int{4, 9}},
		{`hello`, 0, "help", 0, nil},
		{`x*`, 0, "abc", 0, []int{0, 0}},
		{`$`, 0, "abc", 0, []int{3, 3}},
		{`(?i)HOST`, 0, "my host", 0, []int{3, 7}},
		{`(?<=a)b`, 0, "cbab", 0, []int{3, 4}},
		{`\bfoo\b`, 0, "foobar foo", 0, []int{7, 10}},
		{`^b`, syntax.Multiline, "a\nb", 0, []int{2, 3}},
		{`^b`, 0, "a\nb", 0, nil},
		{`(\d+)-(\d+)`, 0, "tel 12-345", 0, []int{4, 10, 4, 6, 7, 10}},
		{`é+`, 0, "caféé!", 0, []int{3, 7}},
		{`a`, 0, "a", 2, nil},
		{`a`, 0, "a", -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			e := mustCompile(t, tt.pattern, tt.flags)
			m := prog.NewMatch()
			ok, err := e.SearchAt([]byte(tt.input), tt.start, m)
			require.NoError(t, err)
			if tt.want == nil {
				assert.False(t, ok)
				assert.False(t, m.IsSet())
				return
			}
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, m.Indices(nil)); diff != "" {
				t.Errorf("indices mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Filters change how positions are found, never the result.
func TestFiltersDoNotChangeResults(t *testing.T) {
	patterns := []string{
		`hello`, `\w+@host\.com`, `(?i)abc`, `foo|bar|baz|quux`, `a[bc]d`,
		`(a+)(b+)`, `x*y`, `(?<=@)\w+`, `\bis\b`, `(\w)\1`, `(?i)straße`,
		"\uFFFD", "x\uFFFDy", `\w+\x{FFFD}yz`, "(?i)x\uFFFDy", `[\x{FFFD}z]`,
	}
	inputs := []string{
		"", "hello", "say hello world", "mail me@host.com now", "ABC abc aBc",
		"quux bar", "acd abd", "aaabbb", "xxxy", "a@b @cd", "this is it",
		"abba", "STRASSE straße", "\xffhello\xfe", "x\xffyz", "x\uFFFDyz",
	}
	for _, pattern := range patterns {
		filtered := mustCompile(t, pattern, 0)
		plain := mustCompile(t, pattern, syntax.NoFixedString|syntax.NoHeadLiteral)
		require.Equal(t, UseBacktrack, plain.Strategy(), pattern)

		for _, input := range inputs {
			for start := 0; start <= len(input); start++ {
				m1, m2 := prog.NewMatch(), prog.NewMatch()
				ok1, err1 := filtered.SearchAt([]byte(input), start, m1)
				ok2, err2 := plain.SearchAt([]byte(input), start, m2)
				require.NoError(t, err1)
				require.NoError(t, err2)
				require.Equal(t, ok2, ok1, "%q on %q from %d", pattern, input, start)
				assert.Equal(t, m2.Indices(nil), m1.Indices(nil), "%q on %q from %d", pattern, input, start)
			}
		}
	}
}

func TestMatchAt(t *testing.T) {
	e := mustCompile(t, `\w+@host`, 0)
	m := prog.NewMatch()

	ok, err := e.MatchAt([]byte("me@host"), 0, m)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.MatchAt([]byte("  me@host"), 0, m)
	require.NoError(t, err)
	assert.False(t, ok, "anchored at 0")

	ok, err = e.MatchAt([]byte("  me@host"), 2, m)
	require.NoError(t, err)
	assert.True(t, ok)
	start, _ := m.Start(0)
	assert.Equal(t, 2, start)

	ok, _ = e.MatchAt([]byte("me@hos"), 0, m)
	assert.False(t, ok)
	assert.Equal(t, uint64(1), e.Stats().BoyerMooreRejects)
}

func TestFullMatch(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		input   string
		want    bool
	}{
		{`a|ab`, 0, "ab", true},
		{`a+`, 0, "aab", false},
		{`[0-9]{3}`, 0, "123", true},
		{`[0-9]{3}`, 0, "1234", false},
		{`\d{3}-\d{4}`, syntax.XMLSchema, "555-1234", true},
		{`x*`, 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			e := mustCompile(t, tt.pattern, tt.flags)
			m := prog.NewMatch()
			ok, err := e.FullMatch([]byte(tt.input), m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			if ok {
				end, err := m.End(0)
				require.NoError(t, err)
				assert.Equal(t, len(tt.input), end)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(`(`)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, `(`, ce.Pattern)
	var se *syntax.Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, se.Error(), err.Error())

	_, err = Compile(`(?<=a+)b`)
	require.ErrorAs(t, err, &ce)
	assert.True(t, errors.Is(err, prog.ErrUnboundedLookbehind))
	assert.Contains(t, err.Error(), `(?<=a+)b`)
}

func TestLimitErrors(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.MaxSteps = 1000
	config.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	input := []byte(strings.Repeat("a", 30))

	// The required literal "b" never occurs, so nothing runs.
	e, err := CompileWithConfig(`(a*)*b`, 0, config)
	require.NoError(t, err)
	m := prog.NewMatch()
	ok, err := e.SearchAt(input, 0, m)
	assert.False(t, ok)
	assert.NoError(t, err)

	e, err = CompileWithConfig(`(a*)*b`, syntax.NoFixedString|syntax.NoHeadLiteral, config)
	require.NoError(t, err)
	ok, err = e.SearchAt(input, 0, m)
	assert.False(t, ok)
	assert.ErrorIs(t, err, prog.ErrStepLimitExceeded)
	assert.False(t, m.IsSet())
	assert.Equal(t, uint64(1), e.Stats().LimitErrors)
	assert.Contains(t, buf.String(), "match limit exceeded")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := CompileWithConfig(`hello`, 0, config)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "strategy=UsePrefilter")
}

func TestStats(t *testing.T) {
	e := mustCompile(t, `hello`, 0)
	m := prog.NewMatch()
	ok, err := e.SearchAt([]byte("well hello"), 0, m)
	require.NoError(t, err)
	require.True(t, ok)

	s := e.Stats()
	assert.Equal(t, uint64(1), s.Searches)
	assert.Equal(t, uint64(1), s.Attempts)
	assert.Equal(t, uint64(1), s.PrefilterHits)

	e.ResetStats()
	assert.Equal(t, Stats{}, e.Stats())
}

func TestPrefilterRetired(t *testing.T) {
	e := mustCompile(t, `a\w{3}`, 0)
	require.Equal(t, UsePrefilter, e.Strategy())

	input := []byte(strings.Repeat("a ", 300) + "abcd")
	m := prog.NewMatch()
	ok, err := e.SearchAt(input, 0, m)
	require.NoError(t, err)
	require.True(t, ok)
	start, _ := m.Start(0)
	assert.Equal(t, 600, start)
	assert.Equal(t, uint64(1), e.Stats().PrefilterAbandoned)

	// The pooled tracker is re-armed for the next search.
	e.ResetStats()
	ok, err = e.SearchAt([]byte("xx abcd"), 0, m)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), e.Stats().Attempts)
}

func TestAccessors(t *testing.T) {
	e := mustCompile(t, `(?<user>\w+)@(host)`, 0)
	assert.Equal(t, 3, e.NumCaptures())
	assert.Equal(t, []string{"", "user", ""}, e.SubexpNames())
	assert.Equal(t, `(?<user>\w+)@(host)`, e.Pattern())
	assert.NotNil(t, e.Prog())
	assert.NotNil(t, e.Tree())
	require.NotNil(t, e.Required())
	assert.Equal(t, "@host", e.Required().String())
	assert.NotNil(t, e.BoyerMoore())
	assert.Nil(t, e.Prefilter())
	assert.True(t, e.Prefixes().IsEmpty())
}
