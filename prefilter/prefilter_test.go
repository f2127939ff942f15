package prefilter

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/regx/literal"
)

func seqOf(complete bool, ss ...string) *literal.Seq {
	lits := make([]literal.Literal, len(ss))
	for i, s := range ss {
		lits[i] = literal.NewLiteral([]byte(s), complete)
	}
	return literal.NewSeq(lits...)
}

func TestBuilderSelection(t *testing.T) {
	tests := []struct {
		name string
		seq  *literal.Seq
		want Prefilter
	}{
		{"nil", nil, nil},
		{"empty", literal.NewSeq(), nil},
		{"contains empty", seqOf(true, "a", ""), nil},
		{"one byte", seqOf(true, "x"), &memchrPrefilter{}},
		{"one literal", seqOf(true, "hello"), &memmemPrefilter{}},
		{"lead bytes", seqOf(false, "a", "bc", "de"), &byteSetPrefilter{}},
		{"many", seqOf(true, "foo", "bar", "baz", "qux"), &ahoCorasickPrefilter{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBuilder(tt.seq).Build()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestPrefilterFind(t *testing.T) {
	tests := []struct {
		name     string
		seq      *literal.Seq
		haystack string
		start    int
		want     int
	}{
		{"memchr", seqOf(true, "@"), "user@host", 0, 4},
		{"memchr from", seqOf(true, "@"), "a@b@c", 2, 3},
		{"memchr none", seqOf(true, "@"), "abc", 0, -1},
		{"memmem", seqOf(true, "host"), "user@host", 0, 5},
		{"memmem past", seqOf(true, "host"), "user@host", 6, -1},
		{"byte set", seqOf(false, "a", "bc"), "xxbcx", 0, 2},
		{"aho corasick", seqOf(true, "foo", "bar", "baz", "qux"), "xxquxfoo", 0, 2},
		{"aho corasick from", seqOf(true, "foo", "bar", "baz", "qux"), "xxquxfoo", 3, 5},
		{"start out of range", seqOf(true, "a"), "a", 1, -1},
		{"negative start", seqOf(true, "a"), "a", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := NewBuilder(tt.seq).Build()
			require.NotNil(t, pf)
			assert.Equal(t, tt.want, pf.Find([]byte(tt.haystack), tt.start))
		})
	}
}

func TestPrefilterComplete(t *testing.T) {
	assert.True(t, NewBuilder(seqOf(true, "abc")).Build().IsComplete())
	assert.False(t, NewBuilder(seqOf(false, "abc")).Build().IsComplete())
	assert.False(t, NewBuilder(seqOf(true, "a", "b")).Build().IsComplete())
	assert.True(t, NewBuilder(seqOf(true, "foo", "bar", "baz", "qux")).Build().IsComplete())
	assert.Equal(t, 3, NewBuilder(seqOf(true, "abc")).Build().HeapBytes())
}

func TestBMPatternMatches(t *testing.T) {
	tests := []struct {
		name         string
		lit          string
		fold         bool
		content      string
		start, limit int
		want         int
	}{
		{"found", "needle", false, "haystack needle hay", 0, 100, 9},
		{"missing", "needle", false, "haystack hay", 0, 100, -1},
		{"at start", "ab", false, "abab", 0, 4, 0},
		{"from start", "ab", false, "abab", 1, 4, 2},
		{"limit excludes", "ab", false, "abab", 1, 3, -1},
		{"limit exact", "ab", false, "xxab", 0, 4, 2},
		{"whole", "abc", false, "abc", 0, 3, 0},
		{"longer than content", "abcd", false, "abc", 0, 3, -1},
		{"repeated prefix", "aab", false, "aaaaaab", 0, 7, 4},
		{"fold upper content", "host", true, "USER@HOST", 0, 9, 5},
		{"fold upper literal", "HoSt", true, "user@host", 0, 9, 5},
		{"fold no match", "host", true, "user@h0st", 0, 9, -1},
		{"fold symbols", "a.b", true, "xA.B", 0, 4, 1},
		{"exact is case sensitive", "host", false, "HOST host", 0, 9, 5},
		{"utf8", "é", false, "café", 0, 5, 3},
		{"empty literal", "", false, "abc", 1, 3, 1},
		{"clamped", "c", false, "abc", -5, 99, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm := NewBMPattern([]byte(tt.lit), tt.fold)
			assert.Equal(t, tt.want, bm.Matches([]byte(tt.content), tt.start, tt.limit))
		})
	}
}

func TestBMPatternAgreesWithIndex(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []byte("abAB.")
	for iter := 0; iter < 1000; iter++ {
		content := make([]byte, rng.IntN(40))
		for i := range content {
			content[i] = alphabet[rng.IntN(len(alphabet))]
		}
		lit := make([]byte, 1+rng.IntN(4))
		for i := range lit {
			lit[i] = alphabet[rng.IntN(len(alphabet))]
		}
		start := rng.IntN(len(content) + 1)

		want := bytes.Index(content[start:], lit)
		if want >= 0 {
			want += start
		}
		assert.Equal(t, want, NewBMPattern(lit, false).Matches(content, start, len(content)),
			"exact %q in %q from %d", lit, content, start)

		want = bytes.Index(bytes.ToLower(content[start:]), bytes.ToLower(lit))
		if want >= 0 {
			want += start
		}
		assert.Equal(t, want, NewBMPattern(lit, true).Matches(content, start, len(content)),
			"fold %q in %q from %d", lit, content, start)
	}
}

func TestBMPatternString(t *testing.T) {
	assert.Equal(t, `bm{"ab"}`, NewBMPattern([]byte("ab"), false).String())
	bm := NewBMPattern([]byte("Ab"), true)
	assert.Equal(t, `bm{"Ab", fold}`, bm.String())
	assert.True(t, bm.IsFold())
	assert.Equal(t, 2, bm.Len())
}

// countingPrefilter reports every position as a candidate.
type countingPrefilter struct{}

func (countingPrefilter) Find(h []byte, start int) int {
	if start < len(h) {
		return start
	}
	return -1
}
func (countingPrefilter) IsComplete() bool { return false }
func (countingPrefilter) HeapBytes() int   { return 0 }

func TestTracker(t *testing.T) {
	assert.Nil(t, NewTracker(nil))

	tr := NewTrackerWithConfig(countingPrefilter{}, TrackerConfig{
		CheckInterval: 4,
		MinEfficiency: 0.5,
		WarmupPeriod:  8,
	})
	h := make([]byte, 100)
	for i := 0; i < 7; i++ {
		require.Equal(t, i, tr.Find(h, i))
	}
	assert.True(t, tr.IsActive(), "still warming up")

	tr.Find(h, 7)
	assert.False(t, tr.IsActive())
	assert.Equal(t, -1, tr.Find(h, 8))

	candidates, confirms, eff, active := tr.Stats()
	assert.Equal(t, uint64(8), candidates)
	assert.Zero(t, confirms)
	assert.Zero(t, eff)
	assert.False(t, active)

	tr.Reset()
	assert.True(t, tr.IsActive())
	for i := 0; i < 16; i++ {
		tr.Find(h, i)
		tr.ConfirmMatch()
	}
	assert.True(t, tr.IsActive())
	_, _, eff, _ = tr.Stats()
	assert.InDelta(t, 1.0, eff, 1e-9)
}
