// Package regx is a backtracking regular expression engine for XML Schema
// pattern facets and general text search.
//
// A pattern is compiled in two stages, pattern string to token tree
// (package syntax) and token tree to op graph (package prog), and matched by
// an explicit-stack backtracking matcher. Matching is leftmost-first:
// alternatives are tried in source order, greedy closures try the most
// iterations first and lazy closures the fewest.
//
// Beyond the RE2 subset this supports backreferences, lookahead and bounded
// lookbehind, atomic groups, conditionals, Unicode blocks and categories,
// and the XML Schema dialect (\i, \c, class subtraction).
//
// Basic usage:
//
//	re, err := regx.Compile(`(\w+)@(\w+)\.com`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(re.FindStringSubmatch("mail bob@example.com")) // [bob@example.com bob example]
//
// Anchored matching with group access:
//
//	m := regx.NewMatch()
//	ok, err := re.MatchAt([]byte("bob@example.com"), 0, m)
//	end, _ := m.End(0)
//
// Runaway backtracking is bounded by meta.Config.MaxSteps and
// MaxBacktrackDepth. MatchAt, SearchAt and FullMatchString report a tripped
// limit as ErrStepLimitExceeded or ErrBacktrackLimitExceeded; the
// stdlib-shaped helpers treat it as no match.
package regx

import (
	"log/slog"

	"github.com/coregx/regx/meta"
	"github.com/coregx/regx/prog"
	"github.com/coregx/regx/syntax"
)

// Regex is a compiled regular expression. It is safe for concurrent use.
//
// Example:
//
//	re := regx.MustCompile(`hello`)
//	if re.MatchString("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Match holds the group boundaries of one match. See prog.Match.
type Match = prog.Match

// NewMatch returns an empty Match for MatchAt and SearchAt.
func NewMatch() *Match {
	return prog.NewMatch()
}

// Compile compiles pattern in the default (Perl-style) dialect.
//
// Example:
//
//	re, err := regx.Compile(`\d{3}-\d{4}`)
func Compile(pattern string) (*Regex, error) {
	return CompileFlagsWithConfig(pattern, "", meta.DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern is invalid.
//
// Example:
//
//	var emailRegex = regx.MustCompile(`[a-z]+@[a-z]+\.[a-z]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regx: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileFlags compiles pattern with option letters:
//
//	i  case-insensitive (simple case folding)
//	m  ^ and $ match at line boundaries
//	s  . matches line terminators
//	x  ignore whitespace and #-comments
//	u  \d \w \s use Unicode categories
//	w  \b \B \< \> use Unicode word characters
//	X  XML Schema dialect
//	F  disable the Boyer-Moore pre-filter
//	H  disable the head-literal prefilter
func CompileFlags(pattern, opts string) (*Regex, error) {
	return CompileFlagsWithConfig(pattern, opts, meta.DefaultConfig())
}

// CompileXML compiles a pattern in the XML Schema dialect.
func CompileXML(pattern string) (*Regex, error) {
	return CompileFlagsWithConfig(pattern, "X", meta.DefaultConfig())
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// Example:
//
//	config := regx.DefaultConfig()
//	config.MaxSteps = 100_000
//	re, err := regx.CompileWithConfig(`(a|aa)*b`, config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	return CompileFlagsWithConfig(pattern, "", config)
}

// CompileFlagsWithConfig combines CompileFlags and CompileWithConfig.
func CompileFlagsWithConfig(pattern, opts string, config meta.Config) (*Regex, error) {
	flags, err := syntax.ParseFlags(opts)
	if err != nil {
		return nil, &meta.CompileError{Pattern: pattern, Err: err}
	}
	engine, err := meta.CompileWithConfig(pattern, flags, config)
	if err != nil {
		return nil, err
	}
	if config.Logger != nil {
		config.Logger.Debug("regx compiled", slog.String("pattern", pattern), slog.String("opts", opts))
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all regular expression
// metacharacters inside s; the result matches s literally in both dialects.
//
// Example:
//
//	regx.QuoteMeta("1.5-2.0?") // `1\.5\-2\.0\?`
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$-`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Engine returns the underlying meta engine.
func (r *Regex) Engine() *meta.Engine {
	return r.engine
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capturing groups, not counting group 0.
func (r *Regex) NumSubexp() int {
	return r.engine.NumCaptures() - 1
}

// SubexpNames returns the names of the capturing groups. names[0] is always
// "" and unnamed groups are "". The slice must not be modified.
func (r *Regex) SubexpNames() []string {
	return r.engine.SubexpNames()
}

// SubexpIndex returns the number of the group called name, or -1.
func (r *Regex) SubexpIndex(name string) int {
	return r.engine.Tree().GroupIndex(name)
}

// MatchAt attempts a match anchored at start. On success m holds the group
// boundaries; on failure m is reset. A tripped step or backtrack limit is
// returned as an error.
func (r *Regex) MatchAt(b []byte, start int, m *Match) (bool, error) {
	return r.engine.MatchAt(b, start, m)
}

// SearchAt finds the leftmost match starting at or after start.
func (r *Regex) SearchAt(b []byte, start int, m *Match) (bool, error) {
	return r.engine.SearchAt(b, start, m)
}

// FullMatch reports whether all of b matches the pattern.
func (r *Regex) FullMatch(b []byte) (bool, error) {
	return r.engine.FullMatch(b, prog.NewMatch())
}

// FullMatchString reports whether all of s matches the pattern, the way an
// XML Schema pattern facet is applied.
func (r *Regex) FullMatchString(s string) (bool, error) {
	return r.FullMatch([]byte(s))
}

// search runs SearchAt and returns the group indices, or nil. A tripped
// limit is logged by the engine and treated as no match.
func (r *Regex) search(b []byte, start int, m *Match) []int {
	ok, err := r.engine.SearchAt(b, start, m)
	if err != nil || !ok {
		return nil
	}
	return m.Indices(nil)
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.search(b, 0, prog.NewMatch()) != nil
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the text of the leftmost match in b, or nil.
//
// Example:
//
//	re := regx.MustCompile(`\d+`)
//	println(string(re.Find([]byte("age: 42")))) // "42"
func (r *Regex) Find(b []byte) []byte {
	loc := r.FindIndex(b)
	if loc == nil {
		return nil
	}
	return b[loc[0]:loc[1]:loc[1]]
}

// FindIndex returns the location of the leftmost match in b, or nil. The
// match is b[loc[0]:loc[1]].
func (r *Regex) FindIndex(b []byte) []int {
	a := r.search(b, 0, prog.NewMatch())
	if a == nil {
		return nil
	}
	return a[:2:2]
}

// FindString returns the text of the leftmost match in s, or "".
func (r *Regex) FindString(s string) string {
	loc := r.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindStringIndex returns the location of the leftmost match in s, or nil.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindSubmatch returns the text of the leftmost match and of each group.
// Groups that did not participate are nil.
//
// Example:
//
//	re := regx.MustCompile(`(\w+)@(\w+)\.(\w+)`)
//	match := re.FindSubmatch([]byte("user@example.com"))
//	// match[1] = "user", match[2] = "example", match[3] = "com"
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	a := r.FindSubmatchIndex(b)
	if a == nil {
		return nil
	}
	return groupsOf(b, a)
}

// FindSubmatchIndex returns the index pairs of the leftmost match and of
// each group; -1 marks a group that did not participate.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	return r.search(b, 0, prog.NewMatch())
}

// FindStringSubmatch returns the text of the leftmost match and of each
// group. Groups that did not participate are "".
func (r *Regex) FindStringSubmatch(s string) []string {
	a := r.FindStringSubmatchIndex(s)
	if a == nil {
		return nil
	}
	return stringGroupsOf(s, a)
}

// FindStringSubmatchIndex is like FindSubmatchIndex for strings.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.FindSubmatchIndex([]byte(s))
}

func groupsOf(b []byte, a []int) [][]byte {
	out := make([][]byte, len(a)/2)
	for i := range out {
		if a[2*i] >= 0 {
			out[i] = b[a[2*i]:a[2*i+1]:a[2*i+1]]
		}
	}
	return out
}

func stringGroupsOf(s string, a []int) []string {
	out := make([]string, len(a)/2)
	for i := range out {
		if a[2*i] >= 0 {
			out[i] = s[a[2*i]:a[2*i+1]]
		}
	}
	return out
}
