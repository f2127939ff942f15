// Package syntax parses regular expression patterns into token trees.
//
// Two grammars are supported. The default Perl-style grammar accepts
// lookaround, backreferences, atomic and conditional groups, inline flags and
// named groups. With the XMLSchema flag the parser accepts the grammar of XML
// Schema Part 2 Appendix F, where ^ and $ are ordinary characters and the
// convenience classes follow the XML definitions.
//
// Capture groups are numbered 1, 2, ... by the position of their opening
// parenthesis. Group 0 is the whole match.
package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/regx/ranges"
)

const (
	// maxRepeat bounds {n,m} counts.
	maxRepeat = 100000

	// maxDepth bounds group nesting.
	maxDepth = 1000
)

// Tree is a parsed pattern.
type Tree struct {
	// Root is the top-level token.
	Root *Token

	// Pattern is the source text.
	Pattern string

	// Flags are the flags the pattern was parsed with. Inline flags appear
	// as Modifier tokens and are not folded in here.
	Flags Flags

	// Groups is the number of capturing groups.
	Groups int

	// Names holds the name of each group, "" for unnamed ones.
	// len(Names) == Groups+1 and Names[0] is always "".
	Names []string

	factory *Factory
}

// GroupIndex returns the number of the group called name, or -1.
func (t *Tree) GroupIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, n := range t.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Tokens returns the number of tokens allocated while parsing.
func (t *Tree) Tokens() int {
	return t.factory.Len()
}

// AnchorEnd returns a tree that matches t followed by the end of text (\z).
// The new tree shares t's tokens and factory, so it must be built by the
// goroutine that owns t.
func (t *Tree) AnchorEnd() *Tree {
	at := *t
	at.Root = t.factory.Concat(t.Root, t.factory.Anchor(AnchorTextEnd))
	return &at
}

type condRef struct {
	tok    *Token
	name   string
	offset int
}

type parser struct {
	f     *Factory
	src   string
	pos   int
	flags Flags
	depth int

	ncap     int
	names    []string
	closed   []bool
	condRefs []condRef
}

// Parse parses pattern under flags.
func Parse(pattern string, flags Flags) (*Tree, error) {
	p := &parser{
		f:      NewFactory(),
		src:    pattern,
		flags:  flags,
		names:  []string{""},
		closed: []bool{true},
	}
	branches, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.more() {
		return nil, p.errorAt(CodeUnbalancedParen, p.pos)
	}
	if err := p.resolveConditions(); err != nil {
		return nil, err
	}
	return &Tree{
		Root:    p.f.Union(branches...),
		Pattern: pattern,
		Flags:   flags,
		Groups:  p.ncap,
		Names:   p.names,
		factory: p.f,
	}, nil
}

func (p *parser) more() bool {
	return p.pos < len(p.src)
}

func (p *parser) peek(off int) byte {
	if p.pos+off < len(p.src) {
		return p.src[p.pos+off]
	}
	return 0
}

func (p *parser) xml() bool {
	return p.flags&XMLSchema != 0
}

func (p *parser) errorAt(code Code, off int) error {
	return &Error{Code: code, Pattern: p.src, Offset: off}
}

func (p *parser) wrapAt(code Code, off int, err error) error {
	return &Error{Code: code, Pattern: p.src, Offset: off, Err: err}
}

// skipExtended skips whitespace and comments when the x flag is in effect.
func (p *parser) skipExtended() {
	if p.flags&Extended == 0 {
		return
	}
	for p.more() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			p.pos++
		case '#':
			for p.more() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// parseAlternation parses branches separated by '|' up to ')' or the end of
// the pattern, leaving the ')' unconsumed.
func (p *parser) parseAlternation() ([]*Token, error) {
	var branches []*Token
	for {
		br, rest, done, err := p.parseBranch()
		if err != nil {
			return nil, err
		}
		branches = append(branches, br)
		if done {
			return append(branches, rest...), nil
		}
		if p.more() && p.src[p.pos] == '|' {
			p.pos++
			continue
		}
		return branches, nil
	}
}

// parseBranch parses one alternative. An inline flag group such as (?i)
// applies to the remainder of the enclosing group: the remainder is parsed
// here, its first branch is appended to this one and the others are returned
// in rest with done set.
func (p *parser) parseBranch() (tok *Token, rest []*Token, done bool, err error) {
	var items []*Token
	for {
		p.skipExtended()
		if !p.more() {
			break
		}
		c := p.src[p.pos]
		if c == '|' || c == ')' {
			break
		}
		if end, ok := p.inlineFlagsEnd(); ok {
			add, remove, err := p.parseFlagLetters(p.pos+2, end)
			if err != nil {
				return nil, nil, false, err
			}
			p.pos = end + 1
			saved := p.flags
			p.flags = (p.flags | add) &^ remove
			tail, err := p.parseAlternation()
			p.flags = saved
			if err != nil {
				return nil, nil, false, err
			}
			items = append(items, p.f.Modifier(tail[0], add, remove))
			for _, t := range tail[1:] {
				rest = append(rest, p.f.Modifier(t, add, remove))
			}
			return p.concat(items), rest, true, nil
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, nil, false, err
		}
		atom, err = p.parseQuantifiers(atom)
		if err != nil {
			return nil, nil, false, err
		}
		items = append(items, atom)
	}
	return p.concat(items), nil, false, nil
}

// concat merges runs of characters into strings and drops empty tokens.
func (p *parser) concat(items []*Token) *Token {
	out := make([]*Token, 0, len(items))
	var run []rune
	var runTok *Token
	flush := func() {
		switch len(run) {
		case 0:
		case 1:
			out = append(out, runTok)
		default:
			out = append(out, p.f.String(run))
		}
		run, runTok = nil, nil
	}
	for _, it := range items {
		switch it.Kind {
		case KindChar:
			if run == nil {
				runTok = it
			}
			run = append(run, it.Rune)
			continue
		case KindEmpty:
			continue
		}
		flush()
		out = append(out, it)
	}
	flush()
	return p.f.Concat(out...)
}

func (p *parser) parseAtom() (*Token, error) {
	c := p.src[p.pos]
	switch c {
	case '(':
		return p.parseGroup()
	case '[':
		set, negated, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		return p.f.Class(set, negated), nil
	case '.':
		p.pos++
		return p.f.Dot(), nil
	case '^':
		if !p.xml() {
			p.pos++
			return p.f.Anchor(AnchorLineStart), nil
		}
	case '$':
		if !p.xml() {
			p.pos++
			return p.f.Anchor(AnchorLineEnd), nil
		}
	case '\\':
		return p.parseEscape()
	case '*', '+', '?':
		return nil, p.errorAt(CodeMissingOperand, p.pos)
	case '{':
		start := p.pos
		_, _, ok, err := p.scanRepeat()
		if err != nil {
			return nil, err
		}
		if ok {
			return nil, p.errorAt(CodeMissingOperand, start)
		}
	}
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return p.f.Char(r), nil
}

func (p *parser) parseQuantifiers(atom *Token) (*Token, error) {
	quantified := false
	for {
		p.skipExtended()
		if !p.more() {
			return atom, nil
		}
		qstart := p.pos
		var lo, hi int
		switch p.src[p.pos] {
		case '*':
			lo, hi = 0, -1
			p.pos++
		case '+':
			lo, hi = 1, -1
			p.pos++
		case '?':
			lo, hi = 0, 1
			p.pos++
		case '{':
			n, m, ok, err := p.scanRepeat()
			if err != nil {
				return nil, err
			}
			if !ok {
				return atom, nil
			}
			lo, hi = n, m
		default:
			return atom, nil
		}
		if quantified {
			return nil, p.errorAt(CodeInvalidRepeat, qstart)
		}
		greedy := true
		if p.more() && p.src[p.pos] == '?' {
			if p.xml() {
				return nil, p.errorAt(CodeUnsupportedInXML, p.pos)
			}
			greedy = false
			p.pos++
		}
		atom = p.f.Closure(atom, lo, hi, greedy)
		quantified = true
	}
}

// scanRepeat parses {n}, {n,}, {n,m} or {,m} at p.pos and advances past it.
// ok is false, with p.pos unchanged, when the text is not a repetition; in
// Perl mode the '{' is then an ordinary character.
func (p *parser) scanRepeat() (lo, hi int, ok bool, err error) {
	start := p.pos
	i := start + 1
	lo, i, hasLo := scanInt(p.src, i)
	hi = lo
	hasComma, hasHi := false, false
	if i < len(p.src) && p.src[i] == ',' {
		hasComma = true
		hi, i, hasHi = scanInt(p.src, i+1)
	}
	if i >= len(p.src) || p.src[i] != '}' || (!hasLo && !hasHi) {
		if p.xml() {
			return 0, 0, false, p.errorAt(CodeInvalidRepeat, start)
		}
		return 0, 0, false, nil
	}
	switch {
	case !hasComma:
		hi = lo
	case !hasHi:
		hi = -1
	case !hasLo:
		lo = 0
	}
	if lo > maxRepeat || hi > maxRepeat || (hi >= 0 && lo > hi) {
		return 0, 0, false, p.errorAt(CodeInvalidRepeat, start)
	}
	p.pos = i + 1
	return lo, hi, true, nil
}

// scanInt reads decimal digits at s[i:], saturating above maxRepeat.
func scanInt(s string, i int) (n, next int, ok bool) {
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		if n <= maxRepeat {
			n = n*10 + int(s[i]-'0')
		}
		i++
		ok = true
	}
	return n, i, ok
}

func (p *parser) newGroup(name string) int {
	p.ncap++
	p.names = append(p.names, name)
	p.closed = append(p.closed, false)
	return p.ncap
}

// parseBody parses an alternation and the ')' closing the group opened at
// open.
func (p *parser) parseBody(open int) (*Token, error) {
	branches, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.more() {
		return nil, p.errorAt(CodeUnterminatedGroup, open)
	}
	p.pos++
	return p.f.Union(branches...), nil
}

func (p *parser) parseGroup() (*Token, error) {
	open := p.pos
	if p.depth >= maxDepth {
		return nil, p.errorAt(CodeTooDeep, open)
	}
	p.depth++
	defer func() { p.depth-- }()

	p.pos++
	if p.peek(0) != '?' {
		n := p.newGroup("")
		sub, err := p.parseBody(open)
		if err != nil {
			return nil, err
		}
		p.closed[n] = true
		return p.f.Paren(sub, n, ""), nil
	}
	if p.xml() {
		return nil, p.errorAt(CodeUnsupportedInXML, open)
	}
	p.pos++

	switch p.peek(0) {
	case ':':
		p.pos++
		sub, err := p.parseBody(open)
		if err != nil {
			return nil, err
		}
		return p.f.Paren(sub, 0, ""), nil
	case '=', '!':
		negate := p.peek(0) == '!'
		p.pos++
		sub, err := p.parseBody(open)
		if err != nil {
			return nil, err
		}
		return p.f.Look(sub, false, negate), nil
	case '>':
		p.pos++
		sub, err := p.parseBody(open)
		if err != nil {
			return nil, err
		}
		return p.f.Independent(sub), nil
	case '#':
		end := strings.IndexByte(p.src[p.pos:], ')')
		if end < 0 {
			return nil, p.errorAt(CodeUnterminatedGroup, open)
		}
		p.pos += end + 1
		return p.f.Empty(), nil
	case '(':
		return p.parseCondition(open)
	case '<':
		if c := p.peek(1); c == '=' || c == '!' {
			p.pos += 2
			sub, err := p.parseBody(open)
			if err != nil {
				return nil, err
			}
			return p.f.Look(sub, true, c == '!'), nil
		}
		p.pos++
		return p.parseNamedGroup(open)
	case 'P':
		if p.peek(1) == '<' {
			p.pos += 2
			return p.parseNamedGroup(open)
		}
	case 0:
		return nil, p.errorAt(CodeUnterminatedGroup, open)
	}

	end := p.scanFlagsEnd(p.pos)
	if end >= len(p.src) {
		return nil, p.errorAt(CodeUnterminatedGroup, open)
	}
	if p.src[end] != ':' {
		return nil, p.errorAt(CodeInvalidFlag, p.pos)
	}
	add, remove, err := p.parseFlagLetters(p.pos, end)
	if err != nil {
		return nil, err
	}
	p.pos = end + 1
	saved := p.flags
	p.flags = (p.flags | add) &^ remove
	sub, err := p.parseBody(open)
	p.flags = saved
	if err != nil {
		return nil, err
	}
	return p.f.Modifier(sub, add, remove), nil
}

// parseNamedGroup parses "name>body)" with p.pos after the '<'.
func (p *parser) parseNamedGroup(open int) (*Token, error) {
	name, err := p.parseName('>')
	if err != nil {
		return nil, err
	}
	for _, n := range p.names {
		if n == name {
			return nil, p.errorAt(CodeInvalidGroupName, open)
		}
	}
	n := p.newGroup(name)
	sub, err := p.parseBody(open)
	if err != nil {
		return nil, err
	}
	p.closed[n] = true
	return p.f.Paren(sub, n, name), nil
}

// parseName reads an identifier terminated by term and consumes both.
func (p *parser) parseName(term byte) (string, error) {
	start := p.pos
	i := start
	for i < len(p.src) && isNameByte(p.src[i], i == start) {
		i++
	}
	if i == start || i >= len(p.src) || p.src[i] != term {
		return "", p.errorAt(CodeInvalidGroupName, start)
	}
	p.pos = i + 1
	return p.src[start:i], nil
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return !first
	}
	return false
}

// parseCondition parses "(cond)yes|no)" with p.pos at the condition's '('.
func (p *parser) parseCondition(open int) (*Token, error) {
	condOpen := p.pos
	p.pos++
	var (
		cond  *Token
		group int
		ref   = condRef{offset: condOpen}
	)
	switch c := p.peek(0); {
	case c == '?':
		var behind, negate bool
		switch {
		case p.peek(1) == '=' || p.peek(1) == '!':
			negate = p.peek(1) == '!'
			p.pos += 2
		case p.peek(1) == '<' && (p.peek(2) == '=' || p.peek(2) == '!'):
			behind, negate = true, p.peek(2) == '!'
			p.pos += 3
		default:
			return nil, p.errorAt(CodeInvalidCondition, condOpen)
		}
		sub, err := p.parseBody(condOpen)
		if err != nil {
			return nil, err
		}
		cond = p.f.Look(sub, behind, negate)
	case c == '<':
		p.pos++
		name, err := p.parseName('>')
		if err != nil {
			return nil, err
		}
		if p.peek(0) != ')' {
			return nil, p.errorAt(CodeInvalidCondition, condOpen)
		}
		p.pos++
		ref.name = name
	case '1' <= c && c <= '9':
		n, next, _ := scanInt(p.src, p.pos)
		if next >= len(p.src) || p.src[next] != ')' {
			return nil, p.errorAt(CodeInvalidCondition, condOpen)
		}
		p.pos = next + 1
		group = n
	default:
		return nil, p.errorAt(CodeInvalidCondition, condOpen)
	}

	p.skipExtended()
	if p.peek(0) == ')' {
		return nil, p.errorAt(CodeMissingOperand, p.pos)
	}
	branches, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.more() {
		return nil, p.errorAt(CodeUnterminatedGroup, open)
	}
	p.pos++
	if len(branches) > 2 {
		return nil, p.errorAt(CodeInvalidCondition, open)
	}
	yes, no := branches[0], p.f.Empty()
	if len(branches) == 2 {
		no = branches[1]
	}
	tok := p.f.Condition(group, cond, yes, no)
	if cond == nil {
		ref.tok = tok
		p.condRefs = append(p.condRefs, ref)
	}
	return tok, nil
}

// resolveConditions checks group references of conditional groups, which may
// name groups defined later in the pattern.
func (p *parser) resolveConditions() error {
	for _, ref := range p.condRefs {
		if ref.name != "" {
			n := -1
			for i, name := range p.names {
				if name == ref.name {
					n = i
				}
			}
			if n < 0 {
				return p.errorAt(CodeInvalidBackref, ref.offset)
			}
			ref.tok.Group = n
			continue
		}
		if ref.tok.Group < 1 || ref.tok.Group > p.ncap {
			return p.errorAt(CodeInvalidBackref, ref.offset)
		}
	}
	return nil
}

// inlineFlagsEnd reports whether an inline flag group "(?flags)" starts at
// p.pos, returning the index of its ')'.
func (p *parser) inlineFlagsEnd() (int, bool) {
	if p.xml() || !strings.HasPrefix(p.src[p.pos:], "(?") {
		return 0, false
	}
	end := p.scanFlagsEnd(p.pos + 2)
	if end < len(p.src) && p.src[end] == ')' {
		return end, true
	}
	return 0, false
}

func (p *parser) scanFlagsEnd(i int) int {
	for i < len(p.src) {
		c := p.src[i]
		if c != '-' && !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			break
		}
		i++
	}
	return i
}

func (p *parser) parseFlagLetters(from, to int) (add, remove Flags, err error) {
	negated := false
	for i := from; i < to; i++ {
		c := p.src[i]
		if c == '-' {
			if negated {
				return 0, 0, p.errorAt(CodeInvalidFlag, i)
			}
			negated = true
			continue
		}
		fl, ok := flagFor(c)
		if !ok || fl&inlineFlags == 0 {
			return 0, 0, p.errorAt(CodeInvalidFlag, i)
		}
		if negated {
			remove |= fl
		} else {
			add |= fl
		}
	}
	if from == to || (negated && remove == 0) {
		return 0, 0, p.errorAt(CodeInvalidFlag, from)
	}
	return add, remove, nil
}

// parseEscape parses an escape outside a character class.
func (p *parser) parseEscape() (*Token, error) {
	start := p.pos
	p.pos++
	if !p.more() {
		return nil, p.errorAt(CodeInvalidEscape, start)
	}
	c, size := utf8.DecodeRuneInString(p.src[p.pos:])

	if a, ok := escapeAnchor(c); ok {
		if p.xml() {
			return nil, p.errorAt(CodeUnsupportedInXML, start)
		}
		p.pos += size
		return p.f.Anchor(a), nil
	}
	switch {
	case c == 'p' || c == 'P':
		name, negated, err := p.parsePropertyName(start)
		if err != nil {
			return nil, err
		}
		tok, err := p.f.Range(name, negated)
		if err != nil {
			return nil, p.wrapAt(CodeUnknownRangeName, start, err)
		}
		return tok, nil
	case c == 'k':
		if p.xml() {
			return nil, p.errorAt(CodeUnsupportedInXML, start)
		}
		p.pos++
		if p.peek(0) != '<' {
			return nil, p.errorAt(CodeInvalidBackref, start)
		}
		p.pos++
		name, err := p.parseName('>')
		if err != nil {
			return nil, err
		}
		for n, gn := range p.names {
			if gn == name && p.closed[n] {
				return p.f.Backref(n), nil
			}
		}
		return nil, p.errorAt(CodeInvalidBackref, start)
	case '0' <= c && c <= '9':
		if p.xml() {
			return nil, p.errorAt(CodeUnsupportedInXML, start)
		}
		return p.parseBackref(start)
	}
	if cl, negated, ok := escapeClass(c); ok {
		p.pos += size
		s := ranges.ClassSet(cl, p.flags.ClassMode())
		return p.f.Class(s, negated), nil
	}
	r, err := p.charEscape(c, size, start, false)
	if err != nil {
		return nil, err
	}
	return p.f.Char(r), nil
}

// parseBackref parses \N with p.pos at the first digit. The longest digit
// sequence naming a closed group wins.
func (p *parser) parseBackref(start int) (*Token, error) {
	n := int(p.src[p.pos] - '0')
	p.pos++
	if n == 0 {
		return nil, p.errorAt(CodeInvalidBackref, start)
	}
	if c := p.peek(0); '0' <= c && c <= '9' {
		n2 := n*10 + int(c-'0')
		if n2 <= p.ncap && p.closed[n2] {
			n = n2
			p.pos++
		}
	}
	if n > p.ncap || !p.closed[n] {
		return nil, p.errorAt(CodeInvalidBackref, start)
	}
	return p.f.Backref(n), nil
}

// parsePropertyName parses the name of \p{Name}, \P{Name}, \p{^Name} or the
// one-letter \pL form, with p.pos at the 'p' or 'P'.
func (p *parser) parsePropertyName(start int) (string, bool, error) {
	negated := p.src[p.pos] == 'P'
	p.pos++
	if !p.more() {
		return "", false, p.errorAt(CodeInvalidEscape, start)
	}
	if p.src[p.pos] != '{' {
		if p.xml() {
			return "", false, p.errorAt(CodeInvalidEscape, start)
		}
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		return string(r), negated, nil
	}
	end := strings.IndexByte(p.src[p.pos:], '}')
	if end < 0 {
		return "", false, p.errorAt(CodeInvalidEscape, start)
	}
	name := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1
	if !p.xml() && strings.HasPrefix(name, "^") {
		name = name[1:]
		negated = !negated
	}
	return name, negated, nil
}

func escapeAnchor(c rune) (AnchorKind, bool) {
	switch c {
	case 'A':
		return AnchorTextStart, true
	case 'Z':
		return AnchorTextEndNewline, true
	case 'z':
		return AnchorTextEnd, true
	case 'b':
		return AnchorWordBoundary, true
	case 'B':
		return AnchorNonWordBoundary, true
	case '<':
		return AnchorWordStart, true
	case '>':
		return AnchorWordEnd, true
	}
	return 0, false
}

func escapeClass(c rune) (ranges.Class, bool, bool) {
	switch c {
	case 'd', 'D':
		return ranges.Digit, c == 'D', true
	case 'w', 'W':
		return ranges.Word, c == 'W', true
	case 's', 'S':
		return ranges.Space, c == 'S', true
	case 'i', 'I':
		return ranges.NameStart, c == 'I', true
	case 'c', 'C':
		return ranges.Name, c == 'C', true
	}
	return 0, false, false
}

// xmlEscapable lists the characters XML Schema allows after a backslash
// besides n, r and t.
const xmlEscapable = `\|.-^?*+{}()[]$`

// charEscape resolves a single-character escape. c is the rune after the
// backslash, size its encoded length, and p.pos points at c.
func (p *parser) charEscape(c rune, size, start int, inClass bool) (rune, error) {
	p.pos += size
	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	}
	if p.xml() {
		if c < utf8.RuneSelf && strings.ContainsRune(xmlEscapable, c) {
			return c, nil
		}
		return 0, p.errorAt(CodeInvalidEscape, start)
	}
	switch c {
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	case 'e':
		return 0x1B, nil
	case 'a':
		return 0x07, nil
	case 'b':
		if inClass {
			return '\b', nil
		}
	case 'x':
		return p.hexEscape(start)
	case 'u':
		return p.fixedHex(start, 4)
	}
	if c >= utf8.RuneSelf || !isAlnum(c) {
		return c, nil
	}
	return 0, p.errorAt(CodeInvalidEscape, start)
}

func isAlnum(c rune) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// hexEscape parses the digits of \xHH or \x{H...} with p.pos after the 'x'.
func (p *parser) hexEscape(start int) (rune, error) {
	if p.peek(0) != '{' {
		return p.fixedHex(start, 2)
	}
	end := strings.IndexByte(p.src[p.pos:], '}')
	if end < 2 || end > 7 {
		return 0, p.errorAt(CodeInvalidEscape, start)
	}
	var r rune
	for _, c := range []byte(p.src[p.pos+1 : p.pos+end]) {
		d, ok := hexDigit(c)
		if !ok {
			return 0, p.errorAt(CodeInvalidEscape, start)
		}
		r = r<<4 | d
	}
	if r > utf8.MaxRune {
		return 0, p.errorAt(CodeInvalidEscape, start)
	}
	p.pos += end + 1
	return r, nil
}

func (p *parser) fixedHex(start, n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorAt(CodeInvalidEscape, start)
	}
	var r rune
	for i := 0; i < n; i++ {
		d, ok := hexDigit(p.src[p.pos+i])
		if !ok {
			return 0, p.errorAt(CodeInvalidEscape, start)
		}
		r = r<<4 | d
	}
	p.pos += n
	return r, nil
}

func hexDigit(c byte) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return rune(c - '0'), true
	case 'a' <= c && c <= 'f':
		return rune(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}
