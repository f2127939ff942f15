package starlarkregx

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/coregx/regx"
)

// Pattern is a compiled expression as a Starlark value.
type Pattern struct {
	re      *regx.Regex
	pattern string
	flags   int
}

var (
	_ starlark.Value      = (*Pattern)(nil)
	_ starlark.HasAttrs   = (*Pattern)(nil)
	_ starlark.Comparable = (*Pattern)(nil)
)

func (p *Pattern) String() string {
	var b strings.Builder
	b.WriteString("regx.compile(")
	b.WriteString(starlark.String(p.pattern).String())
	first := true
	for _, f := range flagOptions {
		if p.flags&f.flag == 0 {
			continue
		}
		if first {
			b.WriteString(", ")
			first = false
		} else {
			b.WriteByte('|')
		}
		b.WriteString("regx.")
		b.WriteString(f.name)
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Pattern) Type() string          { return "regx.Pattern" }
func (p *Pattern) Freeze()               {}
func (p *Pattern) Truth() starlark.Bool  { return true }
func (p *Pattern) Hash() (uint32, error) { return starlark.String(p.pattern).Hash() }

func (p *Pattern) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	o := y.(*Pattern)
	eq := p.pattern == o.pattern && p.flags == o.flags
	switch op {
	case syntax.EQL:
		return eq, nil
	case syntax.NEQ:
		return !eq, nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", p.Type(), op, o.Type())
	}
}

var patternMethods = map[string]*starlark.Builtin{
	"search":    starlark.NewBuiltin("search", patternSearch),
	"match":     starlark.NewBuiltin("match", patternMatch),
	"fullmatch": starlark.NewBuiltin("fullmatch", patternFullmatch),
	"findall":   starlark.NewBuiltin("findall", patternFindall),
	"split":     starlark.NewBuiltin("split", patternSplit),
	"sub":       starlark.NewBuiltin("sub", patternSub),
	"subn":      starlark.NewBuiltin("subn", patternSub),
}

var patternMembers = map[string]func(p *Pattern) starlark.Value{
	"pattern": func(p *Pattern) starlark.Value { return starlark.String(p.pattern) },
	"flags":   func(p *Pattern) starlark.Value { return starlark.MakeInt(p.flags) },
	"groups":  func(p *Pattern) starlark.Value { return starlark.MakeInt(p.re.NumSubexp()) },
	"groupindex": func(p *Pattern) starlark.Value {
		names := p.re.SubexpNames()
		gi := starlark.NewDict(len(names))
		for i, name := range names {
			if name != "" {
				_ = gi.SetKey(starlark.String(name), starlark.MakeInt(i))
			}
		}
		gi.Freeze()
		return gi
	},
}

func (p *Pattern) Attr(name string) (starlark.Value, error) {
	if b, ok := patternMethods[name]; ok {
		return b.BindReceiver(p), nil
	}
	if f, ok := patternMembers[name]; ok {
		return f(p), nil
	}
	return nil, nil
}

func (p *Pattern) AttrNames() []string {
	names := make([]string, 0, len(patternMethods)+len(patternMembers))
	for name := range patternMethods {
		names = append(names, name)
	}
	for name := range patternMembers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// search returns the first match at or after pos, or None.
func (p *Pattern) search(s string, pos int) (starlark.Value, error) {
	m := regx.NewMatch()
	ok, err := p.re.SearchAt([]byte(s), clamp(pos, len(s)), m)
	if err != nil {
		return nil, err
	}
	if !ok {
		return starlark.None, nil
	}
	return newMatch(p, s, m.Indices(nil)), nil
}

// match returns the match starting exactly at pos, or None.
func (p *Pattern) match(s string, pos int) (starlark.Value, error) {
	m := regx.NewMatch()
	ok, err := p.re.MatchAt([]byte(s), clamp(pos, len(s)), m)
	if err != nil {
		return nil, err
	}
	if !ok {
		return starlark.None, nil
	}
	return newMatch(p, s, m.Indices(nil)), nil
}

// fullmatch returns a match covering all of s, or None.
func (p *Pattern) fullmatch(s string) (starlark.Value, error) {
	m := regx.NewMatch()
	ok, err := p.re.Engine().FullMatch([]byte(s), m)
	if err != nil {
		return nil, err
	}
	if !ok {
		return starlark.None, nil
	}
	return newMatch(p, s, m.Indices(nil)), nil
}

// findall lists every match: the matched text without groups, the group
// text with one group, a tuple of groups otherwise.
func (p *Pattern) findall(s string) *starlark.List {
	var out []starlark.Value
	for _, a := range p.re.FindAllStringSubmatchIndex(s, -1) {
		n := len(a) / 2
		switch n {
		case 1:
			out = append(out, starlark.String(s[a[0]:a[1]]))
		case 2:
			out = append(out, groupText(s, a, 1))
		default:
			t := make(starlark.Tuple, 0, n-1)
			for i := 1; i < n; i++ {
				t = append(t, groupText(s, a, i))
			}
			out = append(out, t)
		}
	}
	return starlark.NewList(out)
}

func groupText(s string, a []int, i int) starlark.String {
	if a[2*i] < 0 {
		return ""
	}
	return starlark.String(s[a[2*i]:a[2*i+1]])
}

// split splits s around matches, at most maxSplit times when maxSplit > 0.
// Group text is included between the pieces; groups that did not
// participate are None.
func (p *Pattern) split(s string, maxSplit int) *starlark.List {
	n := -1
	if maxSplit > 0 {
		n = maxSplit
	}
	var out []starlark.Value
	last := 0
	for _, a := range p.re.FindAllStringSubmatchIndex(s, n) {
		out = append(out, starlark.String(s[last:a[0]]))
		for i := 1; i < len(a)/2; i++ {
			if a[2*i] < 0 {
				out = append(out, starlark.None)
			} else {
				out = append(out, starlark.String(s[a[2*i]:a[2*i+1]]))
			}
		}
		last = a[1]
	}
	out = append(out, starlark.String(s[last:]))
	return starlark.NewList(out)
}

// sub replaces at most count matches (all when count <= 0). repl is a
// template string or a callable taking a Match and returning str.
func (p *Pattern) sub(thread *starlark.Thread, repl starlark.Value, s string, count int) (string, int, error) {
	var replace func(a []int) (string, error)
	switch r := repl.(type) {
	case starlark.String:
		tmpl, err := parseTemplate(p.re, string(r))
		if err != nil {
			return "", 0, err
		}
		replace = func(a []int) (string, error) {
			return tmpl.expand(s, a), nil
		}
	case starlark.Callable:
		replace = func(a []int) (string, error) {
			v, err := starlark.Call(thread, r, starlark.Tuple{newMatch(p, s, a)}, nil)
			if err != nil {
				return "", err
			}
			str, ok := starlark.AsString(v)
			if !ok {
				return "", fmt.Errorf("replacement function returned %s, want str", v.Type())
			}
			return str, nil
		}
	default:
		return "", 0, errors.New("repl must be str or callable")
	}

	n := -1
	if count > 0 {
		n = count
	}
	matches := p.re.FindAllStringSubmatchIndex(s, n)
	var b strings.Builder
	last := 0
	for _, a := range matches {
		b.WriteString(s[last:a[0]])
		r, err := replace(a)
		if err != nil {
			return "", 0, err
		}
		b.WriteString(r)
		last = a[1]
	}
	b.WriteString(s[last:])
	return b.String(), len(matches), nil
}

func (p *Pattern) subValue(thread *starlark.Thread, name string, repl starlark.Value, s string, count int) (starlark.Value, error) {
	out, n, err := p.sub(thread, repl, s, count)
	if err != nil {
		return nil, err
	}
	if name == "subn" {
		return starlark.Tuple{starlark.String(out), starlark.MakeInt(n)}, nil
	}
	return starlark.String(out), nil
}

func patternSearch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		str string
		pos int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "string", &str, "pos?", &pos); err != nil {
		return nil, err
	}
	return b.Receiver().(*Pattern).search(str, pos)
}

func patternMatch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		str string
		pos int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "string", &str, "pos?", &pos); err != nil {
		return nil, err
	}
	return b.Receiver().(*Pattern).match(str, pos)
}

func patternFullmatch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var str string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "string", &str); err != nil {
		return nil, err
	}
	return b.Receiver().(*Pattern).fullmatch(str)
}

func patternFindall(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var str string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "string", &str); err != nil {
		return nil, err
	}
	return b.Receiver().(*Pattern).findall(str), nil
}

func patternSplit(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		str      string
		maxSplit int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "string", &str, "maxsplit?", &maxSplit); err != nil {
		return nil, err
	}
	return b.Receiver().(*Pattern).split(str, maxSplit), nil
}

func patternSub(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		repl  starlark.Value
		str   string
		count int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "repl", &repl, "string", &str, "count?", &count); err != nil {
		return nil, err
	}
	return b.Receiver().(*Pattern).subValue(thread, b.Name(), repl, str, count)
}
