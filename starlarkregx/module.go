// Package starlarkregx exposes the regx engine to Starlark scripts as a
// module modelled on Python's re:
//
//	predeclared := starlark.StringDict{"regx": starlarkregx.NewModule(nil)}
//
//	m = regx.search(r"(\w+)@(\w+)", "mail bob@example now")
//	print(m.group(1), m.span())          # bob (5, 16)
//	print(regx.sub(r"(\d+)", r"<\1>", "a1b22"))
//
// Subjects and patterns are str; offsets are byte offsets, as everywhere in
// regx. Compiled patterns are shared through a regx.Cache, so calling the
// module-level functions repeatedly with the same pattern compiles it once.
package starlarkregx

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/coregx/regx"
)

// Flags accepted by the flags parameter.
const (
	flagIgnoreCase = 1 << iota
	flagMultiline
	flagDotAll
	flagVerbose
	flagUnicode
	flagXML
)

var flagOptions = []struct {
	flag   int
	letter byte
	name   string
}{
	{flagIgnoreCase, 'i', "IGNORECASE"},
	{flagMultiline, 'm', "MULTILINE"},
	{flagDotAll, 's', "DOTALL"},
	{flagVerbose, 'x', "VERBOSE"},
	{flagUnicode, 'u', "UNICODE"},
	{flagXML, 'X', "XML"},
}

// flagOpts converts module flags to a regx option string.
func flagOpts(flags int) (string, error) {
	var b strings.Builder
	for _, f := range flagOptions {
		if flags&f.flag != 0 {
			b.WriteByte(f.letter)
			flags &^= f.flag
		}
	}
	if flags != 0 {
		return "", fmt.Errorf("unknown flags 0x%x", flags)
	}
	return b.String(), nil
}

// Module is the Starlark regx module.
type Module struct {
	members starlark.StringDict
	cache   *regx.Cache
}

// NewModule returns a module compiling through cache. A nil cache gets a
// private one whose entries never expire.
func NewModule(cache *regx.Cache) *Module {
	if cache == nil {
		cache = regx.NewCache(0, regx.DefaultConfig())
	}
	members := starlark.StringDict{
		"I":          starlark.MakeInt(flagIgnoreCase),
		"IGNORECASE": starlark.MakeInt(flagIgnoreCase),
		"M":          starlark.MakeInt(flagMultiline),
		"MULTILINE":  starlark.MakeInt(flagMultiline),
		"S":          starlark.MakeInt(flagDotAll),
		"DOTALL":     starlark.MakeInt(flagDotAll),
		"X":          starlark.MakeInt(flagVerbose),
		"VERBOSE":    starlark.MakeInt(flagVerbose),
		"U":          starlark.MakeInt(flagUnicode),
		"UNICODE":    starlark.MakeInt(flagUnicode),
		"XML":        starlark.MakeInt(flagXML),

		"compile":   starlark.NewBuiltin("compile", regxCompile),
		"purge":     starlark.NewBuiltin("purge", regxPurge),
		"search":    starlark.NewBuiltin("search", regxSearch),
		"match":     starlark.NewBuiltin("match", regxMatch),
		"fullmatch": starlark.NewBuiltin("fullmatch", regxFullmatch),
		"findall":   starlark.NewBuiltin("findall", regxFindall),
		"split":     starlark.NewBuiltin("split", regxSplit),
		"sub":       starlark.NewBuiltin("sub", regxSub),
		"subn":      starlark.NewBuiltin("subn", regxSub),
		"escape":    starlark.NewBuiltin("escape", regxEscape),
	}
	return &Module{members: members, cache: cache}
}

var (
	_ starlark.Value    = (*Module)(nil)
	_ starlark.HasAttrs = (*Module)(nil)
)

func (m *Module) Freeze()               { m.members.Freeze() }
func (m *Module) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: %s", m.Type()) }
func (m *Module) String() string        { return "<module regx>" }
func (m *Module) Truth() starlark.Bool  { return true }
func (m *Module) Type() string          { return "module" }

// Attr returns a member; builtins are bound to the module so they can reach
// its cache.
func (m *Module) Attr(name string) (starlark.Value, error) {
	v, ok := m.members[name]
	if !ok {
		return nil, nil
	}
	if b, ok := v.(*starlark.Builtin); ok {
		return b.BindReceiver(m), nil
	}
	return v, nil
}

func (m *Module) AttrNames() []string { return m.members.Keys() }

func (m *Module) compile(pattern string, flags int) (*Pattern, error) {
	opts, err := flagOpts(flags)
	if err != nil {
		return nil, err
	}
	re, err := m.cache.Get(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re, pattern: pattern, flags: flags}, nil
}

// patternParam is either a compiled Pattern or a pattern string.
type patternParam struct {
	compiled *Pattern
	raw      string
}

var _ starlark.Unpacker = (*patternParam)(nil)

func (p *patternParam) Unpack(v starlark.Value) error {
	switch t := v.(type) {
	case *Pattern:
		p.compiled = t
	case starlark.String:
		p.raw = string(t)
	default:
		return errors.New("first argument must be string or compiled pattern")
	}
	return nil
}

func compilePattern(b *starlark.Builtin, p patternParam, flags int) (*Pattern, error) {
	if p.compiled != nil {
		if flags != 0 {
			return nil, errors.New("cannot process flags argument with a compiled pattern")
		}
		return p.compiled, nil
	}
	return b.Receiver().(*Module).compile(p.raw, flags)
}

func regxCompile(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern patternParam
		flags   int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "flags?", &flags); err != nil {
		return nil, err
	}
	return compilePattern(b, pattern, flags)
}

func regxPurge(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	b.Receiver().(*Module).cache.Flush()
	return starlark.None, nil
}

// unpackSubject handles the (pattern, string, flags?) shape shared by
// search, match, fullmatch and findall.
func unpackSubject(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (*Pattern, string, error) {
	var (
		pattern patternParam
		str     string
		flags   int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "string", &str, "flags?", &flags); err != nil {
		return nil, "", err
	}
	p, err := compilePattern(b, pattern, flags)
	return p, str, err
}

func regxSearch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	p, s, err := unpackSubject(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return p.search(s, 0)
}

func regxMatch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	p, s, err := unpackSubject(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return p.match(s, 0)
}

func regxFullmatch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	p, s, err := unpackSubject(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return p.fullmatch(s)
}

func regxFindall(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	p, s, err := unpackSubject(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return p.findall(s), nil
}

func regxSplit(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern         patternParam
		str             string
		maxSplit, flags int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "string", &str, "maxsplit?", &maxSplit, "flags?", &flags); err != nil {
		return nil, err
	}
	p, err := compilePattern(b, pattern, flags)
	if err != nil {
		return nil, err
	}
	return p.split(str, maxSplit), nil
}

// regxSub implements sub and subn; subn also returns the replacement count.
func regxSub(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern      patternParam
		repl         starlark.Value
		str          string
		count, flags int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "repl", &repl, "string", &str, "count?", &count, "flags?", &flags); err != nil {
		return nil, err
	}
	p, err := compilePattern(b, pattern, flags)
	if err != nil {
		return nil, err
	}
	return p.subValue(thread, b.Name(), repl, str, count)
}

func regxEscape(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern); err != nil {
		return nil, err
	}
	return starlark.String(regx.QuoteMeta(pattern)), nil
}

// clamp clamps pos to [0, n].
func clamp(pos, n int) int {
	return min(max(pos, 0), n)
}
