package starlarkregx

import (
	"errors"
	"fmt"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Match is the result of a successful search as a Starlark value.
type Match struct {
	pattern *Pattern
	str     string
	// indices holds start/end pairs per group, -1 for groups that did not
	// participate.
	indices []int
}

func newMatch(p *Pattern, s string, indices []int) *Match {
	return &Match{pattern: p, str: s, indices: indices}
}

var (
	_ starlark.Value      = (*Match)(nil)
	_ starlark.HasAttrs   = (*Match)(nil)
	_ starlark.Mapping    = (*Match)(nil)
	_ starlark.Comparable = (*Match)(nil)
)

func (m *Match) String() string {
	return fmt.Sprintf("<regx.Match object; span=(%d, %d), match=%s>",
		m.indices[0], m.indices[1], starlark.String(m.str[m.indices[0]:m.indices[1]]).String())
}

func (m *Match) Type() string         { return "regx.Match" }
func (m *Match) Freeze()              {}
func (m *Match) Truth() starlark.Bool { return true }

func (m *Match) Hash() (uint32, error) {
	h, _ := m.pattern.Hash()
	for _, x := range m.indices {
		h ^= uint32(x)
		h *= 16777619
	}
	return h, nil
}

func (m *Match) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	o := y.(*Match)
	eq := m.pattern.pattern == o.pattern.pattern && m.pattern.flags == o.pattern.flags &&
		m.str == o.str && slices.Equal(m.indices, o.indices)
	switch op {
	case syntax.EQL:
		return eq, nil
	case syntax.NEQ:
		return !eq, nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", m.Type(), op, o.Type())
	}
}

var matchMethods = map[string]*starlark.Builtin{
	"group":     starlark.NewBuiltin("group", matchGroup),
	"groups":    starlark.NewBuiltin("groups", matchGroups),
	"groupdict": starlark.NewBuiltin("groupdict", matchGroupDict),
	"start":     starlark.NewBuiltin("start", matchStart),
	"end":       starlark.NewBuiltin("end", matchEnd),
	"span":      starlark.NewBuiltin("span", matchSpan),
	"expand":    starlark.NewBuiltin("expand", matchExpand),
}

var matchMembers = map[string]func(m *Match) starlark.Value{
	"string": func(m *Match) starlark.Value { return starlark.String(m.str) },
	"re":     func(m *Match) starlark.Value { return m.pattern },
	"lastindex": func(m *Match) starlark.Value {
		if i := m.lastIndex(); i > 0 {
			return starlark.MakeInt(i)
		}
		return starlark.None
	},
}

func (m *Match) Attr(name string) (starlark.Value, error) {
	if b, ok := matchMethods[name]; ok {
		return b.BindReceiver(m), nil
	}
	if f, ok := matchMembers[name]; ok {
		return f(m), nil
	}
	return nil, nil
}

func (m *Match) AttrNames() []string {
	names := make([]string, 0, len(matchMethods)+len(matchMembers))
	for name := range matchMethods {
		names = append(names, name)
	}
	for name := range matchMembers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get makes m[g] equivalent to m.group(g).
func (m *Match) Get(k starlark.Value) (starlark.Value, bool, error) {
	v, err := m.group(k)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// lastIndex is the group that ended last, 0 when no group participated.
func (m *Match) lastIndex() int {
	last, lastEnd := 0, -1
	for i := 1; i < len(m.indices)/2; i++ {
		if e := m.indices[2*i+1]; e > lastEnd {
			last, lastEnd = i, e
		}
	}
	return last
}

// index resolves a group number or name.
func (m *Match) index(v starlark.Value) (int, error) {
	n := len(m.indices) / 2
	switch t := v.(type) {
	case starlark.Int:
		if i, ok := t.Int64(); ok && i >= 0 && i < int64(n) {
			return int(i), nil
		}
	case starlark.String:
		if i := m.pattern.re.SubexpIndex(string(t)); i >= 0 {
			return i, nil
		}
	}
	return 0, errors.New("IndexError: no such group")
}

func (m *Match) group(v starlark.Value) (starlark.Value, error) {
	i, err := m.index(v)
	if err != nil {
		return nil, err
	}
	if m.indices[2*i] < 0 {
		return starlark.None, nil
	}
	return starlark.String(m.str[m.indices[2*i]:m.indices[2*i+1]]), nil
}

func matchGroup(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	m := b.Receiver().(*Match)
	switch len(args) {
	case 0:
		return m.group(starlark.MakeInt(0))
	case 1:
		return m.group(args[0])
	}
	out := make(starlark.Tuple, len(args))
	for i, a := range args {
		g, err := m.group(a)
		if err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}

func matchGroups(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var def starlark.Value = starlark.None
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "default?", &def); err != nil {
		return nil, err
	}
	m := b.Receiver().(*Match)
	n := len(m.indices) / 2
	out := make(starlark.Tuple, 0, n-1)
	for i := 1; i < n; i++ {
		if m.indices[2*i] < 0 {
			out = append(out, def)
			continue
		}
		out = append(out, starlark.String(m.str[m.indices[2*i]:m.indices[2*i+1]]))
	}
	return out, nil
}

func matchGroupDict(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var def starlark.Value = starlark.None
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "default?", &def); err != nil {
		return nil, err
	}
	m := b.Receiver().(*Match)
	names := m.pattern.re.SubexpNames()
	d := starlark.NewDict(len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		var v starlark.Value = def
		if m.indices[2*i] >= 0 {
			v = starlark.String(m.str[m.indices[2*i]:m.indices[2*i+1]])
		}
		if err := d.SetKey(starlark.String(name), v); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// boundary implements start, end and span.
func boundary(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (start, end int, err error) {
	var g starlark.Value = starlark.MakeInt(0)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "group?", &g); err != nil {
		return 0, 0, err
	}
	m := b.Receiver().(*Match)
	i, err := m.index(g)
	if err != nil {
		return 0, 0, err
	}
	return m.indices[2*i], m.indices[2*i+1], nil
}

func matchStart(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	start, _, err := boundary(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(start), nil
}

func matchEnd(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	_, end, err := boundary(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(end), nil
}

func matchSpan(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	start, end, err := boundary(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.Tuple{starlark.MakeInt(start), starlark.MakeInt(end)}, nil
}

func matchExpand(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var template string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "template", &template); err != nil {
		return nil, err
	}
	m := b.Receiver().(*Match)
	tmpl, err := parseTemplate(m.pattern.re, template)
	if err != nil {
		return nil, err
	}
	return starlark.String(tmpl.expand(m.str, m.indices)), nil
}
