package starlarkregx

import (
	_ "embed"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/coregx/regx"
)

//go:embed testdata/regx_test.star
var regxScript string

func TestScript(t *testing.T) {
	predeclared := starlark.StringDict{
		"regx":        NewModule(nil),
		"assert_eq":   starlark.NewBuiltin("assert_eq", assertEq),
		"assert_true": starlark.NewBuiltin("assert_true", assertTrue),
		"catch":       starlark.NewBuiltin("catch", catch),
	}

	opts := syntax.FileOptions{Set: true, While: true, TopLevelControl: true}
	_, prog, err := starlark.SourceProgramOptions(&opts, "regx_test.star", regxScript, predeclared.Has)
	require.NoError(t, err)

	thread := &starlark.Thread{
		Name:  "regx test",
		Print: func(_ *starlark.Thread, msg string) { t.Log(msg) },
	}
	if _, err := prog.Init(thread, predeclared); err != nil {
		if e, ok := err.(*starlark.EvalError); ok {
			t.Fatal(e.Backtrace())
		}
		t.Fatal(err)
	}
}

func assertEq(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	eq, err := starlark.Equal(x, y)
	if err != nil {
		return nil, err
	}
	if !eq {
		return nil, fmt.Errorf("%s: %s != %s", b.Name(), x, y)
	}
	return starlark.None, nil
}

func assertTrue(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	if !x.Truth() {
		return nil, fmt.Errorf("%s: got %s", b.Name(), x)
	}
	return starlark.None, nil
}

// catch calls its first argument with the rest and returns the error text,
// or None if the call succeeded.
func catch(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%s: got %d arguments, want at least 1", b.Name(), len(args))
	}
	if _, err := starlark.Call(thread, args[0], args[1:], kwargs); err != nil {
		return starlark.String(err.Error()), nil
	}
	return starlark.None, nil
}

func TestModuleSharesCache(t *testing.T) {
	cache := regx.NewCache(0, regx.DefaultConfig())
	m := NewModule(cache)

	for range 3 {
		_, err := m.compile(`\d+`, flagIgnoreCase)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, cache.Len())

	_, err := m.compile(`\d+`, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	assert.Contains(t, m.AttrNames(), "fullmatch")
	v, err := m.Attr("nope")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFlagOpts(t *testing.T) {
	tests := []struct {
		flags int
		want  string
	}{
		{0, ""},
		{flagIgnoreCase, "i"},
		{flagIgnoreCase | flagDotAll | flagXML, "isX"},
		{flagVerbose | flagUnicode, "xu"},
	}
	for _, tt := range tests {
		got, err := flagOpts(tt.flags)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := flagOpts(1 << 10)
	assert.Error(t, err)
}

func TestParseTemplate(t *testing.T) {
	re := regx.MustCompile(`(?<a>x)(y)?`)
	tests := []struct {
		tmpl    string
		want    string
		wantErr string
	}{
		{`plain`, "plain", ""},
		{`\1-\2`, "x-", ""},
		{`\g<a>\g<2>\g<0>`, "xx", ""},
		{`tab\tend\\`, "tab\tend\\", ""},
		{`\.`, `\.`, ""},
		{`\3`, "", "invalid group reference 3"},
		{`\g<zz>`, "", `unknown group name "zz"`},
		{`\g<a`, "", "missing group name"},
		{`\k`, "", `bad escape \k`},
		{`end\`, "", "bad escape (end of pattern)"},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			tmpl, err := parseTemplate(re, tt.tmpl)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tmpl.expand("x", []int{0, 1, 0, 1, -1, -1}))
		})
	}
}
