package starlarkregx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/regx"
)

// templateRule is a literal (group < 0) or a group reference.
type templateRule struct {
	literal string
	group   int
}

type template []templateRule

// parseTemplate parses a replacement template: \1 through \99 and \g<name>
// or \g<n> refer to groups; \n \t \r \f \v \a \\ are the usual characters.
// Other escaped ASCII letters are errors; any other escaped character is
// kept with its backslash.
func parseTemplate(re *regx.Regex, s string) (template, error) {
	var t template
	addLiteral := func(lit string) {
		if lit == "" {
			return
		}
		if n := len(t); n > 0 && t[n-1].group < 0 {
			t[n-1].literal += lit
			return
		}
		t = append(t, templateRule{literal: lit, group: -1})
	}
	addGroup := func(i int) error {
		if i < 0 || i > re.NumSubexp() {
			return fmt.Errorf("invalid group reference %d", i)
		}
		t = append(t, templateRule{group: i})
		return nil
	}

	for {
		before, rest, ok := strings.Cut(s, `\`)
		addLiteral(before)
		if !ok {
			return t, nil
		}
		if rest == "" {
			return nil, errors.New("bad escape (end of pattern)")
		}
		c := rest[0]
		s = rest[1:]

		switch {
		case '1' <= c && c <= '9':
			i := int(c - '0')
			if s != "" && '0' <= s[0] && s[0] <= '9' {
				i = 10*i + int(s[0]-'0')
				s = s[1:]
			}
			if err := addGroup(i); err != nil {
				return nil, err
			}
		case c == 'g':
			name, after, ok := strings.Cut(strings.TrimPrefix(s, "<"), ">")
			if !strings.HasPrefix(s, "<") || !ok || name == "" {
				return nil, errors.New("missing group name in \\g<...>")
			}
			s = after
			i, err := strconv.Atoi(name)
			if err != nil {
				if i = re.SubexpIndex(name); i < 0 {
					return nil, fmt.Errorf("unknown group name %q", name)
				}
			}
			if err := addGroup(i); err != nil {
				return nil, err
			}
		default:
			if lit, ok := unescape(c); ok {
				addLiteral(lit)
				break
			}
			if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' {
				return nil, fmt.Errorf("bad escape \\%c", c)
			}
			addLiteral(`\` + string(c))
		}
	}
}

func unescape(c byte) (string, bool) {
	switch c {
	case 'n':
		return "\n", true
	case 't':
		return "\t", true
	case 'r':
		return "\r", true
	case 'f':
		return "\f", true
	case 'v':
		return "\v", true
	case 'a':
		return "\a", true
	case '\\':
		return `\`, true
	}
	return "", false
}

// expand renders the template for one match of s.
func (t template) expand(s string, indices []int) string {
	var b strings.Builder
	for _, r := range t {
		if r.group < 0 {
			b.WriteString(r.literal)
			continue
		}
		if start := indices[2*r.group]; start >= 0 {
			b.WriteString(s[start:indices[2*r.group+1]])
		}
	}
	return b.String()
}
