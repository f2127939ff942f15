package regx

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/regx/prog"
)

// allMatches calls deliver with the group indices of each successive
// non-overlapping match in b, at most n when n >= 0. An empty match that
// abuts the preceding match is skipped, as in package regexp.
func (r *Regex) allMatches(b []byte, n int, deliver func([]int)) {
	m := prog.NewMatch()
	prevEnd := -1
	for pos, i := 0, 0; (n < 0 || i < n) && pos <= len(b); {
		a := r.search(b, pos, m)
		if a == nil {
			break
		}

		accept := true
		if a[1] == pos {
			// Empty match at pos.
			if a[0] == prevEnd {
				accept = false
			}
			if pos < len(b) {
				_, w := utf8.DecodeRune(b[pos:])
				pos += w
			} else {
				pos++
			}
		} else {
			pos = a[1]
		}
		prevEnd = a[1]

		if accept {
			deliver(a)
			i++
		}
	}
}

// FindAll returns the text of all successive matches in b; n < 0 means all.
//
// Example:
//
//	re := regx.MustCompile(`\d+`)
//	re.FindAll([]byte("1 2 3"), -1) // ["1" "2" "3"]
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	var out [][]byte
	r.allMatches(b, n, func(a []int) {
		out = append(out, b[a[0]:a[1]:a[1]])
	})
	return out
}

// FindAllString returns the text of all successive matches in s.
func (r *Regex) FindAllString(s string, n int) []string {
	var out []string
	r.allMatches([]byte(s), n, func(a []int) {
		out = append(out, s[a[0]:a[1]])
	})
	return out
}

// FindAllIndex returns the locations of all successive matches in b.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	var out [][]int
	r.allMatches(b, n, func(a []int) {
		out = append(out, a[:2:2])
	})
	return out
}

// FindAllStringIndex returns the locations of all successive matches in s.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// FindAllSubmatch returns the text of every match and its groups.
func (r *Regex) FindAllSubmatch(b []byte, n int) [][][]byte {
	var out [][][]byte
	r.allMatches(b, n, func(a []int) {
		out = append(out, groupsOf(b, a))
	})
	return out
}

// FindAllSubmatchIndex returns the group indices of every match.
func (r *Regex) FindAllSubmatchIndex(b []byte, n int) [][]int {
	var out [][]int
	r.allMatches(b, n, func(a []int) {
		out = append(out, a)
	})
	return out
}

// FindAllStringSubmatch returns the text of every match and its groups.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	var out [][]string
	r.allMatches([]byte(s), n, func(a []int) {
		out = append(out, stringGroupsOf(s, a))
	})
	return out
}

// FindAllStringSubmatchIndex returns the group indices of every match in s.
func (r *Regex) FindAllStringSubmatchIndex(s string, n int) [][]int {
	return r.FindAllSubmatchIndex([]byte(s), n)
}

// Count returns the number of successive matches in b; n < 0 means all.
func (r *Regex) Count(b []byte, n int) int {
	count := 0
	r.allMatches(b, n, func([]int) { count++ })
	return count
}

// Split slices s into the substrings between matches.
//
//	n > 0: at most n substrings; the last is the unsplit remainder
//	n == 0: nil
//	n < 0: all substrings
//
// Example:
//
//	regx.MustCompile(`,\s*`).Split("a, b,c", -1) // ["a" "b" "c"]
func (r *Regex) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}
	if len(r.pattern) > 0 && len(s) == 0 {
		return []string{""}
	}

	matches := r.FindAllStringIndex(s, n)
	out := make([]string, 0, len(matches)+1)
	beg, end := 0, 0
	for _, match := range matches {
		if n > 0 && len(out) == n-1 {
			break
		}
		end = match[0]
		if match[1] != 0 {
			out = append(out, s[beg:end])
		}
		beg = match[1]
	}
	if end != len(s) {
		out = append(out, s[beg:])
	}
	return out
}

// replaceAll calls repl for each match and splices its output into src.
func (r *Regex) replaceAll(src []byte, repl func(dst []byte, match []int) []byte) []byte {
	m := prog.NewMatch()
	var buf []byte
	lastEnd := 0
	for pos := 0; pos <= len(src); {
		a := r.search(src, pos, m)
		if a == nil {
			break
		}

		buf = append(buf, src[lastEnd:a[0]]...)
		// An empty match right after the previous match is not replaced.
		if a[1] > lastEnd || a[0] == 0 {
			buf = repl(buf, a)
		}
		lastEnd = a[1]

		width := 1
		if pos < len(src) {
			_, width = utf8.DecodeRune(src[pos:])
		}
		switch {
		case pos+width > a[1]:
			pos += width
		case pos+1 > a[1]:
			pos++
		default:
			pos = a[1]
		}
	}
	return append(buf, src[lastEnd:]...)
}

// ReplaceAll returns a copy of src with every match replaced by repl, in
// which $1, ${1}, $name and ${name} expand to group text and $$ is a dollar.
func (r *Regex) ReplaceAll(src, repl []byte) []byte {
	return r.replaceAll(src, func(dst []byte, a []int) []byte {
		return r.expand(dst, string(repl), src, "", a)
	})
}

// ReplaceAllString is like ReplaceAll for strings.
//
// Example:
//
//	re := regx.MustCompile(`(\w+)@(\w+)\.com`)
//	re.ReplaceAllString("bob@example.com", "$2:$1") // "example:bob"
func (r *Regex) ReplaceAllString(src, repl string) string {
	b := r.replaceAll([]byte(src), func(dst []byte, a []int) []byte {
		return r.expand(dst, repl, nil, src, a)
	})
	return string(b)
}

// ReplaceAllLiteral returns a copy of src with every match replaced by repl
// verbatim.
func (r *Regex) ReplaceAllLiteral(src, repl []byte) []byte {
	return r.replaceAll(src, func(dst []byte, _ []int) []byte {
		return append(dst, repl...)
	})
}

// ReplaceAllLiteralString returns a copy of src with every match replaced by
// repl verbatim.
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	return string(r.ReplaceAllLiteral([]byte(src), []byte(repl)))
}

// ReplaceAllStringFunc returns a copy of src with every match replaced by
// repl applied to the matched text.
func (r *Regex) ReplaceAllStringFunc(src string, repl func(string) string) string {
	b := r.replaceAll([]byte(src), func(dst []byte, a []int) []byte {
		return append(dst, repl(src[a[0]:a[1]])...)
	})
	return string(b)
}

// Expand appends template to dst with $ references replaced by the groups
// of match, a result of FindSubmatchIndex on src.
func (r *Regex) Expand(dst []byte, template []byte, src []byte, match []int) []byte {
	return r.expand(dst, string(template), src, "", match)
}

// expand reads group text from bsrc when it is non-nil, otherwise from src.
func (r *Regex) expand(dst []byte, template string, bsrc []byte, src string, match []int) []byte {
	for len(template) > 0 {
		before, after, ok := strings.Cut(template, "$")
		if !ok {
			break
		}
		dst = append(dst, before...)
		template = after
		if template != "" && template[0] == '$' {
			dst = append(dst, '$')
			template = template[1:]
			continue
		}
		name, num, rest, ok := extract(template)
		if !ok {
			// Malformed; treat $ as raw text.
			dst = append(dst, '$')
			continue
		}
		template = rest
		if num < 0 {
			num = r.SubexpIndex(name)
		}
		if num >= 0 && 2*num+1 < len(match) && match[2*num] >= 0 {
			if bsrc != nil {
				dst = append(dst, bsrc[match[2*num]:match[2*num+1]]...)
			} else {
				dst = append(dst, src[match[2*num]:match[2*num+1]]...)
			}
		}
	}
	return append(dst, template...)
}

// extract parses a group reference, name or {name}, from the start of str.
// num is the group number when the name is all digits, otherwise -1.
func extract(str string) (name string, num int, rest string, ok bool) {
	if str == "" {
		return "", 0, "", false
	}
	brace := false
	if str[0] == '{' {
		brace = true
		str = str[1:]
	}
	i := 0
	for i < len(str) {
		c, size := utf8.DecodeRuneInString(str[i:])
		if !isNameRune(c) {
			break
		}
		i += size
	}
	if i == 0 {
		return "", 0, "", false
	}
	name = str[:i]
	if brace {
		if i >= len(str) || str[i] != '}' {
			return "", 0, "", false
		}
		i++
	}

	num = -1
	if n, err := strconv.Atoi(name); err == nil {
		num = n
	}
	return name, num, str[i:], true
}

func isNameRune(c rune) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
