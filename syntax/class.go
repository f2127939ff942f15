package syntax

import (
	"unicode/utf8"

	"github.com/coregx/regx/ranges"
)

// parseClass parses a bracketed class starting at '[' through its closing
// ']'. Negation of the outer class is returned separately so the lowering
// stage can fold case before complementing. A subtraction "-[...]" applies
// after negation, as in [^a-z-[aeiou]].
func (p *parser) parseClass() (*ranges.Set, bool, error) {
	open := p.pos
	if p.depth >= maxDepth {
		return nil, false, p.errorAt(CodeTooDeep, open)
	}
	p.depth++
	defer func() { p.depth-- }()

	p.pos++
	negated := false
	if p.peek(0) == '^' {
		negated = true
		p.pos++
	}

	var (
		single []ranges.Range
		acc    = &ranges.Set{}
		first  = true
	)
	for {
		if !p.more() {
			return nil, false, p.errorAt(CodeMissingBracket, open)
		}
		c := p.src[p.pos]
		if c == ']' && (!first || p.xml()) {
			p.pos++
			break
		}
		if c == '-' && p.peek(1) == '[' && !first {
			p.pos++
			sub, subNeg, err := p.parseClass()
			if err != nil {
				return nil, false, err
			}
			if subNeg {
				sub = sub.Complement()
			}
			if p.peek(0) != ']' {
				return nil, false, p.errorAt(CodeMissingBracket, open)
			}
			p.pos++
			base := acc.Union(ranges.New(single...))
			if negated {
				base = base.Complement()
			}
			return base.Subtract(sub), false, nil
		}
		first = false

		lo, loSet, err := p.classAtom()
		if err != nil {
			return nil, false, err
		}
		if loSet != nil {
			acc = acc.Union(loSet)
			continue
		}
		if p.peek(0) == '-' && p.peek(1) != ']' && p.peek(1) != '[' && p.pos+1 < len(p.src) {
			dash := p.pos
			p.pos++
			hi, hiSet, err := p.classAtom()
			if err != nil {
				return nil, false, err
			}
			if hiSet != nil || lo > hi {
				return nil, false, p.errorAt(CodeInvalidRange, dash)
			}
			single = append(single, ranges.Range{Lo: lo, Hi: hi})
			continue
		}
		single = append(single, ranges.Range{Lo: lo, Hi: lo})
	}
	return acc.Union(ranges.New(single...)), negated, nil
}

// classAtom parses one class member: a character, or a set for class
// escapes such as \d and \p{L}.
func (p *parser) classAtom() (rune, *ranges.Set, error) {
	if p.src[p.pos] != '\\' {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		return r, nil, nil
	}
	start := p.pos
	p.pos++
	if !p.more() {
		return 0, nil, p.errorAt(CodeMissingBracket, start)
	}
	c, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if cl, negated, ok := escapeClass(c); ok {
		p.pos += size
		s := ranges.ClassSet(cl, p.flags.ClassMode())
		if negated {
			s = s.Complement()
		}
		return 0, s, nil
	}
	if c == 'p' || c == 'P' {
		name, negated, err := p.parsePropertyName(start)
		if err != nil {
			return 0, nil, err
		}
		tok, err := p.f.Range(name, negated)
		if err != nil {
			return 0, nil, p.wrapAt(CodeUnknownRangeName, start, err)
		}
		s := tok.Set
		if negated {
			s = s.Complement()
		}
		return 0, s, nil
	}
	r, err := p.charEscape(c, size, start, true)
	return r, nil, err
}
