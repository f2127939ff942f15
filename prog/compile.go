package prog

import (
	"github.com/coregx/regx/ranges"
	"github.com/coregx/regx/syntax"
)

// Line terminators excluded by '.' unless DotAll is set.
var (
	perlDot = ranges.Of('\n', '\r', 0x2028, 0x2029).Complement()
	xmlDot  = ranges.Of('\n', '\r').Complement()
)

// Compile lowers a parsed pattern into a program. The transform is
// deterministic: compiling the same tree twice yields identical programs.
//
// Lookbehinds whose width has no static upper bound fail with a
// *LookbehindError.
func Compile(tree *syntax.Tree) (*Prog, error) {
	c := &compiler{b: NewBuilder(), pattern: tree.Pattern}
	match := c.b.AddMatch()
	start, err := c.compile(tree.Root, match, tree.Flags)
	if err != nil {
		return nil, err
	}
	return c.b.Build(start, tree.Groups, tree.Pattern), nil
}

type compiler struct {
	b       *Builder
	pattern string
}

// compile lowers t so that a successful match of t continues to next, and
// returns the entry op. Tokens are lowered back to front so every op's
// successor already exists when the op is created.
func (c *compiler) compile(t *syntax.Token, next OpID, flags syntax.Flags) (OpID, error) {
	fold := flags&syntax.IgnoreCase != 0
	switch t.Kind {
	case syntax.KindEmpty:
		return next, nil

	case syntax.KindChar:
		if fold {
			if orbit := ranges.FoldOrbit(t.Rune); len(orbit) > 1 {
				return c.b.AddCharFold(orbit, next), nil
			}
		}
		return c.b.AddChar(t.Rune, next), nil

	case syntax.KindString:
		return c.b.AddString(t.Runes, fold && hasFoldable(t.Runes), next), nil

	case syntax.KindRange:
		s := t.Set
		if fold {
			s = s.Fold()
		}
		if t.Negated {
			s = s.Complement()
		}
		return c.b.AddRange(s, next), nil

	case syntax.KindDot:
		switch {
		case flags&syntax.DotAll != 0:
			return c.b.AddAny(nil, next), nil
		case flags&syntax.XMLSchema != 0:
			return c.b.AddAny(xmlDot, next), nil
		default:
			return c.b.AddAny(perlDot, next), nil
		}

	case syntax.KindAnchor:
		return c.b.AddAnchor(t.Anchor, flags&(syntax.Multiline|syntax.UnicodeWordBoundary), next), nil

	case syntax.KindConcat:
		for i := len(t.Sub) - 1; i >= 0; i-- {
			var err error
			next, err = c.compile(t.Sub[i], next, flags)
			if err != nil {
				return InvalidOp, err
			}
		}
		return next, nil

	case syntax.KindUnion:
		alts := make([]OpID, len(t.Sub))
		for i, sub := range t.Sub {
			id, err := c.compile(sub, next, flags)
			if err != nil {
				return InvalidOp, err
			}
			alts[i] = id
		}
		return c.b.AddUnion(alts), nil

	case syntax.KindClosure:
		return c.compileClosure(t, next, flags)

	case syntax.KindParen:
		if t.Group == 0 {
			return c.compile(t.Sub[0], next, flags)
		}
		end := c.b.AddCapture(t.Group, true, next)
		body, err := c.compile(t.Sub[0], end, flags)
		if err != nil {
			return InvalidOp, err
		}
		return c.b.AddCapture(t.Group, false, body), nil

	case syntax.KindBackref:
		return c.b.AddBackref(t.Group, fold, next), nil

	case syntax.KindLook:
		onMatch, onFail := next, InvalidOp
		if t.Negate {
			onMatch, onFail = InvalidOp, next
		}
		return c.compileLook(t, onMatch, onFail, flags)

	case syntax.KindModifier:
		return c.compile(t.Sub[0], next, (flags|t.Add)&^t.Remove)

	case syntax.KindIndependent:
		ind, end := c.b.AddIndependent(next)
		body, err := c.compile(t.Sub[0], end, flags)
		if err != nil {
			return InvalidOp, err
		}
		c.b.SetBody(ind, body)
		return ind, nil

	case syntax.KindCondition:
		yes, err := c.compile(t.Sub[0], next, flags)
		if err != nil {
			return InvalidOp, err
		}
		no, err := c.compile(t.Sub[1], next, flags)
		if err != nil {
			return InvalidOp, err
		}
		if t.Cond == nil {
			return c.b.AddCondition(t.Group, yes, no), nil
		}
		onMatch, onFail := yes, no
		if t.Cond.Negate {
			onMatch, onFail = no, yes
		}
		return c.compileLook(t.Cond, onMatch, onFail, flags)
	}
	return c.b.AddFail(), nil
}

func (c *compiler) compileClosure(t *syntax.Token, next OpID, flags syntax.Flags) (OpID, error) {
	sub := t.Sub[0]
	switch {
	case t.Max == 0:
		return next, nil
	case t.Min == 1 && t.Max == 1:
		return c.compile(sub, next, flags)
	case t.Min == 0 && t.Max == 1:
		body, err := c.compile(sub, next, flags)
		if err != nil {
			return InvalidOp, err
		}
		if t.Greedy {
			return c.b.AddUnion([]OpID{body, next}), nil
		}
		return c.b.AddUnion([]OpID{next, body}), nil
	}
	enter, head, step := c.b.AddClosure(t.Min, t.Max, t.Greedy, next)
	body, err := c.compile(sub, step, flags)
	if err != nil {
		return InvalidOp, err
	}
	c.b.SetClosureBody(head, body)
	return enter, nil
}

func (c *compiler) compileLook(t *syntax.Token, onMatch, onFail OpID, flags syntax.Flags) (OpID, error) {
	lo, hi := 0, 0
	if t.Behind {
		lo, hi = t.Sub[0].Width()
		if hi < 0 {
			return InvalidOp, &LookbehindError{Pattern: c.pattern, MinWidth: lo}
		}
	}
	look, end := c.b.AddLook(t.Behind, lo, hi, onMatch, onFail)
	body, err := c.compile(t.Sub[0], end, flags)
	if err != nil {
		return InvalidOp, err
	}
	c.b.SetBody(look, body)
	return look, nil
}

// hasFoldable reports whether any rune of rs has case variants.
func hasFoldable(rs []rune) bool {
	for _, r := range rs {
		if len(ranges.FoldOrbit(r)) > 1 {
			return true
		}
	}
	return false
}
