package syntax

// maxStaticWidth caps width arithmetic; larger maxima are reported unbounded
// and larger minima are clamped.
const maxStaticWidth = 1 << 20

// Width returns the minimum and maximum number of code points t can match.
// hi is -1 when it cannot be bounded statically (unbounded closures and
// backreferences).
func (t *Token) Width() (lo, hi int) {
	switch t.Kind {
	case KindEmpty, KindAnchor, KindLook:
		return 0, 0
	case KindChar, KindRange, KindDot:
		return 1, 1
	case KindString:
		return len(t.Runes), len(t.Runes)
	case KindBackref:
		return 0, -1
	case KindParen, KindModifier, KindIndependent:
		return t.Sub[0].Width()
	case KindConcat:
		for _, sub := range t.Sub {
			sl, sh := sub.Width()
			lo = min(lo+sl, maxStaticWidth)
			hi = addMax(hi, sh)
		}
		return lo, hi
	case KindUnion, KindCondition:
		for i, sub := range t.Sub {
			sl, sh := sub.Width()
			if i == 0 {
				lo, hi = sl, sh
				continue
			}
			lo = min(lo, sl)
			if hi >= 0 && (sh < 0 || sh > hi) {
				hi = sh
			}
		}
		return lo, hi
	case KindClosure:
		sl, sh := t.Sub[0].Width()
		lo = min(sl*min(t.Min, maxStaticWidth), maxStaticWidth)
		switch {
		case sh == 0 || t.Max == 0:
			hi = 0
		case sh < 0 || t.Max < 0 || sh > maxStaticWidth/t.Max:
			hi = -1
		default:
			hi = sh * t.Max
		}
		return lo, hi
	}
	return 0, -1
}

func addMax(a, b int) int {
	if a < 0 || b < 0 || a+b > maxStaticWidth {
		return -1
	}
	return a + b
}
