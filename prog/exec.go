package prog

import (
	"bytes"
	"unicode/utf8"

	"github.com/coregx/regx/ranges"
	"github.com/coregx/regx/syntax"
)

// Limits bounds the work of one match attempt. Zero fields are unlimited.
type Limits struct {
	// MaxSteps is the number of ops the matcher may execute.
	MaxSteps int

	// MaxBacktrackDepth is the number of frames the backtracking stack may
	// hold.
	MaxBacktrackDepth int
}

type frameKind uint8

const (
	// frameChoice resumes at op with pos.
	frameChoice frameKind = iota
	// frameAlt resumes at alternative a of union op.
	frameAlt
	// frameIterate resumes a lazy closure (head op) with one more iteration.
	frameIterate
	// frameSlot restores slots[a] = b.
	frameSlot
	// frameCounter restores counts[a] = b and starts[a] = c.
	frameCounter
	// frameBarrier delimits a look or independent body started at pos.
	// a is the previous barrier index, b the current lookbehind width.
	frameBarrier
)

type frame struct {
	kind frameKind
	op   OpID
	pos  int
	a    int
	b    int
	c    int
}

// State is the scratch space of one match attempt: the backtracking stack,
// capture slots and closure counters. A State may be reused across attempts
// and programs but not concurrently.
type State struct {
	stack   []frame
	slots   []int
	counts  []int
	starts  []int
	barrier int
}

// NewState returns a State sized for p.
func (p *Prog) NewState() *State {
	st := &State{}
	st.reset(p)
	return st
}

// PooledStackCap is the largest backtracking stack, in frames, that a State
// may hold and still be returned to a pool.
const PooledStackCap = 1 << 16

// StackCap returns the capacity of the backtracking stack, for pool sizing.
func (st *State) StackCap() int {
	return cap(st.stack)
}

func (st *State) reset(p *Prog) {
	st.stack = st.stack[:0]
	// Slots: start/end per group, then the pending start per group.
	n := 3 * (p.groups + 1)
	if cap(st.slots) < n {
		st.slots = make([]int, n)
	}
	st.slots = st.slots[:n]
	for i := range st.slots {
		st.slots[i] = -1
	}
	if cap(st.counts) < p.closures {
		st.counts = make([]int, p.closures)
		st.starts = make([]int, p.closures)
	}
	st.counts = st.counts[:p.closures]
	st.starts = st.starts[:p.closures]
	for i := range st.counts {
		st.counts[i] = 0
		st.starts[i] = -1
	}
	st.barrier = -1
}

func (st *State) push(f frame) {
	st.stack = append(st.stack, f)
}

func (st *State) setSlot(i, v int) {
	st.push(frame{kind: frameSlot, a: i, b: st.slots[i]})
	st.slots[i] = v
}

func (st *State) saveCounter(k int) {
	st.push(frame{kind: frameCounter, a: k, b: st.counts[k], c: st.starts[k]})
}

func (st *State) pushBarrier(op OpID, pos, width int) {
	st.push(frame{kind: frameBarrier, op: op, pos: pos, a: st.barrier, b: width})
	st.barrier = len(st.stack) - 1
}

// cut removes the barrier at index b and every choice point above it,
// keeping undo records so that backtracking past the construct still
// restores captures and counters.
func (st *State) cut(b int) {
	prev := st.stack[b].a
	w := b
	for i := b + 1; i < len(st.stack); i++ {
		if k := st.stack[i].kind; k == frameSlot || k == frameCounter {
			st.stack[w] = st.stack[i]
			w++
		}
	}
	st.stack = st.stack[:w]
	st.barrier = prev
}

// MatchAt attempts a match of p anchored at start. On success m holds the
// group boundaries; otherwise m is reset. A tripped limit is reported as
// ErrStepLimitExceeded or ErrBacktrackLimitExceeded, distinct from a plain
// (false, nil) no-match.
func (p *Prog) MatchAt(input []byte, start int, m *Match, lim Limits) (bool, error) {
	st := p.pool.Get().(*State)
	ok, err := p.MatchWith(st, input, start, m, lim)
	if st.StackCap() <= PooledStackCap {
		p.pool.Put(st)
	}
	return ok, err
}

// MatchWith is like MatchAt but uses the caller's scratch state.
func (p *Prog) MatchWith(st *State, input []byte, start int, m *Match, lim Limits) (bool, error) {
	m.Reset()
	if start < 0 || start > len(input) {
		return false, nil
	}
	st.reset(p)
	ok, err := p.run(st, input, start, lim)
	if ok {
		m.fill(st.slots[:2*(p.groups+1)])
	}
	return ok, err
}

func (p *Prog) run(st *State, input []byte, start int, lim Limits) (bool, error) {
	pc, pos := p.start, start
	steps := 0
	for {
		steps++
		if lim.MaxSteps > 0 && steps > lim.MaxSteps {
			return false, ErrStepLimitExceeded
		}
		if lim.MaxBacktrackDepth > 0 && len(st.stack) > lim.MaxBacktrackDepth {
			return false, ErrBacktrackLimitExceeded
		}

		fail := pc == InvalidOp
		if !fail {
			op := &p.ops[pc]
			switch op.kind {
			case OpMatch:
				st.slots[0], st.slots[1] = start, pos
				return true, nil

			case OpFail:
				fail = true

			case OpChar:
				c, n := decode(input, pos)
				if n == 0 || c != op.r {
					fail = true
					break
				}
				pos += n
				pc = op.next

			case OpCharFold:
				c, n := decode(input, pos)
				if n == 0 || !runeIn(c, op.runes) {
					fail = true
					break
				}
				pos += n
				pc = op.next

			case OpString:
				n, ok := matchString(op, input, pos)
				if !ok {
					fail = true
					break
				}
				pos += n
				pc = op.next

			case OpRange:
				c, n := decode(input, pos)
				if n == 0 || !op.set.Contains(c) {
					fail = true
					break
				}
				pos += n
				pc = op.next

			case OpAny:
				c, n := decode(input, pos)
				if n == 0 || (op.set != nil && !op.set.Contains(c)) {
					fail = true
					break
				}
				pos += n
				pc = op.next

			case OpAnchor:
				if !anchorHolds(op, input, pos) {
					fail = true
					break
				}
				pc = op.next

			case OpUnion:
				if len(op.alts) > 1 {
					st.push(frame{kind: frameAlt, op: pc, pos: pos, a: 1})
				}
				pc = op.alts[0]

			case OpClosureEnter:
				st.saveCounter(op.arg)
				st.counts[op.arg] = 0
				st.starts[op.arg] = -1
				pc = op.next

			case OpClosure:
				k := op.arg
				n := st.counts[k]
				switch {
				case n < op.min:
					st.saveCounter(k)
					st.starts[k] = pos
					pc = op.sub
				case op.max >= 0 && n >= op.max:
					pc = op.next
				case op.greedy:
					st.push(frame{kind: frameChoice, op: op.next, pos: pos})
					st.saveCounter(k)
					st.starts[k] = pos
					pc = op.sub
				default:
					st.push(frame{kind: frameIterate, op: pc, pos: pos})
					pc = op.next
				}

			case OpClosureStep:
				k := op.arg
				head := &p.ops[op.next]
				st.saveCounter(k)
				st.counts[k]++
				// An empty iteration past the minimum leaves the loop.
				if pos == st.starts[k] && st.counts[k] > head.min {
					pc = head.next
				} else {
					pc = op.next
				}

			case OpCapture:
				g := op.arg
				pend := 2*(p.groups+1) + g
				if !op.end {
					st.setSlot(pend, pos)
				} else {
					st.setSlot(2*g, st.slots[pend])
					st.setSlot(2*g+1, pos)
				}
				pc = op.next

			case OpBackref:
				n, ok := matchBackref(op, st, input, pos)
				if !ok {
					fail = true
					break
				}
				pos += n
				pc = op.next

			case OpLook:
				if !op.behind {
					st.pushBarrier(pc, pos, 0)
					pc = op.sub
					break
				}
				from, ok := stepBack(input, pos, op.min)
				if !ok {
					pc = op.onFail
					break
				}
				st.pushBarrier(pc, pos, op.min)
				pos = from
				pc = op.sub

			case OpLookEnd:
				b := st.barrier
				origin := st.stack[b].pos
				look := &p.ops[st.stack[b].op]
				if look.behind && pos != origin {
					fail = true
					break
				}
				st.cut(b)
				pos = origin
				pc = look.onMatch

			case OpIndependent:
				st.pushBarrier(pc, pos, 0)
				pc = op.sub

			case OpIndependentEnd:
				st.cut(st.barrier)
				pc = op.next

			case OpCondition:
				if st.slots[2*op.arg+1] >= 0 {
					pc = op.alts[0]
				} else {
					pc = op.alts[1]
				}

			default:
				fail = true
			}
		}

		if fail {
			var ok bool
			pc, pos, ok = p.backtrack(st, input)
			if !ok {
				return false, nil
			}
		}
	}
}

// backtrack pops frames until a choice point yields a new (pc, pos).
func (p *Prog) backtrack(st *State, input []byte) (OpID, int, bool) {
	for len(st.stack) > 0 {
		top := len(st.stack) - 1
		f := st.stack[top]
		st.stack = st.stack[:top]

		switch f.kind {
		case frameSlot:
			st.slots[f.a] = f.b

		case frameCounter:
			st.counts[f.a] = f.b
			st.starts[f.a] = f.c

		case frameChoice:
			return f.op, f.pos, true

		case frameAlt:
			alts := p.ops[f.op].alts
			if f.a+1 < len(alts) {
				st.push(frame{kind: frameAlt, op: f.op, pos: f.pos, a: f.a + 1})
			}
			return alts[f.a], f.pos, true

		case frameIterate:
			head := &p.ops[f.op]
			st.saveCounter(head.arg)
			st.starts[head.arg] = f.pos
			return head.sub, f.pos, true

		case frameBarrier:
			st.barrier = f.a
			op := &p.ops[f.op]
			if op.kind != OpLook {
				continue
			}
			if op.behind && f.b < op.max {
				w := f.b + 1
				if from, ok := stepBack(input, f.pos, w); ok {
					st.pushBarrier(f.op, f.pos, w)
					return op.sub, from, true
				}
			}
			if op.onFail != InvalidOp {
				return op.onFail, f.pos, true
			}
		}
	}
	return InvalidOp, 0, false
}

func decode(input []byte, pos int) (rune, int) {
	if pos >= len(input) {
		return 0, 0
	}
	if c := input[pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRune(input[pos:])
}

func runeIn(c rune, rs []rune) bool {
	for _, r := range rs {
		if r == c {
			return true
		}
	}
	return false
}

// matchString matches op's runes at pos. A literal holding U+FFFD is
// compared rune by rune, since U+FFFD also stands for an invalid byte.
func matchString(op *Op, input []byte, pos int) (int, bool) {
	if op.lit != nil {
		if bytes.HasPrefix(input[pos:], op.lit) {
			return len(op.lit), true
		}
		return 0, false
	}
	start := pos
	for _, r := range op.runes {
		c, n := decode(input, pos)
		if n == 0 || !sameRune(c, r, op.fold) {
			return 0, false
		}
		pos += n
	}
	return pos - start, true
}

func matchBackref(op *Op, st *State, input []byte, pos int) (int, bool) {
	s, e := st.slots[2*op.arg], st.slots[2*op.arg+1]
	if s < 0 || e < 0 {
		return 0, false
	}
	captured := input[s:e]
	if !op.fold && bytes.IndexRune(captured, utf8.RuneError) < 0 {
		if bytes.HasPrefix(input[pos:], captured) {
			return len(captured), true
		}
		return 0, false
	}
	start := pos
	for len(captured) > 0 {
		r, rn := utf8.DecodeRune(captured)
		captured = captured[rn:]
		c, n := decode(input, pos)
		if n == 0 || !sameRune(c, r, op.fold) {
			return 0, false
		}
		pos += n
	}
	return pos - start, true
}

func sameRune(c, r rune, fold bool) bool {
	if fold {
		return ranges.EqualFold(c, r)
	}
	return c == r
}

// stepBack moves pos back by w code points.
func stepBack(input []byte, pos, w int) (int, bool) {
	for ; w > 0; w-- {
		if pos == 0 {
			return 0, false
		}
		_, n := utf8.DecodeLastRune(input[:pos])
		pos -= n
	}
	return pos, true
}

func isLineTerminator(c rune) bool {
	return c == '\n' || c == '\r' || c == 0x2028 || c == 0x2029
}

// atFinalTerminator reports whether only a single line terminator (or
// nothing) remains after pos.
func atFinalTerminator(input []byte, pos int) bool {
	rest := input[pos:]
	if len(rest) == 0 || string(rest) == "\r\n" {
		return true
	}
	c, n := utf8.DecodeRune(rest)
	return n == len(rest) && isLineTerminator(c)
}

func anchorHolds(op *Op, input []byte, pos int) bool {
	switch op.anchor {
	case syntax.AnchorTextStart:
		return pos == 0
	case syntax.AnchorTextEnd:
		return pos == len(input)
	case syntax.AnchorTextEndNewline:
		return atFinalTerminator(input, pos)
	case syntax.AnchorLineStart:
		if pos == 0 {
			return true
		}
		if op.flags&syntax.Multiline == 0 {
			return false
		}
		prev, _ := utf8.DecodeLastRune(input[:pos])
		if !isLineTerminator(prev) {
			return false
		}
		return !(prev == '\r' && pos < len(input) && input[pos] == '\n')
	case syntax.AnchorLineEnd:
		if op.flags&syntax.Multiline == 0 {
			return atFinalTerminator(input, pos)
		}
		if pos == len(input) {
			return true
		}
		c, _ := decode(input, pos)
		if !isLineTerminator(c) {
			return false
		}
		return !(c == '\n' && pos > 0 && input[pos-1] == '\r')
	}

	unicode := op.flags&syntax.UnicodeWordBoundary != 0
	before, after := false, false
	if pos > 0 {
		c, _ := utf8.DecodeLastRune(input[:pos])
		before = ranges.IsWordChar(c, unicode)
	}
	if c, n := decode(input, pos); n > 0 {
		after = ranges.IsWordChar(c, unicode)
	}
	switch op.anchor {
	case syntax.AnchorWordBoundary:
		return before != after
	case syntax.AnchorNonWordBoundary:
		return before == after
	case syntax.AnchorWordStart:
		return !before && after
	case syntax.AnchorWordEnd:
		return before && !after
	}
	return false
}
