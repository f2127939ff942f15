package prog

import (
	"slices"
	"unicode/utf8"

	"github.com/coregx/regx/internal/conv"
	"github.com/coregx/regx/ranges"
	"github.com/coregx/regx/syntax"
)

// Builder owns the op arena of one program while it is being lowered.
// A Builder is not safe for concurrent use.
type Builder struct {
	ops      []Op
	closures int
}

// NewBuilder creates a new builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new builder with the specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{ops: make([]Op, 0, capacity)}
}

// Len returns the number of ops added so far
func (b *Builder) Len() int {
	return len(b.ops)
}

func (b *Builder) add(op Op) OpID {
	id := OpID(conv.IntToUint32(len(b.ops)))
	b.ops = append(b.ops, op)
	return id
}

// op returns the op for id for in-place patching.
func (b *Builder) op(id OpID) *Op {
	return &b.ops[id]
}

// AddMatch adds a match op and returns its ID
func (b *Builder) AddMatch() OpID {
	return b.add(Op{kind: OpMatch, next: InvalidOp})
}

// AddFail adds an op that always fails and returns its ID
func (b *Builder) AddFail() OpID {
	return b.add(Op{kind: OpFail, next: InvalidOp})
}

// AddChar adds an op consuming exactly c
func (b *Builder) AddChar(c rune, next OpID) OpID {
	return b.add(Op{kind: OpChar, r: c, next: next})
}

// AddCharFold adds an op consuming any rune of orbit
func (b *Builder) AddCharFold(orbit []rune, next OpID) OpID {
	return b.add(Op{kind: OpCharFold, r: orbit[0], runes: orbit, next: next})
}

// AddString adds an op consuming the literal rs, case-folded when fold is set
func (b *Builder) AddString(rs []rune, fold bool, next OpID) OpID {
	op := Op{kind: OpString, runes: rs, fold: fold, next: next}
	if !fold && !slices.Contains(rs, utf8.RuneError) {
		op.lit = []byte(string(rs))
	}
	return b.add(op)
}

// AddRange adds an op consuming one rune of s
func (b *Builder) AddRange(s *ranges.Set, next OpID) OpID {
	return b.add(Op{kind: OpRange, set: s, next: next})
}

// AddAny adds an op consuming one rune of allowed, or any rune when allowed is nil
func (b *Builder) AddAny(allowed *ranges.Set, next OpID) OpID {
	return b.add(Op{kind: OpAny, set: allowed, next: next})
}

// AddAnchor adds a zero-width assertion evaluated under flags
func (b *Builder) AddAnchor(a syntax.AnchorKind, flags syntax.Flags, next OpID) OpID {
	return b.add(Op{kind: OpAnchor, anchor: a, flags: flags, next: next})
}

// AddUnion adds an op trying alts in order
func (b *Builder) AddUnion(alts []OpID) OpID {
	return b.add(Op{kind: OpUnion, alts: alts, next: InvalidOp})
}

// AddCapture adds a capture marker for group; end selects the closing marker
func (b *Builder) AddCapture(group int, end bool, next OpID) OpID {
	return b.add(Op{kind: OpCapture, arg: group, end: end, next: next})
}

// AddBackref adds a backreference to group
func (b *Builder) AddBackref(group int, fold bool, next OpID) OpID {
	return b.add(Op{kind: OpBackref, arg: group, fold: fold, next: next})
}

// AddCondition adds a group-participation test
func (b *Builder) AddCondition(group int, yes, no OpID) OpID {
	return b.add(Op{kind: OpCondition, arg: group, alts: []OpID{yes, no}, next: InvalidOp})
}

// AddClosure adds the three ops of a counted loop and returns the entry and
// the step op that the body must continue to. The body is attached later
// with SetClosureBody.
func (b *Builder) AddClosure(min, max int, greedy bool, next OpID) (enter, head, step OpID) {
	k := b.closures
	b.closures++
	head = b.add(Op{kind: OpClosure, arg: k, min: min, max: max, greedy: greedy, next: next, sub: InvalidOp})
	step = b.add(Op{kind: OpClosureStep, arg: k, next: head})
	enter = b.add(Op{kind: OpClosureEnter, arg: k, next: head})
	return enter, head, step
}

// SetClosureBody sets the loop body entry of the closure head.
func (b *Builder) SetClosureBody(head, body OpID) {
	b.op(head).sub = body
}

// AddLook adds a lookaround op and its end marker. Widths apply to
// lookbehind only. The body, built to continue to end, is attached with
// SetBody.
func (b *Builder) AddLook(behind bool, minWidth, maxWidth int, onMatch, onFail OpID) (look, end OpID) {
	look = b.add(Op{kind: OpLook, behind: behind, min: minWidth, max: maxWidth,
		onMatch: onMatch, onFail: onFail, sub: InvalidOp, next: InvalidOp})
	end = b.add(Op{kind: OpLookEnd, arg: int(look), next: InvalidOp})
	return look, end
}

// AddIndependent adds an atomic group op and its end marker.
func (b *Builder) AddIndependent(next OpID) (ind, end OpID) {
	ind = b.add(Op{kind: OpIndependent, sub: InvalidOp, next: next})
	end = b.add(Op{kind: OpIndependentEnd, next: next})
	return ind, end
}

// SetBody sets the body entry of a Look or Independent op.
func (b *Builder) SetBody(id, body OpID) {
	b.op(id).sub = body
}

// Build finishes the program with entry start.
func (b *Builder) Build(start OpID, groups int, pattern string) *Prog {
	p := &Prog{
		ops:      b.ops,
		start:    start,
		groups:   groups,
		closures: b.closures,
		pattern:  pattern,
	}
	p.pool.New = func() any { return p.NewState() }
	return p
}
