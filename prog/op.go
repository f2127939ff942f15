// Package prog lowers parsed patterns into an executable op graph and runs
// them with a backtracking matcher.
//
// Ops live in an arena owned by a Prog and link to each other through OpID
// handles. Every op has a successor (next); branching ops carry extra
// targets. The matcher walks the graph with an explicit stack of choice
// points and undo records, so pattern nesting never grows the Go call stack.
package prog

import (
	"fmt"

	"github.com/coregx/regx/ranges"
	"github.com/coregx/regx/syntax"
)

// OpID identifies an op in a Prog.
type OpID uint32

// InvalidOp marks a missing target. Jumping to it fails the current path.
const InvalidOp OpID = 0xFFFFFFFF

// OpKind identifies the type of an op and determines which fields are valid.
type OpKind uint8

const (
	// OpMatch records group 0 and ends a successful match
	OpMatch OpKind = iota

	// OpFail always fails
	OpFail

	// OpChar consumes one code point equal to rune
	OpChar

	// OpCharFold consumes one code point from the case-fold orbit in runes
	OpCharFold

	// OpString consumes a literal sequence, optionally case-folded
	OpString

	// OpRange consumes one code point in set
	OpRange

	// OpAny consumes one code point, excluding line terminators when set is
	// non-nil and does not contain them
	OpAny

	// OpAnchor asserts a zero-width condition
	OpAnchor

	// OpUnion tries alts in order
	OpUnion

	// OpClosureEnter resets the counter of closure arg and continues to its head
	OpClosureEnter

	// OpClosure is a loop head: iterate into sub or leave through next
	OpClosure

	// OpClosureStep ends one iteration of closure arg and returns to its head
	OpClosureStep

	// OpCapture records the start (or end) of group arg
	OpCapture

	// OpBackref consumes the text last captured by group arg
	OpBackref

	// OpLook runs sub as a zero-width assertion; see Op.onMatch and Op.onFail
	OpLook

	// OpLookEnd terminates the body of the look op arg
	OpLookEnd

	// OpIndependent runs sub atomically
	OpIndependent

	// OpIndependentEnd terminates an independent body
	OpIndependentEnd

	// OpCondition continues to alts[0] if group arg participated, else alts[1]
	OpCondition
)

// String returns a human-readable representation of the OpKind
func (k OpKind) String() string {
	switch k {
	case OpMatch:
		return "Match"
	case OpFail:
		return "Fail"
	case OpChar:
		return "Char"
	case OpCharFold:
		return "CharFold"
	case OpString:
		return "String"
	case OpRange:
		return "Range"
	case OpAny:
		return "Any"
	case OpAnchor:
		return "Anchor"
	case OpUnion:
		return "Union"
	case OpClosureEnter:
		return "ClosureEnter"
	case OpClosure:
		return "Closure"
	case OpClosureStep:
		return "ClosureStep"
	case OpCapture:
		return "Capture"
	case OpBackref:
		return "Backref"
	case OpLook:
		return "Look"
	case OpLookEnd:
		return "LookEnd"
	case OpIndependent:
		return "Independent"
	case OpIndependentEnd:
		return "IndependentEnd"
	case OpCondition:
		return "Condition"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Op is a single node of the op graph. The op's kind determines which fields
// are valid.
type Op struct {
	kind OpKind
	next OpID

	r     rune        // Char
	runes []rune      // CharFold orbit, String
	lit   []byte      // String (exact, no U+FFFD): UTF-8 encoding of runes
	set   *ranges.Set // Range, Any
	fold  bool        // String, Backref

	alts []OpID // Union alternatives, Condition [yes, no]
	sub  OpID   // Closure body, Look body, Independent body

	arg      int  // Closure index, Capture/Backref/Condition group, LookEnd owner
	min, max int  // Closure bounds, Look widths (code points)
	greedy   bool // Closure
	end      bool // Capture: end marker

	anchor syntax.AnchorKind // Anchor
	flags  syntax.Flags      // Anchor: Multiline, UnicodeWordBoundary

	behind  bool // Look
	onMatch OpID // Look: target when the body matches
	onFail  OpID // Look: target when the body cannot match
}

// Kind returns the op kind
func (o *Op) Kind() OpKind { return o.kind }

// Next returns the successor op
func (o *Op) Next() OpID { return o.next }

// Alts returns the alternatives of a Union or Condition op
func (o *Op) Alts() []OpID { return o.alts }

// Sub returns the body entry of Closure, Look and Independent ops
func (o *Op) Sub() OpID { return o.sub }

// Arg returns the op's closure index or group number
func (o *Op) Arg() int { return o.arg }

// targets appends every op o may continue to.
func (o *Op) targets(dst []OpID) []OpID {
	switch o.kind {
	case OpMatch, OpFail:
		return dst
	case OpUnion, OpCondition:
		return append(dst, o.alts...)
	case OpClosure:
		return append(dst, o.sub, o.next)
	case OpLook:
		dst = append(dst, o.sub)
		if o.onMatch != InvalidOp {
			dst = append(dst, o.onMatch)
		}
		if o.onFail != InvalidOp {
			dst = append(dst, o.onFail)
		}
		return dst
	case OpIndependent:
		return append(dst, o.sub)
	case OpLookEnd:
		return dst
	}
	if o.next != InvalidOp {
		dst = append(dst, o.next)
	}
	return dst
}

// String renders a one-line description of the op.
func (o *Op) String() string {
	switch o.kind {
	case OpChar:
		return fmt.Sprintf("Char %q -> %d", o.r, o.next)
	case OpCharFold:
		return fmt.Sprintf("CharFold %q -> %d", string(o.runes), o.next)
	case OpString:
		s := fmt.Sprintf("String %q", string(o.runes))
		if o.fold {
			s += " fold"
		}
		return fmt.Sprintf("%s -> %d", s, o.next)
	case OpRange:
		return fmt.Sprintf("Range %s -> %d", o.set, o.next)
	case OpAny:
		if o.set == nil {
			return fmt.Sprintf("Any -> %d", o.next)
		}
		return fmt.Sprintf("Any (no newline) -> %d", o.next)
	case OpAnchor:
		return fmt.Sprintf("Anchor %s -> %d", o.anchor, o.next)
	case OpUnion:
		return fmt.Sprintf("Union %v", o.alts)
	case OpClosureEnter:
		return fmt.Sprintf("ClosureEnter #%d -> %d", o.arg, o.next)
	case OpClosure:
		mode := "greedy"
		if !o.greedy {
			mode = "lazy"
		}
		return fmt.Sprintf("Closure #%d {%d,%d} %s body=%d exit=%d", o.arg, o.min, o.max, mode, o.sub, o.next)
	case OpClosureStep:
		return fmt.Sprintf("ClosureStep #%d -> %d", o.arg, o.next)
	case OpCapture:
		side := "start"
		if o.end {
			side = "end"
		}
		return fmt.Sprintf("Capture %d %s -> %d", o.arg, side, o.next)
	case OpBackref:
		return fmt.Sprintf("Backref %d -> %d", o.arg, o.next)
	case OpLook:
		dir := "ahead"
		if o.behind {
			dir = fmt.Sprintf("behind {%d,%d}", o.min, o.max)
		}
		return fmt.Sprintf("Look %s body=%d match=%s fail=%s", dir, o.sub, target(o.onMatch), target(o.onFail))
	case OpLookEnd:
		return fmt.Sprintf("LookEnd of %d", o.arg)
	case OpIndependent:
		return fmt.Sprintf("Independent body=%d", o.sub)
	case OpIndependentEnd:
		return fmt.Sprintf("IndependentEnd -> %d", o.next)
	case OpCondition:
		return fmt.Sprintf("Condition group %d yes=%d no=%d", o.arg, o.alts[0], o.alts[1])
	default:
		return o.kind.String()
	}
}

func target(id OpID) string {
	if id == InvalidOp {
		return "fail"
	}
	return fmt.Sprint(id)
}
