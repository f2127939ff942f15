package prog

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/coregx/regx/internal/sparse"
)

// Prog is a compiled op graph. It is immutable and safe for concurrent use;
// per-attempt scratch space comes from an internal pool or from a State the
// caller owns.
type Prog struct {
	ops      []Op
	start    OpID
	groups   int
	closures int
	pattern  string

	pool sync.Pool
}

// GroupCount returns 1 + the number of capturing groups.
func (p *Prog) GroupCount() int {
	return p.groups + 1
}

// Len returns the number of ops in the program
func (p *Prog) Len() int {
	return len(p.ops)
}

// Start returns the entry op
func (p *Prog) Start() OpID {
	return p.start
}

// Op returns the op with the given ID.
func (p *Prog) Op(id OpID) *Op {
	return &p.ops[id]
}

// Pattern returns the source pattern
func (p *Prog) Pattern() string {
	return p.pattern
}

// reachable returns the ops reachable from the entry.
func (p *Prog) reachable() *sparse.Set[OpID] {
	seen := sparse.New[OpID](len(p.ops))
	work := []OpID{p.start}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if id == InvalidOp || !seen.Insert(id) {
			continue
		}
		work = p.ops[id].targets(work)
	}
	return seen
}

// Reachable returns the number of ops reachable from the entry, which may
// be fewer than Len.
func (p *Prog) Reachable() int {
	return p.reachable().Len()
}

// String lists the ops reachable from the entry, one per line, in ID order.
func (p *Prog) String() string {
	var b strings.Builder
	for _, id := range slices.Sorted(slices.Values(p.reachable().Values())) {
		marker := ' '
		if id == p.start {
			marker = '>'
		}
		fmt.Fprintf(&b, "%c %4d: %s\n", marker, id, p.ops[id].String())
	}
	return b.String()
}
