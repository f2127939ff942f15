package meta

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/coregx/regx/literal"
	"github.com/coregx/regx/prefilter"
	"github.com/coregx/regx/prog"
	"github.com/coregx/regx/syntax"
)

// Engine is a compiled pattern together with its search accelerators.
//
// The Engine:
//  1. Parses and lowers the pattern into an op graph
//  2. Extracts head literals and the required literal
//  3. Builds a prefilter and a Boyer-Moore pattern from them
//  4. Selects a strategy and drives the anchored matcher over the subject
//
// Thread safety: an Engine is immutable after compilation apart from its
// statistics counters, which are atomic. Per-search state comes from a
// sync.Pool, so any number of goroutines may search the same Engine.
//
// Example:
//
//	engine, err := meta.Compile(`(\w+)@example\.com`)
//	if err != nil {
//	    return err
//	}
//	m := prog.NewMatch()
//	ok, err := engine.SearchAt([]byte("mail bob@example.com"), 0, m)
type Engine struct {
	// stats MUST be first for 8-byte alignment of the atomics on 32-bit
	// platforms.
	stats stats

	prog  *prog.Prog
	tree  *syntax.Tree
	flags syntax.Flags

	prefixes  *literal.Seq
	required  *literal.Required
	prefilter prefilter.Prefilter
	bm        *prefilter.BMPattern

	strategy Strategy
	config   Config
	limits   prog.Limits
	log      *slog.Logger

	// full is the program for tree followed by \z, built on first use.
	full func() (*prog.Prog, error)

	statePool *searchStatePool
}

type stats struct {
	searches           atomic.Uint64
	attempts           atomic.Uint64
	prefilterHits      atomic.Uint64
	prefilterMisses    atomic.Uint64
	prefilterAbandoned atomic.Uint64
	bmRejects          atomic.Uint64
	limitErrors        atomic.Uint64
}

// Stats is a snapshot of an Engine's execution counters.
type Stats struct {
	// Searches counts calls to MatchAt, SearchAt and FullMatch.
	Searches uint64

	// Attempts counts anchored matcher runs.
	Attempts uint64

	// PrefilterHits counts prefilter candidates that matched.
	PrefilterHits uint64

	// PrefilterMisses counts prefilter candidates that did not match.
	PrefilterMisses uint64

	// PrefilterAbandoned counts searches whose prefilter was retired.
	PrefilterAbandoned uint64

	// BoyerMooreRejects counts searches ended because the required literal
	// did not occur in the rest of the subject.
	BoyerMooreRejects uint64

	// LimitErrors counts searches that tripped a step or backtrack limit.
	LimitErrors uint64
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Prog returns the compiled op graph.
func (e *Engine) Prog() *prog.Prog {
	return e.prog
}

// Tree returns the parsed token tree.
func (e *Engine) Tree() *syntax.Tree {
	return e.tree
}

// Flags returns the flags the pattern was compiled with.
func (e *Engine) Flags() syntax.Flags {
	return e.flags
}

// Pattern returns the source pattern.
func (e *Engine) Pattern() string {
	return e.tree.Pattern
}

// Prefixes returns the head literals, or an empty sequence.
func (e *Engine) Prefixes() *literal.Seq {
	return e.prefixes
}

// Required returns the required literal, or nil.
func (e *Engine) Required() *literal.Required {
	return e.required
}

// Prefilter returns the head-literal prefilter, or nil.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// BoyerMoore returns the required-literal pre-filter, or nil.
func (e *Engine) BoyerMoore() *prefilter.BMPattern {
	return e.bm
}

// NumCaptures returns the number of groups including group 0.
func (e *Engine) NumCaptures() int {
	return e.prog.GroupCount()
}

// SubexpNames returns the name of each group. Index 0 is always "".
func (e *Engine) SubexpNames() []string {
	return e.tree.Names
}

// Stats returns a snapshot of the execution counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:           e.stats.searches.Load(),
		Attempts:           e.stats.attempts.Load(),
		PrefilterHits:      e.stats.prefilterHits.Load(),
		PrefilterMisses:    e.stats.prefilterMisses.Load(),
		PrefilterAbandoned: e.stats.prefilterAbandoned.Load(),
		BoyerMooreRejects:  e.stats.bmRejects.Load(),
		LimitErrors:        e.stats.limitErrors.Load(),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	e.stats.searches.Store(0)
	e.stats.attempts.Store(0)
	e.stats.prefilterHits.Store(0)
	e.stats.prefilterMisses.Store(0)
	e.stats.prefilterAbandoned.Store(0)
	e.stats.bmRejects.Store(0)
	e.stats.limitErrors.Store(0)
}

func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}

// fullProg returns the end-anchored program, compiling it once.
func (e *Engine) fullProg() (*prog.Prog, error) {
	return e.full()
}

// newFullProg defers compiling the end-anchored tree, built by the caller,
// until the first FullMatch.
func newFullProg(anchored *syntax.Tree) func() (*prog.Prog, error) {
	return sync.OnceValues(func() (*prog.Prog, error) {
		return prog.Compile(anchored)
	})
}
