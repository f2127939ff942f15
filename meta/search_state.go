package meta

import (
	"sync"

	"github.com/coregx/regx/prefilter"
	"github.com/coregx/regx/prog"
)

// SearchState holds per-search mutable state so that one compiled Engine can
// be searched from many goroutines. States come from a sync.Pool.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
//	// use state for search operations
//
// A SearchState is not safe for concurrent use.
type SearchState struct {
	// prog holds the backtracking stack, capture slots and closure counters.
	// It serves the end-anchored program too.
	prog *prog.State

	// tracker retires the head-literal prefilter when it stops paying off.
	// Nil when the engine has no prefilter.
	tracker *prefilter.Tracker
}

func newSearchState(p *prog.Prog, pf prefilter.Prefilter) *SearchState {
	return &SearchState{
		prog:    p.NewState(),
		tracker: prefilter.NewTracker(pf),
	}
}

// reset prepares the state for the next search.
func (s *SearchState) reset() {
	if s.tracker != nil {
		s.tracker.Reset()
	}
}

// searchStatePool manages a pool of SearchState instances for thread-safe reuse.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool(p *prog.Prog, pf prefilter.Prefilter) *searchStatePool {
	sp := &searchStatePool{}
	sp.pool = sync.Pool{
		New: func() any {
			return newSearchState(p, pf)
		},
	}
	return sp
}

func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

func (p *searchStatePool) put(state *SearchState) {
	if state == nil || state.prog.StackCap() > prog.PooledStackCap {
		return
	}
	state.reset()
	p.pool.Put(state)
}
