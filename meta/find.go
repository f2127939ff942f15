package meta

import (
	"log/slog"
	"unicode/utf8"

	"github.com/coregx/regx/prog"
)

// MatchAt attempts a match anchored at start. On success m holds the group
// boundaries; otherwise m is reset. A tripped limit is returned as
// prog.ErrStepLimitExceeded or prog.ErrBacktrackLimitExceeded.
func (e *Engine) MatchAt(input []byte, start int, m *prog.Match) (bool, error) {
	e.stats.searches.Add(1)
	m.Reset()
	if start < 0 || start > len(input) {
		return false, nil
	}
	if e.bm != nil && e.bm.Matches(input, start, len(input)) < 0 {
		e.stats.bmRejects.Add(1)
		return false, nil
	}

	state := e.getSearchState()
	defer e.putSearchState(state)
	return e.attempt(e.prog, state.prog, input, start, m)
}

// FullMatch reports whether the whole of input matches, i.e. a match
// anchored at 0 ends at len(input). Unlike checking End(0) after MatchAt,
// backtracking continues into shorter alternatives until one reaches the
// end: `a|ab` fully matches "ab".
func (e *Engine) FullMatch(input []byte, m *prog.Match) (bool, error) {
	e.stats.searches.Add(1)
	m.Reset()
	full, err := e.fullProg()
	if err != nil {
		return false, &CompileError{Pattern: e.Pattern(), Err: err}
	}
	if e.bm != nil && e.bm.Matches(input, 0, len(input)) < 0 {
		e.stats.bmRejects.Add(1)
		return false, nil
	}

	state := e.getSearchState()
	defer e.putSearchState(state)
	return e.attempt(full, state.prog, input, 0, m)
}

// SearchAt finds the leftmost match starting at or after start.
//
// Candidate positions advance one rune at a time. The head-literal
// prefilter, when present, skips to the next position a head literal occurs
// at; the Boyer-Moore pattern ends the search once the required literal no
// longer occurs at or after the candidate.
func (e *Engine) SearchAt(input []byte, start int, m *prog.Match) (bool, error) {
	e.stats.searches.Add(1)
	m.Reset()
	if start < 0 || start > len(input) {
		return false, nil
	}

	// next is the offset of the next occurrence of the required literal at
	// or after pos. Every match starting at pos contains one.
	next := -1
	if e.bm != nil {
		if next = e.bm.Matches(input, start, len(input)); next < 0 {
			e.stats.bmRejects.Add(1)
			return false, nil
		}
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	if e.strategy == UseAnchored {
		return e.attempt(e.prog, state.prog, input, start, m)
	}

	tracker := state.tracker
	for pos := start; pos <= len(input); {
		if tracker != nil && tracker.IsActive() {
			c := tracker.Find(input, pos)
			if !tracker.IsActive() {
				e.stats.prefilterAbandoned.Add(1)
				e.log.Debug("prefilter retired", slog.String("pattern", e.Pattern()), slog.Int("pos", pos))
			}
			switch {
			case c >= 0:
				pos = c
			case tracker.IsActive():
				return false, nil
			}
		}

		if e.bm != nil && pos > next {
			if next = e.bm.Matches(input, pos, len(input)); next < 0 {
				e.stats.bmRejects.Add(1)
				return false, nil
			}
		}

		ok, err := e.attempt(e.prog, state.prog, input, pos, m)
		if err != nil || ok {
			if ok && tracker != nil && tracker.IsActive() {
				tracker.ConfirmMatch()
				e.stats.prefilterHits.Add(1)
			}
			return ok, err
		}
		if tracker != nil && tracker.IsActive() {
			e.stats.prefilterMisses.Add(1)
		}

		if pos == len(input) {
			break
		}
		_, w := utf8.DecodeRune(input[pos:])
		pos += w
	}
	return false, nil
}

func (e *Engine) attempt(p *prog.Prog, st *prog.State, input []byte, pos int, m *prog.Match) (bool, error) {
	e.stats.attempts.Add(1)
	ok, err := p.MatchWith(st, input, pos, m, e.limits)
	if err != nil {
		e.stats.limitErrors.Add(1)
		e.log.Warn("match limit exceeded",
			slog.String("pattern", e.Pattern()),
			slog.Int("pos", pos),
			slog.Int("input_len", len(input)),
			slog.Any("error", err),
		)
	}
	return ok, err
}
