// Package meta compiles a pattern into an Engine and drives the anchored
// backtracking matcher across a subject.
//
// The meta layer coordinates three parts:
//   - prog: the op graph and its explicit-stack matcher, which only answers
//     "does a match start here";
//   - prefilter: head-literal scanners that skip positions no match can
//     start at, retired by a Tracker when they stop paying off;
//   - prefilter.BMPattern: a Boyer-Moore scan for the required literal that
//     ends a search once the literal no longer occurs ahead.
//
// Strategy selection is based on the literal analysis of the token tree
// (package literal) and on start anchoring. The filters change how many
// positions are tried, never which match is reported: results are always
// the leftmost-first match of the full matcher.
package meta

import "github.com/coregx/regx/prog"

// IsMatch reports whether input contains a match. A tripped limit counts as
// no match; callers that need to tell the two apart use SearchAt.
func (e *Engine) IsMatch(input []byte) bool {
	ok, _ := e.SearchAt(input, 0, prog.NewMatch())
	return ok
}
