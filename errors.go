package regx

import (
	"github.com/coregx/regx/meta"
	"github.com/coregx/regx/prog"
	"github.com/coregx/regx/syntax"
)

// Errors reported by compilation, matching and Match access. Compare with
// errors.Is.
var (
	// ErrPatternSyntax matches every malformed-pattern error.
	ErrPatternSyntax = syntax.ErrPatternSyntax

	// ErrUnknownRangeName matches a \p{...} name that is not known.
	ErrUnknownRangeName = syntax.ErrUnknownRangeName

	// ErrUnboundedLookbehind matches a lookbehind with no maximum width.
	ErrUnboundedLookbehind = prog.ErrUnboundedLookbehind

	// ErrStepLimitExceeded is returned when a match attempt runs more ops
	// than Config.MaxSteps.
	ErrStepLimitExceeded = prog.ErrStepLimitExceeded

	// ErrBacktrackLimitExceeded is returned when the backtracking stack
	// outgrows Config.MaxBacktrackDepth.
	ErrBacktrackLimitExceeded = prog.ErrBacktrackLimitExceeded

	// ErrResultNotSet is returned by Match accessors before a successful
	// match.
	ErrResultNotSet = prog.ErrResultNotSet

	// ErrIndexOutOfRange is returned by Match accessors for a group outside
	// [0, GroupCount()).
	ErrIndexOutOfRange = prog.ErrIndexOutOfRange
)

type (
	// CompileError wraps an error from parsing or lowering a pattern.
	CompileError = meta.CompileError

	// ConfigError reports an invalid configuration field.
	ConfigError = meta.ConfigError

	// SyntaxError describes a malformed pattern and where it went wrong.
	SyntaxError = syntax.Error

	// LookbehindError reports a lookbehind without a width bound.
	LookbehindError = prog.LookbehindError
)
