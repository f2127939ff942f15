package prog

import (
	"errors"
	"fmt"
)

// Common program errors
var (
	// ErrStepLimitExceeded indicates the matcher executed more ops than
	// Limits.MaxSteps allows
	ErrStepLimitExceeded = errors.New("step limit exceeded")

	// ErrBacktrackLimitExceeded indicates the backtracking stack grew beyond
	// Limits.MaxBacktrackDepth frames
	ErrBacktrackLimitExceeded = errors.New("backtrack limit exceeded")

	// ErrResultNotSet indicates a Match was read before a successful match
	ErrResultNotSet = errors.New("match result not set")

	// ErrIndexOutOfRange indicates a group index outside [0, GroupCount())
	ErrIndexOutOfRange = errors.New("group index out of range")

	// ErrUnboundedLookbehind indicates a lookbehind whose width has no
	// static upper bound
	ErrUnboundedLookbehind = errors.New("unbounded lookbehind")
)

// LookbehindError reports a lookbehind that cannot be lowered because its
// maximum width is not statically bounded.
type LookbehindError struct {
	Pattern string
	MinWidth int
}

// Error implements the error interface
func (e *LookbehindError) Error() string {
	return fmt.Sprintf("regx: lookbehind in %q matches at least %d characters but has no upper bound", e.Pattern, e.MinWidth)
}

// Is reports whether target is ErrUnboundedLookbehind
func (e *LookbehindError) Is(target error) bool {
	return target == ErrUnboundedLookbehind
}
