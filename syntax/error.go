package syntax

import (
	"errors"
	"fmt"
)

// Common parse errors
var (
	// ErrPatternSyntax is matched by every *Error returned from Parse
	ErrPatternSyntax = errors.New("invalid pattern syntax")

	// ErrUnknownRangeName indicates a \p{...} name that is not a known
	// general category, block or pseudo-range
	ErrUnknownRangeName = errors.New("unknown range name")
)

// Code classifies a syntax error.
type Code uint8

const (
	CodeUnbalancedParen Code = iota + 1
	CodeUnterminatedGroup
	CodeMissingBracket
	CodeInvalidRange
	CodeUnknownRangeName
	CodeInvalidBackref
	CodeInvalidRepeat
	CodeMissingOperand
	CodeInvalidEscape
	CodeInvalidFlag
	CodeInvalidGroupName
	CodeInvalidCondition
	CodeUnsupportedInXML
	CodeTooDeep
)

// String returns the diagnostic text for the code.
func (c Code) String() string {
	switch c {
	case CodeUnbalancedParen:
		return "unexpected )"
	case CodeUnterminatedGroup:
		return "missing closing )"
	case CodeMissingBracket:
		return "missing closing ]"
	case CodeInvalidRange:
		return "invalid character class range"
	case CodeUnknownRangeName:
		return "unknown range name"
	case CodeInvalidBackref:
		return "invalid backreference"
	case CodeInvalidRepeat:
		return "invalid repetition"
	case CodeMissingOperand:
		return "missing operand"
	case CodeInvalidEscape:
		return "invalid escape sequence"
	case CodeInvalidFlag:
		return "invalid flag"
	case CodeInvalidGroupName:
		return "invalid group name"
	case CodeInvalidCondition:
		return "invalid conditional group"
	case CodeUnsupportedInXML:
		return "construct not allowed in XML Schema mode"
	case CodeTooDeep:
		return "expression nests too deeply"
	default:
		return fmt.Sprintf("Code(%d)", c)
	}
}

// Error describes a malformed pattern. Offset is the byte offset in Pattern
// where the problem was detected.
type Error struct {
	Code    Code
	Pattern string
	Offset  int
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("regx: %s at offset %d in %q", e.Code, e.Offset, e.Pattern)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrPatternSyntax
func (e *Error) Is(target error) bool {
	return target == ErrPatternSyntax
}
