package temporal

import (
	"errors"
	"fmt"
)

// Kind categorizes engine errors. Exactly two kinds exist: every failure is
// either a value outside its valid range (KindRange) or an input of the
// wrong shape (KindType). All errors are synchronous; there is no partial
// construction and nothing is retried internally.
type Kind int

const (
	// KindRange marks values out of valid range, wall-clock times rejected
	// by a disambiguation or offset policy, invalid unit/increment
	// combinations, and a missing relativeTo anchor.
	KindRange Kind = iota + 1

	// KindType marks malformed input shapes: unrecognized unit or option
	// strings, values of the wrong type.
	KindType
)

// String returns the conventional name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRange:
		return "RangeError"
	case KindType:
		return "TypeError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type raised by the engine.
//
// Op names the operation that failed (e.g. "duration.round"). Message is a
// human-readable description. Matching is by Kind via errors.As, following
// the code-based matching style of structured runtime errors.
type Error struct {
	Kind    Kind
	Op      string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewRangeError creates a KindRange error for the given operation.
func NewRangeError(op, format string, args ...any) *Error {
	return &Error{Kind: KindRange, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewTypeError creates a KindType error for the given operation.
func NewTypeError(op, format string, args ...any) *Error {
	return &Error{Kind: KindType, Op: op, Message: fmt.Sprintf(format, args...)}
}

// IsRangeError reports whether err is (or wraps) a KindRange error.
func IsRangeError(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == KindRange
}

// IsTypeError reports whether err is (or wraps) a KindType error.
func IsTypeError(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == KindType
}
