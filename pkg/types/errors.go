package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindIO             ErrKind = iota // filesystem create/read/write/seek failure
	ErrKindMalformed                     // input cannot be read as a wasm binary
	ErrKindInvalidArchive                // supplied payload archive failed its entry scan
	ErrKindOverflow                      // computed length exceeds representable range
	ErrKindUsage                         // invalid option or argument
)

// String returns the short category name used in messages.
func (k ErrKind) String() string {
	switch k {
	case ErrKindIO:
		return "io"
	case ErrKindMalformed:
		return "malformed input"
	case ErrKindInvalidArchive:
		return "invalid archive"
	case ErrKindOverflow:
		return "integer overflow"
	case ErrKindUsage:
		return "usage"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind, so the sentinels
// below match any error of their category.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations. Compare with errors.Is.
var (
	// ErrIO indicates a filesystem operation failed.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "i/o error"}
	// ErrMalformed indicates the input is not a structurally valid wasm binary.
	ErrMalformed = &Error{Kind: ErrKindMalformed, Msg: "malformed wasm binary"}
	// ErrInvalidArchive indicates a pre-existing payload archive is not a valid tar.
	ErrInvalidArchive = &Error{Kind: ErrKindInvalidArchive, Msg: "invalid archive"}
	// ErrOverflow indicates a section length cannot be represented.
	ErrOverflow = &Error{Kind: ErrKindOverflow, Msg: "integer overflow"}
	// ErrUsage indicates invalid caller input such as an empty path.
	ErrUsage = &Error{Kind: ErrKindUsage, Msg: "invalid usage"}
)

// IOError wraps err as an ErrKindIO error describing op.
func IOError(op string, err error) error {
	return &Error{Kind: ErrKindIO, Msg: op, Err: err}
}

// Malformed wraps err as an ErrKindMalformed error.
func Malformed(msg string, err error) error {
	return &Error{Kind: ErrKindMalformed, Msg: msg, Err: err}
}

// InvalidArchive wraps err as an ErrKindInvalidArchive error.
func InvalidArchive(path string, err error) error {
	return &Error{Kind: ErrKindInvalidArchive, Msg: "invalid archive " + path, Err: err}
}

// Overflow reports a length computation that does not fit.
func Overflow(msg string) error {
	return &Error{Kind: ErrKindOverflow, Msg: msg}
}

// Usage reports invalid caller input.
func Usage(msg string) error {
	return &Error{Kind: ErrKindUsage, Msg: msg}
}
