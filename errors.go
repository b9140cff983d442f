package qpsc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a cipher-core failure per spec's error table.
type ErrorKind int

const (
	// InvalidPrime: p is not congruent to 2 mod 3, or p < 2^16.
	InvalidPrime ErrorKind = iota
	// InvalidShape: an input vector's length is not 36 where 36 is required.
	InvalidShape
	// InvalidTruncation: the truncation width m exceeds 36.
	InvalidTruncation
	// NotInitialized: GenerateKeystream (or GenerateBlock) called before Init.
	NotInitialized
	// XofFailure: the underlying XOF failed. Not expected under a correct
	// host; kept as a distinct kind so callers can still discriminate it
	// from a shape or configuration bug.
	XofFailure
)

// String names the error kind.
func (k ErrorKind) String() string {
	switch k {
	case InvalidPrime:
		return "InvalidPrime"
	case InvalidShape:
		return "InvalidShape"
	case InvalidTruncation:
		return "InvalidTruncation"
	case NotInitialized:
		return "NotInitialized"
	case XofFailure:
		return "XofFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a structured error carrying a Kind for programmatic dispatch and
// an optional wrapped cause from a lower-level package (sbox, linear,
// schedule). All QPSC failures are synchronous, structural, and fatal for
// the call that produced them: the cipher retains no partial state a
// failed call could have corrupted.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("qpsc: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("qpsc: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError builds an *Error of the given kind.
func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// wrapError builds an *Error of the given kind wrapping cause.
func wrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is a QPSC *Error of the given kind. It lets
// callers write `qpsc.Is(err, qpsc.NotInitialized)` instead of manually
// type-asserting and comparing Kind.
func Is(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
