package site

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures across the generation pipeline.
type ErrorKind string

const (
	// MalformedResponse: text could not be coerced into JSON at all.
	MalformedResponse ErrorKind = "MalformedResponse"
	// SchemaViolation: JSON parsed but is missing required fields or uses a
	// value outside a closed enumeration.
	SchemaViolation ErrorKind = "SchemaViolation"
	// InvalidMergeResult: a proposed edit would corrupt content/style shape.
	InvalidMergeResult ErrorKind = "InvalidMergeResult"
	// ModelUnavailable: transient model failure, eligible for one fallback retry.
	ModelUnavailable ErrorKind = "ModelUnavailable"
	// GenerationFailed: any other failure of the external generation call.
	GenerationFailed ErrorKind = "GenerationFailed"
	// InvalidInput: caller supplied an empty prompt, unknown id or bad index.
	InvalidInput ErrorKind = "InvalidInput"
	// NotFound: the requested project does not exist.
	NotFound ErrorKind = "NotFound"
)

// Error is a typed pipeline error.
type Error struct {
	Kind    ErrorKind
	Message string
	// Details holds per-field violations for SchemaViolation errors.
	Details []Violation
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around err.
func Wrap(kind ErrorKind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
