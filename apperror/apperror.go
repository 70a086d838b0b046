// Package apperror defines the fixed set of failure kinds surfaced to clients.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Values are stable and appear as "code" in API errors.
type Kind string

const (
	KindInvalidRequest        Kind = "invalid_request"
	KindInvalidLink           Kind = "invalid_link"
	KindTranscriptUnavailable Kind = "transcript_unavailable"
	KindGenerationFailure     Kind = "generation_failure"
	KindPersistenceConflict   Kind = "persistence_conflict"
	KindUnauthorized          Kind = "unauthorized"
	KindNotFound              Kind = "not_found"
	KindInternal              Kind = "internal"
)

// Sentinels for errors.Is checks against a Kind.
var (
	ErrInvalidLink           = &Error{Kind: KindInvalidLink}
	ErrTranscriptUnavailable = &Error{Kind: KindTranscriptUnavailable}
	ErrGenerationFailure     = &Error{Kind: KindGenerationFailure}
	ErrPersistenceConflict   = &Error{Kind: KindPersistenceConflict}
	ErrUnauthorized          = &Error{Kind: KindUnauthorized}
	ErrNotFound              = &Error{Kind: KindNotFound}
)

var messages = map[Kind]string{
	KindInvalidRequest:        "invalid request body",
	KindInvalidLink:           "the link does not contain a video id (expected ...watch?v=<id>)",
	KindTranscriptUnavailable: "could not obtain a transcript for this video",
	KindGenerationFailure:     "could not generate a response",
	KindPersistenceConflict:   "record already exists",
	KindUnauthorized:          "not authenticated",
	KindNotFound:              "record not found",
	KindInternal:              "internal server error",
}

// Error carries a Kind, the operation that failed and the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// New wraps err with kind and op.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind, so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// KindOf returns the Kind of the outermost *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the sanitized client-facing message for kind.
func Message(kind Kind) string {
	if m, ok := messages[kind]; ok {
		return m
	}
	return messages[KindInternal]
}
