// Package apperror defines the application error taxonomy and its mapping to
// HTTP status codes. Handlers and services return *AppError values; the
// router's error handler converts them into the uniform
// {"success":false,"message":...} response body.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	// KindUnknown is for unclassified failures.
	KindUnknown Kind = iota
	// KindValidation marks missing or malformed input.
	KindValidation
	// KindConflict marks a uniqueness violation, e.g. a duplicate email.
	KindConflict
	// KindAuthentication marks bad credentials or a missing/invalid token.
	KindAuthentication
	// KindNotFound marks a record that is absent or not owned by the caller.
	KindNotFound
	// KindStorage marks a file I/O or persisted-data failure.
	KindStorage
)

// AppError carries a kind, a client-safe message and an optional
// underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		// Duplicate email is reported as a plain 400 like any other
		// rejected registration input.
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError of an arbitrary kind.
func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NewValidation creates a validation error.
func NewValidation(message string) *AppError {
	return New(KindValidation, message, nil)
}

// NewConflict creates a conflict error.
func NewConflict(message string) *AppError {
	return New(KindConflict, message, nil)
}

// NewAuthentication creates an authentication error wrapping its cause.
func NewAuthentication(message string, err error) *AppError {
	return New(KindAuthentication, message, err)
}

// NewNotFound creates a not-found error.
func NewNotFound(message string) *AppError {
	return New(KindNotFound, message, nil)
}

// NewStorage creates a storage error wrapping its cause.
func NewStorage(message string, err error) *AppError {
	return New(KindStorage, message, err)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == kind
}
