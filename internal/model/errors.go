package model

import (
	"errors"
	"fmt"
)

// ErrorKind is a machine-distinguishable failure category surfaced to callers.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation_error"
	KindInvalidCompletion  ErrorKind = "invalid_completion_value"
	KindDuplicateEmail     ErrorKind = "duplicate_email"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindNotFound           ErrorKind = "not_found"
	KindStoreUnavailable   ErrorKind = "store_unavailable"
	KindInternal           ErrorKind = "internal"
)

// Retryable reports whether a caller may retry a request that failed with this kind.
func (k ErrorKind) Retryable() bool {
	return k == KindStoreUnavailable
}

// Error is a typed application error. Two errors match with errors.Is when
// their kinds match; an invalid completion value also matches ErrValidation.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind == t.Kind {
		return true
	}
	return t.Kind == KindValidation && e.Kind == KindInvalidCompletion
}

var (
	ErrValidation         = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrInvalidCompletion  = &Error{Kind: KindInvalidCompletion, Message: "invalid completion value"}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Message: "email is already registered"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "authentication required"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "access to this resource is forbidden"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "not found"}
	ErrStoreUnavailable   = &Error{Kind: KindStoreUnavailable, Message: "store is temporarily unavailable"}
)

// NewValidationError creates a validation error with a user-facing message.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidCompletionError reports a completion value outside the accepted forms.
func NewInvalidCompletionError(value any) *Error {
	return &Error{Kind: KindInvalidCompletion, Message: fmt.Sprintf("invalid completion value %v", value)}
}

// NewUnauthorizedError creates an unauthorized error keeping the cause for logs.
func NewUnauthorizedError(message string, cause error) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: cause}
}

// NewNotFoundError creates a not found error for the named entity.
func NewNotFoundError(entity string, id fmt.Stringer) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewForbiddenError creates a forbidden error for the named entity.
func NewForbiddenError(entity string, id fmt.Stringer) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf("%s %s belongs to another user", entity, id)}
}

// NewStoreUnavailable wraps an infrastructure failure as retryable.
func NewStoreUnavailable(cause error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: ErrStoreUnavailable.Message, Err: cause}
}

// KindOf returns the kind of the first typed error in the chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of the first typed error in the chain.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
