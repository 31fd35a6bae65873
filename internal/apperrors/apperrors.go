// Package apperrors defines the typed errors surfaced by the write path.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	KindConflict                 Kind = "CONFLICT"
	KindNotFound                 Kind = "NOT_FOUND"
	KindValidation               Kind = "VALIDATION"
	KindMaxAllowedFieldsExceeded Kind = "MAX_ALLOWED_FIELDS_EXCEEDED"
)

// Error is an application error carrying the offending keys as metadata
type Error struct {
	Kind    Kind
	Message string
	Meta    map[string]string
}

func (e *Error) Error() string { return e.Message }

// WithMeta adds a metadata entry and returns the same error
func (e *Error) WithMeta(key, value string) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]string)
	}
	e.Meta[key] = value
	return e
}

// NewConflict reports duplicates or a mismatch between requested and stored state
func NewConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NewNotFound reports a reference to an unknown entity
func NewNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewValidation reports a field of the wrong shape for its transaction type
func NewValidation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewMaxAllowedFieldsExceeded reports a payload expanding past the field ceiling
func NewMaxAllowedFieldsExceeded(msg string) *Error {
	return &Error{Kind: KindMaxAllowedFieldsExceeded, Message: msg}
}

// As returns the *Error in err's chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not an *Error
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return ""
}

func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsMaxAllowedFieldsExceeded(err error) bool {
	return KindOf(err) == KindMaxAllowedFieldsExceeded
}

// HTTPStatus maps err to the status code handlers respond with
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindMaxAllowedFieldsExceeded:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
