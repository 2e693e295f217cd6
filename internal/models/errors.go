package models

import (
	"errors"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrDependency   = errors.New("dependency failure")
)

// Error is a client-facing failure: a human-readable message plus the HTTP status to answer with.
type Error struct {
	Kind    error
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewValidationError(msg string) *Error {
	return &Error{Kind: ErrValidation, Status: http.StatusBadRequest, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: ErrNotFound, Status: http.StatusNotFound, Message: msg}
}

// NewAuthError builds an authentication failure; status is 401 or 400 depending on the cause.
func NewAuthError(status int, msg string) *Error {
	return &Error{Kind: ErrUnauthorized, Status: status, Message: msg}
}

func NewPermissionError(msg string) *Error {
	return &Error{Kind: ErrForbidden, Status: http.StatusForbidden, Message: msg}
}

func NewDependencyError(msg string) *Error {
	return &Error{Kind: ErrDependency, Status: http.StatusInternalServerError, Message: msg}
}
