// Package apperror defines the error taxonomy used across the client.
//
// Four kinds of failure exist, and they are handled differently:
//
//	ErrValidation — a field failed a local check; never sent to the backend
//	ErrAuth       — the backend rejected the credential (401); re-login needed
//	ErrNetwork    — the request never completed (DNS, refused, reset)
//	ErrServer     — the backend answered with a non-2xx status and a body
//	ErrNotFound   — a resource that may legitimately be absent (profile)
//
// Callers match with errors.Is; the concrete *AppError carries the
// human-readable message and, for validation, the offending field.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication rejected")
	ErrNetwork    = errors.New("network error")
	ErrServer     = errors.New("server error")
	ErrNotFound   = errors.New("not found")
)

type AppError struct {
	Err     error  // taxonomy sentinel
	Message string // human-readable error message
	Field   string // optional: field causing a validation error
	Status  int    // optional: HTTP status for server/auth errors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed reports a field-level validation failure. These never
// leave the process; a draft with any of them pending cannot be submitted.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// AuthFailed reports a 401 from the backend. The session is not cleared
// automatically; the affected view surfaces the message and the user
// decides whether to log in again.
func AuthFailed(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return &AppError{
		Err:     ErrAuth,
		Message: message,
		Status:  401,
	}
}

// Network wraps a transport-level failure (the request never completed).
func Network(err error) *AppError {
	return &AppError{
		Err:     ErrNetwork,
		Message: fmt.Sprintf("request failed: %v", err),
	}
}

// Server reports a non-2xx response. message is the backend's body message
// when it sent one, otherwise a generic status line.
func Server(status int, message string) *AppError {
	if message == "" {
		message = fmt.Sprintf("server returned status %d", status)
	}
	return &AppError{
		Err:     ErrServer,
		Message: message,
		Status:  status,
	}
}

// NotFound reports an absent resource, e.g. a user with no profile yet.
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  404,
	}
}
