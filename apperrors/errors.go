package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to callers.
const (
	CodeForbidden        = "FORBIDDEN"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeRoleDenied       = "ROLE_DENIED"
	CodeValidation       = "VALIDATION_ERROR"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodePartialCascade   = "PARTIAL_CASCADE_FAILURE"
	CodeInternal         = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Forbidden is a request carrying no credential at all.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// Unauthorized is a request whose credential is invalid or expired.
func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

// RoleDenied is an authenticated caller lacking the role an operation needs.
func RoleDenied(message string) *AppError {
	return &AppError{
		Code:    CodeRoleDenied,
		Message: message,
		Status:  http.StatusForbidden,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func StoreUnavailable(message string, err error) *AppError {
	return &AppError{
		Code:    CodeStoreUnavailable,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// PartialCascade reports a multi-step write whose later step failed after an
// earlier step committed. Step names which part failed so the caller can tell
// whether a retry is safe; cascade steps are idempotent.
func PartialCascade(step string, err error) *AppError {
	return &AppError{
		Code:    CodePartialCascade,
		Message: fmt.Sprintf("cascade step %q failed", step),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Is reports whether err carries the given application error code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// StatusOf maps an error to the HTTP status it should produce.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
