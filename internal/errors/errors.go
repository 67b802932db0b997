// Package errors provides custom error types for the municipality budget API.
// Service-layer errors use AppError so handlers can produce consistent wire
// responses without leaking internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Server error", StatusCode: http.StatusInternalServerError}
)

// Municipality errors.
var (
	ErrMunicipalityNotFound = &AppError{Code: "MUNICIPALITY_NOT_FOUND", Message: "Municipality not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCode        = &AppError{Code: "DUPLICATE_CODE", Message: "Duplicate municipality code", StatusCode: http.StatusConflict}
)
