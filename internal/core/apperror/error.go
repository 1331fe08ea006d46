// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All query and lookup errors surfaced to callers must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Criteria translation errors (400)
	CodeUnsupportedOperator  = "UNSUPPORTED_OPERATOR"
	CodeMalformedFilterValue = "MALFORMED_FILTER_VALUE"
	CodeInvalidFilterField   = "INVALID_FILTER_FIELD"
	CodeParameterConflict    = "PARAMETER_CONFLICT"
	CodeAmbiguousField       = "AMBIGUOUS_FIELD_REFERENCE"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the service.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field, operator, offending value)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnsupportedOperator is returned when a filter carries an operator symbol
// outside the fixed vocabulary.
func NewUnsupportedOperator(operator string) *AppError {
	return &AppError{
		Code:       CodeUnsupportedOperator,
		Message:    fmt.Sprintf("Operator %s is not supported", operator),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"operator": operator},
	}
}

// NewMalformedFilterValue is returned when a filter value does not match the
// shape its operator requires (scalar vs non-empty sequence).
func NewMalformedFilterValue(field, operator, reason string) *AppError {
	return &AppError{
		Code:       CodeMalformedFilterValue,
		Message:    fmt.Sprintf("malformed value for %s %s: %s", field, operator, reason),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field, "operator": operator},
	}
}

// NewInvalidFilterField creates an error for empty or unknown field references.
func NewInvalidFilterField(field string) *AppError {
	return &AppError{
		Code:       CodeInvalidFilterField,
		Message:    fmt.Sprintf("invalid filter field %q", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// NewParameterConflict is returned when a generated parameter name is already
// bound in the query context.
func NewParameterConflict(param string) *AppError {
	return &AppError{
		Code:       CodeParameterConflict,
		Message:    fmt.Sprintf("parameter %s is already bound", param),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"parameter": param},
	}
}

// NewAmbiguousField reports a qualified field that the backend could not resolve,
// typically a relation that was never joined into the query.
func NewAmbiguousField(message string) *AppError {
	return &AppError{
		Code:       CodeAmbiguousField,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewDatabase wraps a backend failure the client may not see.
func NewDatabase(err error) *AppError {
	return &AppError{
		Code:       CodeDatabase,
		Message:    "Database error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsUnsupportedOperator checks if error is CodeUnsupportedOperator
func IsUnsupportedOperator(err error) bool {
	return HasCode(err, CodeUnsupportedOperator)
}

// IsMalformedFilterValue checks if error is CodeMalformedFilterValue
func IsMalformedFilterValue(err error) bool {
	return HasCode(err, CodeMalformedFilterValue)
}
