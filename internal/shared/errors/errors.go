// Package errors provides the application-level error taxonomy used by
// usecases and HTTP handlers to map failures onto response codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
	ErrorTypeBadRequest   ErrorType = "bad_request"
)

// AppError carries an error type, a user-facing message and the HTTP status
// the handler layer should answer with.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(t ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{Type: t, Message: message, Code: code, Details: detail}
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details...)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details...)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details...)
}

// GetAppError extracts an AppError from an error chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

func IsConflictError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeConflict
}

func IsUnauthorizedError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeUnauthorized
}

func IsForbiddenError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeForbidden
}

// IsDuplicateError reports whether a database error is a unique-key
// violation. Matched on message text; the drivers do not expose typed errors
// for this consistently.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	return false
}
