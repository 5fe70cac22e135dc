// Package errors provides typed errors for the application
package errors

import "errors"

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeUnauthorized
	ErrorTypeNotFound
	ErrorTypeConflict
	ErrorTypeTooManyRequests
	ErrorTypeServiceUnavailable
	ErrorTypeInternal
)

// baseError is the base implementation for all error types
type baseError struct {
	msg string
}

func (e *baseError) Error() string {
	return e.msg
}

// ValidationError represents a validation error (400)
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// UnauthorizedError represents a request without valid credentials (401)
type UnauthorizedError struct {
	baseError
}

// NewUnauthorizedError creates a new UnauthorizedError
func NewUnauthorizedError(msg string) *UnauthorizedError {
	return &UnauthorizedError{baseError{msg: msg}}
}

// NotFoundError represents a not found error (404)
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// ConflictError represents a conflict error (409)
type ConflictError struct {
	baseError
}

// NewConflictError creates a new ConflictError
func NewConflictError(msg string) *ConflictError {
	return &ConflictError{baseError{msg: msg}}
}

// TooManyRequestsError represents a throttled request (429)
type TooManyRequestsError struct {
	baseError
}

// NewTooManyRequestsError creates a new TooManyRequestsError
func NewTooManyRequestsError(msg string) *TooManyRequestsError {
	return &TooManyRequestsError{baseError{msg: msg}}
}

// ServiceUnavailableError represents an unavailable upstream dependency (503)
type ServiceUnavailableError struct {
	baseError
}

// NewServiceUnavailableError creates a new ServiceUnavailableError
func NewServiceUnavailableError(msg string) *ServiceUnavailableError {
	return &ServiceUnavailableError{baseError{msg: msg}}
}

// InternalError represents an internal server error (500)
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsUnauthorizedError checks if error is an UnauthorizedError
func IsUnauthorizedError(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}

// IsNotFoundError checks if error is a NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflictError checks if error is a ConflictError
func IsConflictError(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsTooManyRequestsError checks if error is a TooManyRequestsError
func IsTooManyRequestsError(err error) bool {
	var target *TooManyRequestsError
	return errors.As(err, &target)
}

// IsServiceUnavailableError checks if error is a ServiceUnavailableError
func IsServiceUnavailableError(err error) bool {
	var target *ServiceUnavailableError
	return errors.As(err, &target)
}

// IsInternalError checks if error is an InternalError
func IsInternalError(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}

// TypeOf returns the ErrorType of err, defaulting to ErrorTypeInternal
func TypeOf(err error) ErrorType {
	switch {
	case IsValidationError(err):
		return ErrorTypeValidation
	case IsUnauthorizedError(err):
		return ErrorTypeUnauthorized
	case IsNotFoundError(err):
		return ErrorTypeNotFound
	case IsConflictError(err):
		return ErrorTypeConflict
	case IsTooManyRequestsError(err):
		return ErrorTypeTooManyRequests
	case IsServiceUnavailableError(err):
		return ErrorTypeServiceUnavailable
	default:
		return ErrorTypeInternal
	}
}
