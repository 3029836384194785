package apperrors

import (
	"errors"
	"fmt"
)

// Base classes. Every error leaving a service matches exactly one of these.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrStorage          = errors.New("storage failure")
)

// Student errors
var (
	ErrStudentNotFound        = fmt.Errorf("%w: student not found", ErrResourceNotFound)
	ErrStudentIDAlreadyExists = fmt.Errorf("%w: student ID already exists", ErrConflict)
	ErrNothingChanged         = fmt.Errorf("%w: no rows changed", ErrConflict)
)

// Course and grade errors
var (
	ErrCourseNotFound     = fmt.Errorf("%w: course not found", ErrResourceNotFound)
	ErrGradeOutOfRange    = fmt.Errorf("%w: grade out of range", ErrValidationFailed)
	ErrGradeAlreadyExists = fmt.Errorf("%w: grade already recorded", ErrConflict)
)

// CustomError pairs a classifying sentinel with the message shown to the user.
// Cause keeps the underlying driver error for diagnostics.
type CustomError struct {
	Err     error
	Message string
	Cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As
func (e *CustomError) Unwrap() []error {
	var errs []error
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithCause attaches the underlying error
func (e *CustomError) WithCause(cause error) *CustomError {
	e.Cause = cause
	return e
}

// NewValidationError wraps a field-level validation message
func NewValidationError(message string) error {
	return NewCustomError(ErrValidationFailed, message)
}

// NewNotFoundError creates a not-found error; err should wrap ErrResourceNotFound
func NewNotFoundError(err error, message string) error {
	return NewCustomError(err, message)
}

// NewConflictError creates a conflict error; err should wrap ErrConflict
func NewConflictError(err error, message string) error {
	return NewCustomError(err, message)
}

// NewStorageError normalizes an unexpected failure. The underlying message is appended.
func NewStorageError(cause error) error {
	return NewCustomError(ErrStorage, fmt.Sprintf("Error: %v", cause)).WithCause(cause)
}

// Message returns the user-facing message of err
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return err.Error()
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
