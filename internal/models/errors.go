package models

import (
	"errors"
	"fmt"
)

// Error codes carried by AppError
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeSubmissionFailed = "SUBMISSION_FAILED"
)

// Common error types
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("operation conflicts with current state")
	ErrSubmissionInFlight = errors.New("an enquiry from this form is still being submitted")
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrConflictWithMsg creates a conflict error with custom message
func ErrConflictWithMsg(message string, err error) error {
	if err == nil {
		err = ErrConflict
	}
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     err,
	}
}

// ErrSubmissionFailed wraps a failure of the enquiry intake
func ErrSubmissionFailed(err error) error {
	return &AppError{
		Code:    CodeSubmissionFailed,
		Message: "failed to submit enquiry",
		Err:     err,
	}
}
