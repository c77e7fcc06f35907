// Package errors classifies failures so transports and consumers can map
// them without knowing the concrete error.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType is the class of an AppError.
type ErrorType string

const (
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeBadRequest  ErrorType = "BAD_REQUEST"
	ErrorTypeConflict    ErrorType = "CONFLICT"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE" // a backing service failed
	ErrorTypeInternal    ErrorType = "INTERNAL"
)

// AppError is a classified error with an optional cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing record.
func NotFound(message string) error {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// BadRequest reports input that can never succeed.
func BadRequest(message string) error {
	return &AppError{Type: ErrorTypeBadRequest, Message: message}
}

// Conflict reports a clash with stored state, e.g. a duplicate key.
func Conflict(message string) error {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

// Unavailable wraps a failure of a database, blob store or broker.
func Unavailable(message string, err error) error {
	return &AppError{Type: ErrorTypeUnavailable, Message: message, Err: err}
}

// TypeOf returns the type of the outermost AppError in the chain, or
// ErrorTypeInternal when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsNotFound reports whether err is classified as not found.
func IsNotFound(err error) bool { return err != nil && TypeOf(err) == ErrorTypeNotFound }

// IsConflict reports whether err is classified as a conflict.
func IsConflict(err error) bool { return err != nil && TypeOf(err) == ErrorTypeConflict }

// IsUnavailable reports whether err is classified as unavailable.
func IsUnavailable(err error) bool { return err != nil && TypeOf(err) == ErrorTypeUnavailable }
