// Package rerrors provides custom error types for lua-readline.
// These error types enable better error handling and more informative error messages
// throughout the binding and the CLI.
package rerrors

import (
	"fmt"
)

// ReadlineError is the base interface for all lua-readline errors
type ReadlineError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all lua-readline errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// CallbackError represents a failure raised by a host completion callable
type CallbackError struct {
	baseError
	Prefix string
}

// NewCallbackError creates a new callback error for the given completion prefix
func NewCallbackError(prefix string, message string, cause error) *CallbackError {
	return &CallbackError{
		baseError: baseError{
			code:    "CALLBACK_ERROR",
			message: message,
			cause:   cause,
		},
		Prefix: prefix,
	}
}

// EditorError represents errors reported by the native line editor
type EditorError struct {
	baseError
	Op string
}

// NewEditorError creates a new editor error for the given operation
func NewEditorError(op string, message string, cause error) *EditorError {
	return &EditorError{
		baseError: baseError{
			code:    "EDITOR_ERROR",
			message: message,
			cause:   cause,
		},
		Op: op,
	}
}

// SessionBusyError represents an attempt to start a read while one is outstanding
type SessionBusyError struct {
	baseError
}

// NewSessionBusyError creates a new session busy error
func NewSessionBusyError(message string) *SessionBusyError {
	return &SessionBusyError{
		baseError: baseError{
			code:    "SESSION_BUSY",
			message: message,
			cause:   nil,
		},
	}
}

// OutOfMemoryError represents a failure to allocate storage for the
// identifying name, preserved from the original binding contract
type OutOfMemoryError struct {
	baseError
}

// NewOutOfMemoryError creates a new out of memory error
func NewOutOfMemoryError(message string, cause error) *OutOfMemoryError {
	return &OutOfMemoryError{
		baseError: baseError{
			code:    "OUT_OF_MEMORY",
			message: message,
			cause:   cause,
		},
	}
}
