package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigConflict ErrorCode = "CONFIG_CONFLICT"

	// Composition errors
	ErrMissingDependency ErrorCode = "MISSING_DEPENDENCY"
	ErrDuplicateFragment ErrorCode = "DUPLICATE_FRAGMENT"
	ErrLoadFailure       ErrorCode = "LOAD_FAILURE"

	// File errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// ComposeError represents a structured error with code and details
type ComposeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ComposeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ComposeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface. Two ComposeErrors match when their codes match.
func (e *ComposeError) Is(target error) bool {
	var targetErr *ComposeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ComposeError with the given code and message
func New(code ErrorCode, message string) *ComposeError {
	return &ComposeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ComposeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ComposeError {
	return &ComposeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ComposeError
func Wrap(err error, code ErrorCode, message string) *ComposeError {
	if err == nil {
		return nil
	}
	return &ComposeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ComposeError {
	if err == nil {
		return nil
	}
	return &ComposeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ComposeError) WithDetail(key string, value interface{}) *ComposeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ComposeError) WithDetails(details map[string]interface{}) *ComposeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ConfigurationConflict reports a top-level option that cannot be scoped to a single
// generated fragment.
func ConfigurationConflict(field string) *ComposeError {
	return Newf(ErrConfigConflict,
		"top-level option %q is not supported: it is fragment-scoped, pass it in a user fragment instead", field).
		WithDetail("field", field)
}

// MissingDependency reports optional packages required by an explicitly enabled domain.
func MissingDependency(domain string, packages ...string) *ComposeError {
	return Newf(ErrMissingDependency,
		"domain %q requires %s to be installed", domain, strings.Join(packages, ", ")).
		WithDetail("domain", domain).
		WithDetail("packages", packages)
}

// DuplicateFragmentName reports two fragments sharing the same name.
func DuplicateFragmentName(name, first, second string) *ComposeError {
	return Newf(ErrDuplicateFragment,
		"fragment name %q is used by both %s and %s", name, first, second).
		WithDetail("name", name).
		WithDetail("first", first).
		WithDetail("second", second)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var composeErr *ComposeError
	if errors.As(err, &composeErr) {
		return composeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ComposeError
func GetErrorCode(err error) ErrorCode {
	var composeErr *ComposeError
	if errors.As(err, &composeErr) {
		return composeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ComposeError
func GetErrorDetails(err error) map[string]interface{} {
	var composeErr *ComposeError
	if errors.As(err, &composeErr) {
		return composeErr.Details
	}
	return nil
}
