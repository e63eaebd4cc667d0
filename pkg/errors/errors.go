// Package errors provides structured error types for wopp.
//
// Every failure the CLI reports carries a Code: INVALID_* for bad
// arguments, files and config, *_NOT_FOUND for missing packages, pages and
// requirements files, and NETWORK_ERROR, TIMEOUT or RATE_LIMITED for PyPI
// transport problems. cmd/wopp prints UserMessage and exits non-zero.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRequirementsNotFound, "no files match %s", pattern)
//	if errors.Is(err, errors.ErrCodeRequirementsNotFound) {
//	    // Handle missing requirement files
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
//
// Filesystem errors are deliberately not wrapped by the requirements
// package, so errors.Is(err, fs.ErrPermission) keeps working for callers.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPackage   Code = "INVALID_PACKAGE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidSpecifier Code = "INVALID_SPECIFIER"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound             Code = "NOT_FOUND"
	ErrCodePackageNotFound      Code = "PACKAGE_NOT_FOUND"
	ErrCodeRequirementsNotFound Code = "REQUIREMENTS_NOT_FOUND"
	ErrCodeDocsNotFound         Code = "DOCS_NOT_FOUND"
	ErrCodePageNotFound         Code = "PAGE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Local environment errors
	ErrCodeURLLaunch Code = "URL_LAUNCH"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by error types that carry a Code without being an
// *Error, such as *RateLimitedError.
type coder interface {
	Code() Code
}

// Is reports whether the first coded error in err's chain has code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the first *Error or coder in err's chain,
// or "" when there is none.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns the text shown after "Error: " on the command line.
// Codes are dropped; rate limits mention the retry delay.
func UserMessage(err error) string {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		if rl.RetryAfter > 0 {
			return fmt.Sprintf("PyPI is rate limiting requests, try again in %d seconds", rl.RetryAfter)
		}
		return "PyPI is rate limiting requests, try again later"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError is returned for HTTP 429 responses. RetryAfter holds
// the Retry-After header in seconds, 0 when absent.
type RateLimitedError struct {
	RetryAfter int
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code reports ErrCodeRateLimited.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
