package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Network errors (1xxx)
	ErrCodeNetworkUnavailable   ErrorCode = "BSCP1001"
	ErrCodeFetchFailed          ErrorCode = "BSCP1002"
	ErrCodeAuthenticationFailed ErrorCode = "BSCP1003"
	ErrCodeConnectionTimeout    ErrorCode = "BSCP1004"

	// Configuration errors (2xxx)
	ErrCodeConfigNotFound ErrorCode = "BSCP2001"
	ErrCodeConfigInvalid  ErrorCode = "BSCP2002"

	// Repository errors (3xxx)
	ErrCodeRepoNotFound     ErrorCode = "BSCP3001"
	ErrCodeRepoAccessDenied ErrorCode = "BSCP3002"
	ErrCodeRefNotFound      ErrorCode = "BSCP3003"
	ErrCodeCommitNotFound   ErrorCode = "BSCP3004"

	// Validation errors (6xxx)
	ErrCodeValidationFailed ErrorCode = "BSCP6001"
	ErrCodeInvalidInput     ErrorCode = "BSCP6002"
	ErrCodeUserInput        ErrorCode = "BSCP6003"

	// System errors (9xxx)
	ErrCodeInternal           ErrorCode = "BSCP9001"
	ErrCodeTimeout            ErrorCode = "BSCP9002"
	ErrCodeResourceExhausted  ErrorCode = "BSCP9003"
	ErrCodeServiceUnavailable ErrorCode = "BSCP9004"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // System failure, requires immediate attention
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed, but system continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Recoverable bool
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Severity:    SeverityError,
		Context:     make(map[string]interface{}),
		Stack:       captureStack(),
		Timestamp:   time.Now(),
		Recoverable: false,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit some properties
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// AsRecoverable marks the error as recoverable
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// RepositoryError creates a repository access error
func RepositoryError(message string, path string, cause error) *AppError {
	err := New(ErrCodeRepoNotFound, message)
	err.Cause = cause
	return err.
		WithContext("path", path).
		WithSuggestions(
			"Check that the path points at a Git repository",
			"Verify you have read permission on the repository",
			"Run 'branchscope setup' to reconfigure the repository path",
		)
}

// RefNotFoundError creates an unknown branch/ref error
func RefNotFoundError(ref string, cause error) *AppError {
	err := New(ErrCodeRefNotFound, fmt.Sprintf("Reference '%s' not found", ref))
	err.Cause = cause
	return err.
		WithContext("ref", ref).
		WithSuggestions(
			"Check for typos in the branch name",
			"Run 'branchscope branches' to list available branches",
			"Run 'branchscope fetch' if the branch only exists on a remote",
		)
}

// NetworkError creates a network-related error
func NetworkError(message string, cause error) *AppError {
	err := New(ErrCodeNetworkUnavailable, message)
	err.Cause = cause
	return err.
		WithSeverity(SeverityError).
		AsRecoverable().
		WithSuggestions(
			"Check your network connection",
			"Verify the remote URL is reachable",
			"Check proxy or firewall settings",
		)
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'branchscope setup' to reconfigure",
		)
}

// ValidationError creates a validation error
func ValidationError(field string, value interface{}, reason string) *AppError {
	return New(ErrCodeValidationFailed, fmt.Sprintf("Validation failed for %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value).
		WithSeverity(SeverityWarning).
		AsRecoverable()
}

// IsRecoverable checks if an error is recoverable
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
