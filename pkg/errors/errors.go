package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Action outcomes reported by the server
	ErrorTypeUnauthenticated ErrorType = "unauthenticated"
	ErrorTypeRejected        ErrorType = "rejected"

	// Client side outcomes
	ErrorTypeTransport ErrorType = "transport"
	ErrorTypeTimeout   ErrorType = "timeout"

	// Session errors
	ErrorTypeSessionExpired ErrorType = "session_expired"
	ErrorTypeLogin          ErrorType = "login"

	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeServer     ErrorType = "server"

	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	// Action is the action kind that produced the error, if any.
	Action string
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil && e.Type == ErrorTypeTransport {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// WithAction records the action kind that failed
func (e *CLIError) WithAction(action string) *CLIError {
	e.Action = action
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Unauthenticated is returned when the server reports no valid session.
func Unauthenticated() *CLIError {
	err := NewCLIError(ErrorTypeUnauthenticated, "You need to log in to do that", nil)
	err.StatusCode = 401
	err.Suggestion = "Run 'qwitter auth login' and try again."
	return err
}

// Rejected carries the server's message verbatim.
func Rejected(status, message string) *CLIError {
	err := NewCLIError(ErrorTypeRejected, message, nil)
	fmt.Sscanf(status, "%d", &err.StatusCode)
	return err
}

// Transport covers network failures and responses that are not a valid envelope.
func Transport(message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeTransport, message, cause)
	err.Suggestion = "Check that the server is reachable and try again."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// SessionExpiredError creates a session expired error
func SessionExpiredError() *CLIError {
	err := NewCLIError(ErrorTypeSessionExpired, "Your session has expired", nil)
	err.Suggestion = "Run 'qwitter auth login' to refresh your session."
	return err
}

// LoginError is returned when the login form did not yield a session.
func LoginError(message string) *CLIError {
	err := NewCLIError(ErrorTypeLogin, message, nil)
	err.Suggestion = "Check your username and password."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// ServerError creates a server error
func ServerError() *CLIError {
	err := NewCLIError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

func typeOf(err error) ErrorType {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Type
	}
	return ""
}

// IsUnauthenticated reports whether err is an authentication failure.
func IsUnauthenticated(err error) bool {
	return typeOf(err) == ErrorTypeUnauthenticated
}

// IsRejected reports whether the server rejected the action.
func IsRejected(err error) bool {
	return typeOf(err) == ErrorTypeRejected
}

// IsTransport reports whether err is a transport or parse failure.
func IsTransport(err error) bool {
	t := typeOf(err)
	return t == ErrorTypeTransport || t == ErrorTypeTimeout
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "connection refused"):
		return Transport("Could not connect to server. Make sure it's running.", err)
	case strings.Contains(errMsg, "timeout"), strings.Contains(errMsg, "context deadline exceeded"):
		return TimeoutError()
	case strings.Contains(errMsg, "401") || strings.Contains(errMsg, "unauthorized"):
		return Unauthenticated()
	case strings.Contains(errMsg, "500") || strings.Contains(errMsg, "server error"):
		return ServerError()
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Error())
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}
