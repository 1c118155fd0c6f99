package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestNewCLIError creates and validates a CLI error
func TestNewCLIError(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewCLIError(ErrorTypeValidation, "Test error", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("Expected type %s, got %s", ErrorTypeValidation, err.Type)
	}
	if err.Message != "Test error" {
		t.Errorf("Expected message 'Test error', got '%s'", err.Message)
	}
	if err.Unwrap() != cause {
		t.Error("Cause not set correctly")
	}
}

// TestUnauthenticated validates the 401 outcome
func TestUnauthenticated(t *testing.T) {
	err := Unauthenticated()

	if err.Type != ErrorTypeUnauthenticated {
		t.Errorf("Expected type %s, got %s", ErrorTypeUnauthenticated, err.Type)
	}
	if err.StatusCode != 401 {
		t.Errorf("Expected status 401, got %d", err.StatusCode)
	}
	if !strings.Contains(err.Suggestion, "auth login") {
		t.Error("Expected login suggestion")
	}
}

// TestRejectedKeepsServerMessage validates the message is passed through exactly
func TestRejectedKeepsServerMessage(t *testing.T) {
	err := Rejected("404", "Post not found.")

	if err.Error() != "Post not found." {
		t.Errorf("Expected server message, got %q", err.Error())
	}
	if err.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", err.StatusCode)
	}
}

// TestTransportIncludesCause validates transport errors describe their cause
func TestTransportIncludesCause(t *testing.T) {
	err := Transport("invalid response", errors.New("unexpected end of JSON input"))

	if !strings.Contains(err.Error(), "unexpected end of JSON input") {
		t.Errorf("Expected cause in message, got %q", err.Error())
	}
	if !err.HasSuggestion() {
		t.Error("Expected suggestion for transport error")
	}
}

// TestWithAction records the failing action
func TestWithAction(t *testing.T) {
	err := Rejected("404", "nope").WithAction("pin")
	if err.Action != "pin" {
		t.Errorf("Expected action pin, got %q", err.Action)
	}
}

// TestPredicatesSeeThroughWrapping validates errors.As based helpers
func TestPredicatesSeeThroughWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"unauthenticated", fmt.Errorf("react: %w", Unauthenticated()), IsUnauthenticated},
		{"rejected", fmt.Errorf("edit: %w", Rejected("404", "x")), IsRejected},
		{"transport", fmt.Errorf("pin: %w", Transport("x", nil)), IsTransport},
		{"timeout is transport", TimeoutError(), IsTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("predicate returned false for %v", tt.err)
			}
		})
	}

	if IsRejected(errors.New("plain")) {
		t.Error("plain errors should not be rejected")
	}
}

// TestCategorizeError categorizes standard errors
func TestCategorizeError(t *testing.T) {
	testCases := []struct {
		input    error
		expected ErrorType
		name     string
	}{
		{errors.New("dial tcp: connection refused"), ErrorTypeTransport, "connection refused"},
		{errors.New("timeout"), ErrorTypeTimeout, "timeout"},
		{errors.New("context deadline exceeded"), ErrorTypeTimeout, "context deadline"},
		{errors.New("401 unauthorized"), ErrorTypeUnauthenticated, "401 error"},
		{errors.New("500 server error"), ErrorTypeServer, "500 error"},
		{errors.New("something odd"), ErrorTypeUnknown, "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CategorizeError(tc.input)
			if err.Type != tc.expected {
				t.Errorf("Expected type %s, got %s", tc.expected, err.Type)
			}
		})
	}

	if CategorizeError(nil) != nil {
		t.Error("CategorizeError(nil) should be nil")
	}
}

// TestFormatError formats error for display
func TestFormatError(t *testing.T) {
	formatted := FormatError(Unauthenticated())

	if !strings.Contains(formatted, "Error (unauthenticated)") {
		t.Errorf("Expected error type in formatted message, got %q", formatted)
	}
	if !strings.Contains(formatted, "Suggestion") {
		t.Error("Expected suggestion in formatted message")
	}

	if FormatError(nil) != "" {
		t.Error("Expected empty string for nil error")
	}

	plain := FormatError(NewCLIError(ErrorTypeUnknown, "Some error", nil))
	if strings.Contains(plain, "(unknown)") || !strings.Contains(plain, "Some error") {
		t.Errorf("Unexpected unknown formatting: %q", plain)
	}
}
