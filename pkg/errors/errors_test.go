package errors

import (
	"errors"
	"fmt"
	"testing"
)

type codedError struct{}

func (codedError) Error() string { return "coded" }
func (codedError) Code() Code    { return ErrCodeAmbiguous }

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "person %q not found", "Kevin Bacon")

	if err.Code != ErrCodeNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNotFound)
	}

	if err.Message != `person "Kevin Bacon" not found` {
		t.Errorf("Message = %v, want %v", err.Message, `person "Kevin Bacon" not found`)
	}

	expected := `NOT_FOUND: person "Kevin Bacon" not found`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidSource, cause, "failed to open")

	if err.Code != ErrCodeInvalidSource {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSource)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidPrecondition, "test"),
			code:     ErrCodeInvalidPrecondition,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeNotFound,
			expected: false,
		},
		{
			name:     "outermost code wins",
			err:      Wrap(ErrCodeInvalidSource, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidSource,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("resolve: %w", New(ErrCodeNotFound, "inner")),
			code:     ErrCodeNotFound,
			expected: true,
		},
		{
			name:     "coder",
			err:      fmt.Errorf("resolve: %w", codedError{}),
			code:     ErrCodeAmbiguous,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeNotConnected, "test"), ErrCodeNotConnected},
		{"coder", codedError{}, ErrCodeAmbiguous},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsReportable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeNotFound, "x"), true},
		{New(ErrCodeAmbiguous, "x"), true},
		{New(ErrCodeNotConnected, "x"), true},
		{codedError{}, true},
		{New(ErrCodeInvalidPrecondition, "x"), false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := IsReportable(tt.err); got != tt.want {
			t.Errorf("IsReportable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
