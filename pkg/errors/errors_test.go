package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidVariant, "unknown variant: %s", "grid")

	if err.Code != ErrCodeInvalidVariant {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidVariant)
	}

	if err.Message != "unknown variant: grid" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown variant: grid")
	}

	expected := "INVALID_VARIANT: unknown variant: grid"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidConfig, cause, "decode padd.toml")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
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
			err:      New(ErrCodeInvalidUnit, "test"),
			code:     ErrCodeInvalidUnit,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidUnit, "test"),
			code:     ErrCodeInvalidFormat,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidUnit, "inner"), "outer"),
			code:     ErrCodeInvalidConfig,
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
		{"Error type", New(ErrCodeInvalidFormat, "test"), ErrCodeInvalidFormat},
		{"field error", Field("xgrid.gap", -1, "must be positive"), ErrCodeInvalidConfig},
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

func TestFieldError(t *testing.T) {
	err := Field("base_unit", 32, "must be between %d and %d", 1, 16)

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As(*FieldError) = false, want true")
	}
	if fe.Field != "base_unit" {
		t.Errorf("Field = %q, want %q", fe.Field, "base_unit")
	}
	if fe.Code() != ErrCodeInvalidConfig {
		t.Errorf("Code() = %v, want %v", fe.Code(), ErrCodeInvalidConfig)
	}
	if !strings.Contains(err.Error(), "got 32") {
		t.Errorf("Error() = %q, want it to mention the value", err.Error())
	}

	noValue := &FieldError{Field: "xgrid", Message: "missing"}
	if noValue.Error() != "xgrid: missing" {
		t.Errorf("Error() = %q, want %q", noValue.Error(), "xgrid: missing")
	}
}
