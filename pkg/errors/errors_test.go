package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "missing required field %q", "package_name")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidConfig)
	}
	want := `INVALID_CONFIG: missing required field "package_name"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch APKINDEX")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if got := err.Error(); got != "NETWORK_ERROR: fetch APKINDEX: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeOutputWrite, "write diagram")
	wrapped := fmt.Errorf("pipeline: %w", err)

	if !Is(wrapped, ErrCodeOutputWrite) {
		t.Error("Is() should find code through wrapping")
	}
	if Is(wrapped, ErrCodeNetwork) {
		t.Error("Is() matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is() matched a plain error")
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeConfigNotFound, true},
		{ErrCodeInvalidConfig, true},
		{ErrCodeOutputWrite, true},
		{ErrCodeNetwork, false},
		{ErrCodeTimeout, false},
		{ErrCodePackageNotFound, false},
		{ErrCodeBadIndex, false},
	}
	for _, tt := range tests {
		if got := IsFatal(New(tt.code, "x")); got != tt.want {
			t.Errorf("IsFatal(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
	if IsFatal(stderrors.New("plain")) {
		t.Error("IsFatal(plain error) = true, want false")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeConfigNotFound, "config file config.toml not found")
	if got := UserMessage(err); got != "config file config.toml not found" {
		t.Errorf("UserMessage() = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
