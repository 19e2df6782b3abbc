package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad value: %s", "x")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "bad value: x" {
		t.Errorf("Message = %q, want %q", err.Message, "bad value: x")
	}
	if got, want := err.Error(), "INVALID_INPUT: bad value: x"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch index")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if got, want := err.Error(), "NETWORK_ERROR: fetch index: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeCycle, "cycle detected")

	if !Is(err, ErrCodeCycle) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeCycle) {
		t.Error("Is() = true for a plain error")
	}
	if Is(nil, ErrCodeCycle) {
		t.Error("Is() = true for nil")
	}
}

func TestIs_Wrapped(t *testing.T) {
	inner := New(ErrCodePackageNotFound, "missing")
	outer := fmt.Errorf("query source: %w", inner)

	if !Is(outer, ErrCodePackageNotFound) {
		t.Error("Is() should unwrap through fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeTimeout)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidDepth, "depth too small")); got != "depth too small" {
		t.Errorf("UserMessage() = %q, want %q", got, "depth too small")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}
