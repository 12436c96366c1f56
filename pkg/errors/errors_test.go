package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := NewError(ErrorTypeNotFound, "container gone")
	if err.Error() != "not_found: container gone" {
		t.Errorf("Unexpected message: %q", err.Error())
	}

	withCause := NewError(ErrorTypeUnavailable, "consul register failed").
		WithCause(errors.New("connection refused"))
	want := "unavailable: consul register failed: connection refused"
	if withCause.Error() != want {
		t.Errorf("Expected %q, got %q", want, withCause.Error())
	}
}

func TestError_Is(t *testing.T) {
	err := NewError(ErrorTypeNotFound, "container gone")

	if !errors.Is(err, NewError(ErrorTypeNotFound, "anything")) {
		t.Error("Expected errors of the same type to match")
	}
	if errors.Is(err, NewError(ErrorTypeUnavailable, "anything")) {
		t.Error("Expected errors of different types not to match")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewError(ErrorTypeUnavailable, "daemon unreachable").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("Expected the cause to be reachable via errors.Is")
	}
}

func TestIsNotFound(t *testing.T) {
	base := NewError(ErrorTypeNotFound, "container gone")

	if !IsNotFound(base) {
		t.Error("Expected direct not_found to match")
	}
	if !IsNotFound(fmt.Errorf("inspect: %w", base)) {
		t.Error("Expected wrapped not_found to match")
	}
	if IsNotFound(NewError(ErrorTypeUnavailable, "down")) {
		t.Error("Expected unavailable not to match")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("Expected plain error not to match")
	}
	if IsNotFound(nil) {
		t.Error("Expected nil not to match")
	}
}

func TestError_WithDetail(t *testing.T) {
	err := NewError(ErrorTypeUnavailable, "consul register failed").
		WithDetail("service_id", "web-host:web.1:8080")

	if err.Details["service_id"] != "web-host:web.1:8080" {
		t.Errorf("Expected detail to be recorded, got %v", err.Details)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Expected nil wrap to stay nil")
	}

	base := errors.New("boom")
	wrapped := Wrap(base, "while registering")
	if !errors.Is(wrapped, base) {
		t.Error("Expected the wrapped error to unwrap to the base")
	}
}
