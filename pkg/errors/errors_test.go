package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnsupportedPlatform, "unsupported distribution")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeUnsupportedPlatform {
		t.Errorf("expected code %s, got %s", ErrCodeUnsupportedPlatform, err.Code)
	}
	if err.Message != "unsupported distribution" {
		t.Errorf("expected message 'unsupported distribution', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStepFailed, "step failed", cause)

	if err.Code != ErrCodeStepFailed {
		t.Errorf("expected code %s, got %s", ErrCodeStepFailed, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("exit status 1")
	ctx := map[string]interface{}{
		"step":    "nvidia",
		"command": "nvidia-smi",
	}

	err := WrapWithContext(ErrCodeStepFailed, "driver query failed", cause, ctx)

	if err.Code != ErrCodeStepFailed {
		t.Errorf("expected code %s, got %s", ErrCodeStepFailed, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["step"] != "nvidia" {
		t.Errorf("expected step to be nvidia")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "without cause",
			err:      New(ErrCodePrecondition, "insufficient disk space"),
			expected: "[PRECONDITION_FAILED] insufficient disk space",
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeTimeout, "ping probe", errors.New("deadline exceeded")),
			expected: "[TIMEOUT] ping probe: deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ErrCodePrecondition, "no network")); got != ErrCodePrecondition {
		t.Errorf("expected %s, got %s", ErrCodePrecondition, got)
	}

	// Code survives fmt.Errorf wrapping.
	wrapped := fmt.Errorf("provision: %w", New(ErrCodeStepFailed, "docker install"))
	if got := CodeOf(wrapped); got != ErrCodeStepFailed {
		t.Errorf("expected %s, got %s", ErrCodeStepFailed, got)
	}

	if got := CodeOf(errors.New("plain")); got != ErrCodeInternal {
		t.Errorf("expected %s for plain error, got %s", ErrCodeInternal, got)
	}
}
