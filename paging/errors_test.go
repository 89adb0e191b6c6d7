package paging

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSimError(t *testing.T) {
	err := NewSimError(
		ErrCodePageOutOfRange,
		"Step",
		"page out of range",
		nil,
	)

	if err.Code != ErrCodePageOutOfRange {
		t.Errorf("Expected error code %d, got %d", ErrCodePageOutOfRange, err.Code)
	}

	expected := "Step: page out of range"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestSimErrorWithUnderlying(t *testing.T) {
	underlying := fmt.Errorf("strconv failed")
	err := ErrBadReference("ParseReferenceString", "x", underlying)

	if errors.Unwrap(err) != underlying {
		t.Error("Unwrap did not return underlying error")
	}

	expected := `ParseReferenceString: invalid page reference "x": strconv failed`
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestSimErrorWithoutOp(t *testing.T) {
	err := NewSimError(ErrCodeInternal, "", "broken", nil)
	if err.Error() != "broken" {
		t.Errorf("Expected 'broken', got '%s'", err.Error())
	}

	err = NewSimError(ErrCodeInternal, "", "broken", fmt.Errorf("cause"))
	if err.Error() != "broken: cause" {
		t.Errorf("Expected 'broken: cause', got '%s'", err.Error())
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      *SimError
		code     ErrorCode
		contains string
		config   bool
	}{
		{"InvalidFrameCount", ErrInvalidFrameCount("test", 0), ErrCodeInvalidFrameCount, "got 0", true},
		{"InvalidPageCount", ErrInvalidPageCount("test", -3), ErrCodeInvalidPageCount, "got -3", true},
		{"EmptySequence", ErrEmptySequence("test"), ErrCodeEmptySequence, "empty", true},
		{"PageOutOfRange", ErrPageIDOutOfRange("test", 12, 10), ErrCodePageOutOfRange, "page 12 outside universe [0, 10)", true},
		{"UnknownPolicy", ErrPolicyUnknown("test", "LFU"), ErrCodeUnknownPolicy, `"LFU"`, true},
		{"BadReference", ErrBadReference("test", "a", nil), ErrCodeInvalidReference, `"a"`, true},
		{"Exhausted", ErrExhausted("test", 6), ErrCodeSequenceExhausted, "all 6 references", false},
		{"VictimNotOccupied", ErrVictimNotOccupied("test", LRU, 4), ErrCodeInvalidVictim, "frame 4", false},
		{"TraceCorrupt", ErrTraceCorrupt("test", "bad magic", nil), ErrCodeTraceCorrupted, "bad magic", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, tt.err.Code)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("Expected '%s' in '%s'", tt.contains, tt.err.Error())
			}
			if IsConfigurationError(tt.err) != tt.config {
				t.Errorf("Expected configuration error %v for %s", tt.config, tt.code)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := ErrExhausted("Step", 3)
	if !errors.Is(err, ErrSequenceExhausted) {
		t.Error("Expected errors.Is to match by code")
	}
	if errors.Is(err, ErrUnknownPolicy) {
		t.Error("Expected errors.Is not to match a different code")
	}

	wrapped := fmt.Errorf("driver: %w", ErrPolicyUnknown("Parse", "X"))
	if !errors.Is(wrapped, ErrUnknownPolicy) {
		t.Error("Expected errors.Is to see through wrapping")
	}
	if GetErrorCode(wrapped) != ErrCodeUnknownPolicy {
		t.Errorf("Expected code through wrapping, got %s", GetErrorCode(wrapped))
	}
	if !IsConfigurationError(wrapped) {
		t.Error("Expected wrapped policy error to be a configuration error")
	}
}

func TestGetErrorCodeOfForeignError(t *testing.T) {
	if code := GetErrorCode(fmt.Errorf("plain")); code != ErrCodeUnknown {
		t.Errorf("Expected unknown code, got %s", code)
	}
	if IsErrorCode(nil, ErrCodeInternal) {
		t.Error("nil error must not match a code")
	}
}
