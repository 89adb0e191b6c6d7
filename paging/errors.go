package paging

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Configuration errors
	ErrCodeInvalidFrameCount
	ErrCodeInvalidPageCount
	ErrCodeEmptySequence
	ErrCodePageOutOfRange
	ErrCodeUnknownPolicy
	ErrCodeInvalidReference

	// Run errors
	ErrCodeSequenceExhausted
	ErrCodeInvalidVictim

	// Trace errors
	ErrCodeTraceCorrupted
)

// String returns a short name for the error code
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeInternal:
		return "internal"
	case ErrCodeInvalidFrameCount:
		return "invalid frame count"
	case ErrCodeInvalidPageCount:
		return "invalid page count"
	case ErrCodeEmptySequence:
		return "empty sequence"
	case ErrCodePageOutOfRange:
		return "page out of range"
	case ErrCodeUnknownPolicy:
		return "unknown policy"
	case ErrCodeInvalidReference:
		return "invalid reference"
	case ErrCodeSequenceExhausted:
		return "sequence exhausted"
	case ErrCodeInvalidVictim:
		return "invalid victim"
	case ErrCodeTraceCorrupted:
		return "trace corrupted"
	default:
		return "unknown"
	}
}

// SimError represents a simulation error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulation error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Sentinels for errors.Is; matching is by code only.
var (
	ErrPageOutOfRange    = &SimError{Code: ErrCodePageOutOfRange, Message: "page out of range"}
	ErrUnknownPolicy     = &SimError{Code: ErrCodeUnknownPolicy, Message: "unknown policy"}
	ErrSequenceExhausted = &SimError{Code: ErrCodeSequenceExhausted, Message: "sequence exhausted"}
	ErrTraceCorrupted    = &SimError{Code: ErrCodeTraceCorrupted, Message: "trace corrupted"}
)

// Helper functions for common errors

func ErrInvalidFrameCount(op string, frames int) *SimError {
	return NewSimError(
		ErrCodeInvalidFrameCount,
		op,
		fmt.Sprintf("frame count must be positive, got %d", frames),
		nil,
	)
}

func ErrInvalidPageCount(op string, pages int) *SimError {
	return NewSimError(
		ErrCodeInvalidPageCount,
		op,
		fmt.Sprintf("page count must be positive, got %d", pages),
		nil,
	)
}

func ErrEmptySequence(op string) *SimError {
	return NewSimError(
		ErrCodeEmptySequence,
		op,
		"reference sequence is empty",
		nil,
	)
}

func ErrPageIDOutOfRange(op string, pageID PageID, pages int) *SimError {
	return NewSimError(
		ErrCodePageOutOfRange,
		op,
		fmt.Sprintf("page %d outside universe [0, %d)", pageID, pages),
		nil,
	)
}

func ErrPolicyUnknown(op string, name string) *SimError {
	return NewSimError(
		ErrCodeUnknownPolicy,
		op,
		fmt.Sprintf("unknown replacement policy %q (must be FIFO, LRU, MRU or OPT)", name),
		nil,
	)
}

func ErrBadReference(op string, token string, err error) *SimError {
	return NewSimError(
		ErrCodeInvalidReference,
		op,
		fmt.Sprintf("invalid page reference %q", token),
		err,
	)
}

func ErrExhausted(op string, length int) *SimError {
	return NewSimError(
		ErrCodeSequenceExhausted,
		op,
		fmt.Sprintf("all %d references already consumed", length),
		nil,
	)
}

func ErrVictimNotOccupied(op string, alg Algorithm, frame int) *SimError {
	return NewSimError(
		ErrCodeInvalidVictim,
		op,
		fmt.Sprintf("%s replacer selected frame %d which is not occupied", alg, frame),
		nil,
	)
}

func ErrTraceCorrupt(op string, reason string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceCorrupted,
		op,
		reason,
		err,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}

// IsConfigurationError reports whether err was raised while validating a
// run's setup, before any step executed.
func IsConfigurationError(err error) bool {
	switch GetErrorCode(err) {
	case ErrCodeInvalidFrameCount, ErrCodeInvalidPageCount, ErrCodeEmptySequence,
		ErrCodePageOutOfRange, ErrCodeUnknownPolicy, ErrCodeInvalidReference:
		return true
	}
	return false
}
