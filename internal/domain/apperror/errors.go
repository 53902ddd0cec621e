// Package apperror defines the error taxonomy of the decision engine.
//
// Rejections (blacklist, duplicate) and validation failures are terminal and
// carry a reason the caller can surface to the applicant. Store and network
// failures outside that set are wrapped as SystemError with a correlation
// identifier for support. Verification-service outages are not represented
// here at all: they are recovered locally via the checksum fallback.
package apperror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for terminal rejections. Callers wrap these with
// fmt.Errorf("...: %w", ...) to attach detail; errors.Is still matches.
var (
	// ErrBlacklisted rejects an applicant found on an active blacklist entry.
	ErrBlacklisted = errors.New("applicant is blacklisted")

	// ErrDuplicateApplication rejects a resubmission while an open record
	// exists or within the 24h cool-down window.
	ErrDuplicateApplication = errors.New("duplicate application")

	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")
)

// ValidationError reports malformed caller input. Terminal: the caller must
// correct the input and resubmit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// SystemError wraps an unexpected store or network failure with a correlation
// identifier the caller can hand to support.
type SystemError struct {
	CorrelationID uuid.UUID
	Op            string
	Err           error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("%s failed (correlation %s): %v", e.Op, e.CorrelationID, e.Err)
}

func (e *SystemError) Unwrap() error { return e.Err }

// NewSystemError wraps err with a fresh correlation identifier.
func NewSystemError(op string, err error) *SystemError {
	return &SystemError{CorrelationID: uuid.New(), Op: op, Err: err}
}

// IsRejection reports whether err is a terminal intake rejection.
func IsRejection(err error) bool {
	return errors.Is(err, ErrBlacklisted) || errors.Is(err, ErrDuplicateApplication)
}
