package tracker

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	ErrValidation        = errors.New("validation failed")
	ErrOutOfRange        = errors.New("day index out of range")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrNotStarted        = fmt.Errorf("%w: challenge has not started", ErrInvalidOperation)
	ErrChallengeComplete = errors.New("challenge is complete")
	ErrItemNotFound      = errors.New("item not found")
	ErrInconsistentState = errors.New("inconsistent challenge state")
	ErrLedgerOutOfSync   = errors.New("ledger does not match day sequence")
)

// ValidationError describes rejected user input. State is never modified
// when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
