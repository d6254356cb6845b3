package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotFound is returned when a client id does not reference an existing client.
	ErrClientNotFound = errors.New("client not found")

	// ErrTransactionNotFound is returned when a transaction id is unknown to the store.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// ValidationError reports the first input field that failed validation.
// A rejected input never reaches the store, so a ValidationError implies
// no state change.
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

// PersistenceError signals that a snapshot round-trip with the durable
// store failed. An in-memory mutation that already succeeded is not rolled
// back when the subsequent save fails; callers decide whether to retry.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
