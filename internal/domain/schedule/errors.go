package schedule

import (
	"errors"
	"fmt"
)

// ValidationError: malformed input, caller's fault, never retried.
type ValidationError struct {
	Code   string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func ErrValidation(code, detail string) error {
	return &ValidationError{Code: code, Detail: detail}
}

// SlotConflictError: expected contention. The caller should re-query
// open slots and retry with a different interval, never the same one.
type SlotConflictError struct {
	CompanionID uint
	BookingID   uint
	Interval    Interval
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf(
		"slot %s already taken by booking %d",
		e.Interval, e.BookingID,
	)
}

// InvalidTransitionError names the current and the requested status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %q to %q", e.From, e.To)
}

// PersistenceError wraps a storage failure. Reservation writes are
// never retried silently: a retry could mask a conflict.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func ErrPersistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsSlotConflict(err error) bool {
	var ce *SlotConflictError
	return errors.As(err, &ce)
}

func IsInvalidTransition(err error) bool {
	var te *InvalidTransitionError
	return errors.As(err, &te)
}
