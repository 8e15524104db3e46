package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrEmployeeNotFound    = fmt.Errorf("employee: %w", ErrRecordNotFound)
	ErrNGONotFound         = fmt.Errorf("ngo: %w", ErrRecordNotFound)
	ErrProjectNotFound     = fmt.Errorf("project: %w", ErrRecordNotFound)
	ErrActivityNotFound    = fmt.Errorf("activity: %w", ErrRecordNotFound)
	ErrNotAParticipant     = errors.New("employee is not a participant of this project")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrActivityUnavailable = errors.New("activity is not available")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrForbidden           = errors.New("permission denied")
	ErrUnknownPrincipal    = errors.New("no employee or ngo linked to this user")
)

// InsufficientBalanceError reports a debit larger than the points available.
type InsufficientBalanceError struct {
	Required  int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %d XP, have %d XP", e.Required, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
