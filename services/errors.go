package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors, matched with errors.Is. Structured errors below unwrap
// to one of these so the API layer can map everything in one place.
var (
	// ErrInvalidInput covers malformed, missing, or out-of-range fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState is returned when an operation is not valid for the
	// current room or occupation status.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound is returned when a room, guest, occupation, or line-item
	// index does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrBalanceNotCleared blocks checkout while a positive balance remains.
	ErrBalanceNotCleared = errors.New("balance not cleared")

	// ErrDuplicate is returned when a unique field (room number, guest id
	// number) collides with an existing record.
	ErrDuplicate = errors.New("already exists")

	// ErrUnauthorized covers bad credentials and invalid or expired tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// PaymentTooLargeError rejects a payment that would drive the balance below
// zero. MaxAmount is the largest payment currently accepted.
type PaymentTooLargeError struct {
	MaxAmount decimal.Decimal
}

func (e *PaymentTooLargeError) Error() string {
	return fmt.Sprintf("Payment amount exceeds current balance ($%s)", e.MaxAmount.StringFixed(2))
}

func (e *PaymentTooLargeError) Unwrap() error { return ErrInvalidInput }

// BalanceNotClearedError blocks checkout and carries the outstanding amount.
type BalanceNotClearedError struct {
	Balance decimal.Decimal
}

func (e *BalanceNotClearedError) Error() string {
	return fmt.Sprintf("Cannot check out with pending balance ($%s)", e.Balance.StringFixed(2))
}

func (e *BalanceNotClearedError) Unwrap() error { return ErrBalanceNotCleared }
