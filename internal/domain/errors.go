package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors: the request can never succeed as sent.
	ErrInvalidAmount    = errors.New("amount must be a positive value with at most two decimal places")
	ErrSameAccount      = errors.New("cannot transfer to the same account")
	ErrCurrencyMismatch = errors.New("currency does not match account currency")
	ErrAccountNotActive = errors.New("account is not active")
	ErrInvalidCurrency  = errors.New("currency must be a three-letter code")

	// Not found.
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransferNotFound    = errors.New("wire transfer not found")
	ErrPaymentNotFound     = errors.New("bill payment not found")
	ErrCardNotFound        = errors.New("credit card not found")

	// State conflicts: retryable after a refetch.
	ErrVersionConflict      = errors.New("account was modified concurrently")
	ErrIllegalTransferState = errors.New("wire transfer is not in the expected state")

	// Business-rule rejections.
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientCredit  = errors.New("insufficient available credit")
	ErrTransferExpired     = errors.New("wire transfer completion window has expired")
	ErrNotReversible       = errors.New("transaction is not eligible for reversal")
	ErrCardNotActive       = errors.New("credit card is not active")
)

// ErrorKind classifies domain errors for the boundary layer.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindBusinessRule
	KindFatal
)

// FatalError marks an inconsistency that requires manual reconciliation.
// It must never be retried automatically.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("reconciliation required: %v", e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps err as a reconciliation-grade inconsistency.
func Fatal(err error) error {
	return &FatalError{Err: err}
}

// Kind maps an error to its taxonomy class, unwrapping as needed.
func Kind(err error) ErrorKind {
	var fatal *FatalError
	if errors.As(err, &fatal) {
		return KindFatal
	}
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrSameAccount),
		errors.Is(err, ErrCurrencyMismatch),
		errors.Is(err, ErrAccountNotActive),
		errors.Is(err, ErrInvalidCurrency):
		return KindValidation
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrTransferNotFound),
		errors.Is(err, ErrPaymentNotFound),
		errors.Is(err, ErrCardNotFound):
		return KindNotFound
	case errors.Is(err, ErrVersionConflict),
		errors.Is(err, ErrIllegalTransferState):
		return KindConflict
	case errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrInsufficientCredit),
		errors.Is(err, ErrTransferExpired),
		errors.Is(err, ErrNotReversible),
		errors.Is(err, ErrCardNotActive):
		return KindBusinessRule
	default:
		return KindUnknown
	}
}
