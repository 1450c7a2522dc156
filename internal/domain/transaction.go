package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeTransfer   TransactionType = "TRANSFER"
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypePayment    TransactionType = "PAYMENT"
	TypeReversal   TransactionType = "REVERSAL"
)

type TransactionStatus string

const (
	TxPending   TransactionStatus = "PENDING"
	TxCompleted TransactionStatus = "COMPLETED"
	TxFailed    TransactionStatus = "FAILED"
	// TxReversed is terminal: a reversed transfer cannot be reversed again.
	TxReversed TransactionStatus = "REVERSED"
)

// ReversalWindow is how long after completion a transfer stays reversible.
const ReversalWindow = 30 * 24 * time.Hour

// Transaction is an immutable record of a money movement. A reversal is a
// first-class independent record referencing its original through a derived
// reference, never a mutation of the original row (the original only flips
// status to REVERSED).
type Transaction struct {
	ID              int64
	Amount          decimal.Decimal
	Type            TransactionType
	Status          TransactionStatus
	Reference       string
	SourceAccountID int64
	TargetAccountID *int64 // nil for single-account movements
	Description     string
	Timestamp       time.Time
}

// CanReverse reports whether the transaction is eligible for reversal at now:
// it must be a COMPLETED TRANSFER no older than the reversal window.
func (t *Transaction) CanReverse(now time.Time) error {
	if t.Type != TypeTransfer {
		return ErrNotReversible
	}
	if t.Status != TxCompleted {
		return ErrNotReversible
	}
	if t.Timestamp.Before(now.Add(-ReversalWindow)) {
		return ErrNotReversible
	}
	return nil
}
