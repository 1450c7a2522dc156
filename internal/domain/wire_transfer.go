package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferCanceled  TransferStatus = "CANCELED"
)

// CompletionWindow is how long a PENDING wire transfer stays completable,
// measured from initiation. Checked lazily at completion time.
const CompletionWindow = 24 * time.Hour

// WireTransfer is a deferred-debit movement: initiation records intent and
// validates funds, but the sender is debited only at completion. Crediting
// the recipient is the external bank rail's problem.
type WireTransfer struct {
	ID                     int64
	SenderAccountID        int64
	RecipientBankCode      string
	RecipientAccountNumber string
	RecipientName          string
	Amount                 decimal.Decimal
	Currency               string
	ReferenceNumber        string
	Status                 TransferStatus
	InitiatedAt            time.Time
	CompletedAt            *time.Time
}

// CanComplete reports whether the transfer may be completed at now.
// An expired transfer stays PENDING; expiry is a terminal rejection, not a
// state change.
func (w *WireTransfer) CanComplete(now time.Time) error {
	if w.Status != TransferPending {
		return ErrIllegalTransferState
	}
	if w.InitiatedAt.Before(now.Add(-CompletionWindow)) {
		return ErrTransferExpired
	}
	return nil
}

// CanCancel allows cancellation only while PENDING.
func (w *WireTransfer) CanCancel() error {
	if w.Status != TransferPending {
		return ErrIllegalTransferState
	}
	return nil
}
