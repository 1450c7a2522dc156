package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillPayment debits the payer synchronously at processing time, unlike a
// wire transfer. Immutable once persisted.
type BillPayment struct {
	ID                int64
	PayerAccountID    int64
	BillerCode        string
	CustomerReference string
	Amount            decimal.Decimal
	ReceiptNumber     string
	PaymentDate       time.Time
}
