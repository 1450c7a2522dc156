package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account is the source of truth for a balance. The account number is
// immutable after creation; balance mutation happens only through Debit and
// Credit, and every save is guarded by the optimistic Version counter.
type Account struct {
	ID            int64
	AccountNumber string // unique, 10-20 digits, never updated
	AccountName   string
	Balance       decimal.Decimal
	Currency      string // three-letter code
	UserID        int64
	Status        AccountStatus
	Version       int32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}

// Debit subtracts amount from the balance. Insufficient balance is defined as
// balance < amount under exact decimal comparison.
func (a *Account) Debit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}
