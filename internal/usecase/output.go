package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
)

// Output DTOs keep the HTTP boundary decoupled from the entities.

type AccountOutput struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	UserID        int64           `json:"user_id"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type TransactionOutput struct {
	ID                  int64           `json:"id"`
	Reference           string          `json:"reference"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type"`
	Status              string          `json:"status"`
	SourceAccountID     int64           `json:"source_account_id"`
	TargetAccountID     *int64          `json:"target_account_id,omitempty"`
	SourceAccountNumber string          `json:"source_account_number,omitempty"`
	TargetAccountNumber string          `json:"target_account_number,omitempty"`
	Description         string          `json:"description,omitempty"`
	Timestamp           time.Time       `json:"timestamp"`
}

type WireTransferOutput struct {
	ID                     int64           `json:"id"`
	SenderAccountID        int64           `json:"sender_account_id"`
	RecipientBankCode      string          `json:"recipient_bank_code"`
	RecipientAccountNumber string          `json:"recipient_account_number"`
	RecipientName          string          `json:"recipient_name"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               string          `json:"currency"`
	ReferenceNumber        string          `json:"reference_number"`
	Status                 string          `json:"status"`
	InitiatedAt            time.Time       `json:"initiated_at"`
	CompletedAt            *time.Time      `json:"completed_at,omitempty"`
}

type BillPaymentOutput struct {
	ID                int64           `json:"id"`
	ReceiptNumber     string          `json:"receipt_number"`
	AccountNumber     string          `json:"account_number"`
	BillerCode        string          `json:"biller_code"`
	CustomerReference string          `json:"customer_reference,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentDate       time.Time       `json:"payment_date"`
}

type CreditCardOutput struct {
	ID               int64           `json:"id"`
	CardNumber       string          `json:"card_number"`
	CardHolderName   string          `json:"card_holder_name"`
	ExpiryDate       time.Time       `json:"expiry_date"`
	CardType         string          `json:"card_type"`
	AccountID        int64           `json:"account_id"`
	Active           bool            `json:"active"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
}

func toAccountOutput(a *domain.Account) *AccountOutput {
	return &AccountOutput{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountName:   a.AccountName,
		Balance:       a.Balance,
		Currency:      a.Currency,
		UserID:        a.UserID,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
	}
}

func toTransactionOutput(t *domain.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:              t.ID,
		Reference:       t.Reference,
		Amount:          t.Amount,
		Type:            string(t.Type),
		Status:          string(t.Status),
		SourceAccountID: t.SourceAccountID,
		TargetAccountID: t.TargetAccountID,
		Description:     t.Description,
		Timestamp:       t.Timestamp,
	}
}

func toWireTransferOutput(w *domain.WireTransfer) *WireTransferOutput {
	return &WireTransferOutput{
		ID:                     w.ID,
		SenderAccountID:        w.SenderAccountID,
		RecipientBankCode:      w.RecipientBankCode,
		RecipientAccountNumber: w.RecipientAccountNumber,
		RecipientName:          w.RecipientName,
		Amount:                 w.Amount,
		Currency:               w.Currency,
		ReferenceNumber:        w.ReferenceNumber,
		Status:                 string(w.Status),
		InitiatedAt:            w.InitiatedAt,
		CompletedAt:            w.CompletedAt,
	}
}

func toBillPaymentOutput(p *domain.BillPayment, accountNumber string) *BillPaymentOutput {
	return &BillPaymentOutput{
		ID:                p.ID,
		ReceiptNumber:     p.ReceiptNumber,
		AccountNumber:     accountNumber,
		BillerCode:        p.BillerCode,
		CustomerReference: p.CustomerReference,
		Amount:            p.Amount,
		PaymentDate:       p.PaymentDate,
	}
}

func toCreditCardOutput(c *domain.CreditCard) *CreditCardOutput {
	return &CreditCardOutput{
		ID:               c.ID,
		CardNumber:       c.CardNumber,
		CardHolderName:   c.CardHolderName,
		ExpiryDate:       c.ExpiryDate,
		CardType:         string(c.CardType),
		AccountID:        c.AccountID,
		Active:           c.Active,
		CreditLimit:      c.CreditLimit,
		AvailableBalance: c.AvailableBalance,
	}
}
