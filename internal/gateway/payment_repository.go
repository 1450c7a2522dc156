package gateway

import (
	"context"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
)

type BillPaymentRepository interface {
	Create(ctx context.Context, payment *domain.BillPayment) error
	GetByReceipt(ctx context.Context, receiptNumber string) (*domain.BillPayment, error)
	ListByAccount(ctx context.Context, payerAccountID int64) ([]domain.BillPayment, error)

	WithTx(tx TransactionObject) BillPaymentRepository
}

type CreditCardRepository interface {
	Create(ctx context.Context, card *domain.CreditCard) error
	GetByID(ctx context.Context, id int64) (*domain.CreditCard, error)
	ListActiveByAccount(ctx context.Context, accountID int64) ([]domain.CreditCard, error)
	Save(ctx context.Context, card *domain.CreditCard) error

	WithTx(tx TransactionObject) CreditCardRepository
}
