package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

type ProcessBillPaymentInput struct {
	AccountID         int64
	BillerCode        string
	CustomerReference string
	Amount            decimal.Decimal
}

type BillPaymentUseCase struct {
	accounts  gateway.AccountRepository
	payments  gateway.BillPaymentRepository
	txManager gateway.TransactionManager
	cache     gateway.Cache
	publisher gateway.EventPublisher
}

func NewBillPayment(
	accounts gateway.AccountRepository,
	payments gateway.BillPaymentRepository,
	txManager gateway.TransactionManager,
	cache gateway.Cache,
	publisher gateway.EventPublisher,
) *BillPaymentUseCase {
	return &BillPaymentUseCase{
		accounts:  accounts,
		payments:  payments,
		txManager: txManager,
		cache:     cache,
		publisher: publisher,
	}
}

// Process debits the payer synchronously and writes the payment record with
// a fresh receipt number, all in one unit of work.
func (u *BillPaymentUseCase) Process(ctx context.Context, input ProcessBillPaymentInput) (*BillPaymentOutput, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var (
		account *domain.Account
		payment *domain.BillPayment
	)
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		return u.txManager.Run(ctx, func(txCtx context.Context) error {
			tx, err := txObjectFrom(txCtx)
			if err != nil {
				return err
			}
			accounts := u.accounts.WithTx(tx)
			payments := u.payments.WithTx(tx)

			acc, err := accounts.GetByID(txCtx, input.AccountID)
			if err != nil {
				return err
			}
			if err := acc.Debit(input.Amount); err != nil {
				return err
			}
			if err := accounts.Save(txCtx, acc); err != nil {
				return fmt.Errorf("saving account %d: %w", acc.ID, err)
			}

			pay := &domain.BillPayment{
				PayerAccountID:    acc.ID,
				BillerCode:        input.BillerCode,
				CustomerReference: input.CustomerReference,
				Amount:            input.Amount,
				ReceiptNumber:     domain.NewReference(domain.RefReceipt),
				PaymentDate:       time.Now(),
			}
			if err := payments.Create(txCtx, pay); err != nil {
				return fmt.Errorf("recording bill payment: %w", err)
			}

			account, payment = acc, pay
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	out := toBillPaymentOutput(payment, account.AccountNumber)
	invalidateAccount(ctx, u.cache, account)
	invalidate(ctx, u.cache, gateway.BillHistoryKey(account.ID))
	cacheStore(ctx, u.cache, gateway.ReceiptKey(payment.ReceiptNumber), out, gateway.ReceiptTTL)

	log.Info().
		Str("receipt", payment.ReceiptNumber).
		Str("biller", payment.BillerCode).
		Str("amount", input.Amount.StringFixed(2)).
		Msg("processed bill payment")
	publishEvent(ctx, u.publisher, gateway.EventPaymentProcessed, map[string]interface{}{
		"reference":    payment.ReceiptNumber,
		"type":         "BILL_PAYMENT",
		"from_account": account.AccountNumber,
		"biller":       payment.BillerCode,
		"amount":       input.Amount.StringFixed(2),
	})
	return out, nil
}

func (u *BillPaymentUseCase) GetByReceipt(ctx context.Context, receiptNumber string) (*BillPaymentOutput, error) {
	key := gateway.ReceiptKey(receiptNumber)
	var cached BillPaymentOutput
	if cacheLookup(ctx, u.cache, key, &cached) {
		return &cached, nil
	}

	payment, err := u.payments.GetByReceipt(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	account, err := u.accounts.GetByID(ctx, payment.PayerAccountID)
	if err != nil {
		return nil, err
	}

	out := toBillPaymentOutput(payment, account.AccountNumber)
	cacheStore(ctx, u.cache, key, out, gateway.ReceiptTTL)
	return out, nil
}

func (u *BillPaymentUseCase) History(ctx context.Context, accountID int64) ([]BillPaymentOutput, error) {
	key := gateway.BillHistoryKey(accountID)
	var cached []BillPaymentOutput
	if cacheLookup(ctx, u.cache, key, &cached) {
		return cached, nil
	}

	account, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	payments, err := u.payments.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out := make([]BillPaymentOutput, 0, len(payments))
	for i := range payments {
		out = append(out, *toBillPaymentOutput(&payments[i], account.AccountNumber))
	}
	cacheStore(ctx, u.cache, key, out, gateway.RecentTxnsTTL)
	return out, nil
}
