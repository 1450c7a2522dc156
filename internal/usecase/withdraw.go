package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

type WithdrawInput struct {
	AccountID   int64
	Amount      decimal.Decimal
	Description string
}

type WithdrawUseCase struct {
	accounts     gateway.AccountRepository
	transactions gateway.TransactionRepository
	txManager    gateway.TransactionManager
	cache        gateway.Cache
	publisher    gateway.EventPublisher
}

func NewWithdraw(
	accounts gateway.AccountRepository,
	transactions gateway.TransactionRepository,
	txManager gateway.TransactionManager,
	cache gateway.Cache,
	publisher gateway.EventPublisher,
) *WithdrawUseCase {
	return &WithdrawUseCase{
		accounts:     accounts,
		transactions: transactions,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
	}
}

func (u *WithdrawUseCase) Execute(ctx context.Context, input WithdrawInput) (*TransactionOutput, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var (
		account *domain.Account
		record  *domain.Transaction
	)
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		return u.txManager.Run(ctx, func(txCtx context.Context) error {
			tx, err := txObjectFrom(txCtx)
			if err != nil {
				return err
			}
			accounts := u.accounts.WithTx(tx)
			transactions := u.transactions.WithTx(tx)

			acc, err := accounts.GetByID(txCtx, input.AccountID)
			if err != nil {
				return err
			}
			// Debit rejects inactive accounts and balances below the amount,
			// leaving the balance untouched.
			if err := acc.Debit(input.Amount); err != nil {
				return err
			}
			if err := accounts.Save(txCtx, acc); err != nil {
				return fmt.Errorf("saving account %d: %w", acc.ID, err)
			}

			record = &domain.Transaction{
				Amount:          input.Amount,
				Type:            domain.TypeWithdrawal,
				Status:          domain.TxCompleted,
				Reference:       domain.NewReference(domain.RefTransaction),
				SourceAccountID: acc.ID,
				Description:     input.Description,
			}
			if err := transactions.Create(txCtx, record); err != nil {
				return fmt.Errorf("recording withdrawal: %w", err)
			}
			account = acc
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	invalidateAccount(ctx, u.cache, account)
	log.Info().
		Str("reference", record.Reference).
		Int64("account_id", account.ID).
		Str("amount", input.Amount.StringFixed(2)).
		Msg("processed withdrawal")
	publishEvent(ctx, u.publisher, gateway.EventTransactionCompleted, map[string]interface{}{
		"reference":    record.Reference,
		"type":         string(record.Type),
		"from_account": account.AccountNumber,
		"amount":       input.Amount.StringFixed(2),
		"status":       string(record.Status),
	})

	out := toTransactionOutput(record)
	out.SourceAccountNumber = account.AccountNumber
	return out, nil
}
