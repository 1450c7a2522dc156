package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

type DepositInput struct {
	AccountID   int64
	Amount      decimal.Decimal
	Description string
}

type DepositUseCase struct {
	accounts     gateway.AccountRepository
	transactions gateway.TransactionRepository
	txManager    gateway.TransactionManager
	cache        gateway.Cache
	publisher    gateway.EventPublisher
}

func NewDeposit(
	accounts gateway.AccountRepository,
	transactions gateway.TransactionRepository,
	txManager gateway.TransactionManager,
	cache gateway.Cache,
	publisher gateway.EventPublisher,
) *DepositUseCase {
	return &DepositUseCase{
		accounts:     accounts,
		transactions: transactions,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
	}
}

func (u *DepositUseCase) Execute(ctx context.Context, input DepositInput) (*TransactionOutput, error) {
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
			if err := acc.Credit(input.Amount); err != nil {
				return err
			}
			if err := accounts.Save(txCtx, acc); err != nil {
				return fmt.Errorf("saving account %d: %w", acc.ID, err)
			}

			record = &domain.Transaction{
				Amount:          input.Amount,
				Type:            domain.TypeDeposit,
				Status:          domain.TxCompleted,
				Reference:       domain.NewReference(domain.RefTransaction),
				SourceAccountID: acc.ID,
				Description:     input.Description,
			}
			if err := transactions.Create(txCtx, record); err != nil {
				return fmt.Errorf("recording deposit: %w", err)
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
		Msg("processed deposit")
	publishEvent(ctx, u.publisher, gateway.EventTransactionCompleted, map[string]interface{}{
		"reference":  record.Reference,
		"type":       string(record.Type),
		"to_account": account.AccountNumber,
		"amount":     input.Amount.StringFixed(2),
		"status":     string(record.Status),
	})

	out := toTransactionOutput(record)
	out.SourceAccountNumber = account.AccountNumber
	return out, nil
}
