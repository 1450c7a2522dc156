package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

// TransferRequest moves funds between two internal accounts addressed by
// account number.
type TransferRequest struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	Description string
}

type TransferFundsUseCase struct {
	accounts     gateway.AccountRepository
	transactions gateway.TransactionRepository
	txManager    gateway.TransactionManager
	cache        gateway.Cache
	publisher    gateway.EventPublisher
}

func NewTransferFunds(
	accounts gateway.AccountRepository,
	transactions gateway.TransactionRepository,
	txManager gateway.TransactionManager,
	cache gateway.Cache,
	publisher gateway.EventPublisher,
) *TransferFundsUseCase {
	return &TransferFundsUseCase{
		accounts:     accounts,
		transactions: transactions,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
	}
}

// Execute transfers by account number.
func (u *TransferFundsUseCase) Execute(ctx context.Context, req TransferRequest) (*TransactionOutput, error) {
	return u.transfer(ctx, req.Amount, req.Description,
		func(ctx context.Context, accounts gateway.AccountRepository) (*domain.Account, *domain.Account, error) {
			source, err := accounts.GetByNumber(ctx, req.FromAccount)
			if err != nil {
				return nil, nil, err
			}
			target, err := accounts.GetByNumber(ctx, req.ToAccount)
			if err != nil {
				return nil, nil, err
			}
			return source, target, nil
		})
}

// ExecuteByID transfers between accounts addressed by internal id.
func (u *TransferFundsUseCase) ExecuteByID(ctx context.Context, sourceID, targetID int64, amount decimal.Decimal) (*TransactionOutput, error) {
	return u.transfer(ctx, amount, "",
		func(ctx context.Context, accounts gateway.AccountRepository) (*domain.Account, *domain.Account, error) {
			source, err := accounts.GetByID(ctx, sourceID)
			if err != nil {
				return nil, nil, err
			}
			target, err := accounts.GetByID(ctx, targetID)
			if err != nil {
				return nil, nil, err
			}
			return source, target, nil
		})
}

type loadPair func(ctx context.Context, accounts gateway.AccountRepository) (*domain.Account, *domain.Account, error)

// transfer runs the debit/credit/record protocol inside one unit of work.
// Both account saves and the ledger insert commit or roll back together, so
// a failed credit can never leave a dangling debit.
func (u *TransferFundsUseCase) transfer(ctx context.Context, amount decimal.Decimal, description string, load loadPair) (*TransactionOutput, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var (
		source *domain.Account
		target *domain.Account
		record *domain.Transaction
	)
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		return u.txManager.Run(ctx, func(txCtx context.Context) error {
			tx, err := txObjectFrom(txCtx)
			if err != nil {
				return err
			}
			accounts := u.accounts.WithTx(tx)
			transactions := u.transactions.WithTx(tx)

			src, tgt, err := load(txCtx, accounts)
			if err != nil {
				return err
			}
			if err := validateTransfer(src, tgt, amount); err != nil {
				return err
			}

			if err := src.Debit(amount); err != nil {
				return err
			}
			if err := tgt.Credit(amount); err != nil {
				return err
			}

			// Save in ascending id order so concurrent opposite-direction
			// transfers take row locks in the same order.
			first, second := src, tgt
			if first.ID > second.ID {
				first, second = second, first
			}
			if err := accounts.Save(txCtx, first); err != nil {
				return fmt.Errorf("saving account %d: %w", first.ID, err)
			}
			if err := accounts.Save(txCtx, second); err != nil {
				return fmt.Errorf("saving account %d: %w", second.ID, err)
			}

			targetID := tgt.ID
			record = &domain.Transaction{
				Amount:          amount,
				Type:            domain.TypeTransfer,
				Status:          domain.TxCompleted,
				Reference:       domain.NewReference(domain.RefTransaction),
				SourceAccountID: src.ID,
				TargetAccountID: &targetID,
				Description:     description,
			}
			if err := transactions.Create(txCtx, record); err != nil {
				return fmt.Errorf("recording transfer: %w", err)
			}

			source, target = src, tgt
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	invalidateAccount(ctx, u.cache, source)
	invalidateAccount(ctx, u.cache, target)
	log.Info().
		Str("reference", record.Reference).
		Str("from", source.AccountNumber).
		Str("to", target.AccountNumber).
		Str("amount", amount.StringFixed(2)).
		Msg("processed transfer")
	publishEvent(ctx, u.publisher, gateway.EventTransactionCompleted, map[string]interface{}{
		"reference":    record.Reference,
		"type":         string(record.Type),
		"from_account": source.AccountNumber,
		"to_account":   target.AccountNumber,
		"amount":       amount.StringFixed(2),
		"status":       string(record.Status),
	})

	out := toTransactionOutput(record)
	out.SourceAccountNumber = source.AccountNumber
	out.TargetAccountNumber = target.AccountNumber
	return out, nil
}

func validateTransfer(source, target *domain.Account, amount decimal.Decimal) error {
	if source.ID == target.ID {
		return domain.ErrSameAccount
	}
	if !source.IsActive() || !target.IsActive() {
		return domain.ErrAccountNotActive
	}
	if !domain.SameCurrency(source.Currency, target.Currency) {
		return domain.ErrCurrencyMismatch
	}
	if source.Balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}
	return nil
}
