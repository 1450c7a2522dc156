package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

type ReverseTransactionUseCase struct {
	accounts     gateway.AccountRepository
	transactions gateway.TransactionRepository
	txManager    gateway.TransactionManager
	cache        gateway.Cache
	publisher    gateway.EventPublisher
}

func NewReverseTransaction(
	accounts gateway.AccountRepository,
	transactions gateway.TransactionRepository,
	txManager gateway.TransactionManager,
	cache gateway.Cache,
	publisher gateway.EventPublisher,
) *ReverseTransactionUseCase {
	return &ReverseTransactionUseCase{
		accounts:     accounts,
		transactions: transactions,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
	}
}

// Execute undoes a completed transfer by writing an independent REVERSAL
// record with source and target swapped and mirroring the balance movement.
// The original is flipped to REVERSED inside the same unit of work, which is
// what blocks a second reversal of the same transaction.
func (u *ReverseTransactionUseCase) Execute(ctx context.Context, transactionID int64) (*TransactionOutput, error) {
	var (
		original *domain.Transaction
		reversal *domain.Transaction
		source   *domain.Account
		target   *domain.Account
	)
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		return u.txManager.Run(ctx, func(txCtx context.Context) error {
			tx, err := txObjectFrom(txCtx)
			if err != nil {
				return err
			}
			accounts := u.accounts.WithTx(tx)
			transactions := u.transactions.WithTx(tx)

			orig, err := transactions.GetByID(txCtx, transactionID)
			if err != nil {
				return err
			}
			if err := orig.CanReverse(time.Now()); err != nil {
				return err
			}
			if orig.TargetAccountID == nil {
				return domain.ErrNotReversible
			}

			origSource, err := accounts.GetByID(txCtx, orig.SourceAccountID)
			if err != nil {
				return err
			}
			origTarget, err := accounts.GetByID(txCtx, *orig.TargetAccountID)
			if err != nil {
				return err
			}

			// Exact mirror of the original movement: credit the original
			// source, debit the original target.
			if err := origSource.Credit(orig.Amount); err != nil {
				return err
			}
			if err := origTarget.Debit(orig.Amount); err != nil {
				return err
			}

			first, second := origSource, origTarget
			if first.ID > second.ID {
				first, second = second, first
			}
			if err := accounts.Save(txCtx, first); err != nil {
				return fmt.Errorf("saving account %d: %w", first.ID, err)
			}
			if err := accounts.Save(txCtx, second); err != nil {
				return fmt.Errorf("saving account %d: %w", second.ID, err)
			}

			sourceID := origSource.ID
			rev := &domain.Transaction{
				Amount:          orig.Amount,
				Type:            domain.TypeReversal,
				Status:          domain.TxCompleted,
				Reference:       domain.ReversalReference(orig.Reference),
				SourceAccountID: origTarget.ID,
				TargetAccountID: &sourceID,
				Description:     fmt.Sprintf("Reversal of transaction #%d", orig.ID),
			}
			if err := transactions.Create(txCtx, rev); err != nil {
				return fmt.Errorf("recording reversal: %w", err)
			}
			if err := transactions.UpdateStatus(txCtx, orig.ID, domain.TxReversed); err != nil {
				return fmt.Errorf("marking original reversed: %w", err)
			}

			original, reversal = orig, rev
			source, target = origSource, origTarget
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	invalidateAccount(ctx, u.cache, source)
	invalidateAccount(ctx, u.cache, target)
	invalidate(ctx, u.cache, gateway.TransactionKeyFor(original.ID))
	log.Info().
		Str("reference", reversal.Reference).
		Int64("original_id", original.ID).
		Msg("reversed transaction")
	publishEvent(ctx, u.publisher, gateway.EventTransactionReversed, map[string]interface{}{
		"reference":          reversal.Reference,
		"original_reference": original.Reference,
		"type":               string(reversal.Type),
		"from_account":       target.AccountNumber,
		"to_account":         source.AccountNumber,
		"amount":             original.Amount.StringFixed(2),
		"status":             string(reversal.Status),
	})

	out := toTransactionOutput(reversal)
	out.SourceAccountNumber = target.AccountNumber
	out.TargetAccountNumber = source.AccountNumber
	return out, nil
}
