package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

// Uow implements gateway.TransactionManager over a pgx transaction.
type Uow struct {
	pool      *pgxpool.Pool
	publisher gateway.EventPublisher
}

func NewUow(pool *pgxpool.Pool, publisher gateway.EventPublisher) *Uow {
	return &Uow{pool: pool, publisher: publisher}
}

// Run executes fn inside one ACID transaction: commit when fn returns nil,
// roll back otherwise. A rollback failure after a mid-sequence error is the
// one case where partial application is possible, so it is surfaced as a
// reconciliation-grade fatal error and flagged for manual review, never
// retried.
func (u *Uow) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel: pgx.ReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	ctxWithTx := context.WithValue(ctx, gateway.TransactionKey, tx)

	if err := fn(ctxWithTx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			fatal := domain.Fatal(fmt.Errorf("rollback failed after %v: %w", err, rbErr))
			u.flagReconciliation(ctx, fatal)
			return fatal
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (u *Uow) flagReconciliation(ctx context.Context, cause error) {
	log.Error().Err(cause).Msg("store left in an uncertain state, reconciliation required")
	if u.publisher == nil {
		return
	}
	err := u.publisher.Publish(ctx, gateway.LedgerExchange, gateway.EventReconciliationRequired, map[string]interface{}{
		"type":   "RECONCILIATION",
		"status": "REQUIRED",
		"detail": cause.Error(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to publish reconciliation event")
	}
}
