package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

// maxConflictRetries bounds how often a losing optimistic writer refetches
// and retries before the conflict surfaces to the caller.
const maxConflictRetries = 3

// withConflictRetry re-runs fn while it fails with a version conflict. Each
// attempt is expected to refetch its accounts, so a retry observes the
// winner's state.
func withConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		err = fn(ctx)
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}
		log.Warn().Int("attempt", attempt).Msg("optimistic concurrency conflict, retrying")
	}
	return err
}

// txObjectFrom extracts the store transaction the unit of work injected.
func txObjectFrom(ctx context.Context) (gateway.TransactionObject, error) {
	tx := ctx.Value(gateway.TransactionKey)
	if tx == nil {
		return nil, fmt.Errorf("no store transaction found in context")
	}
	return tx, nil
}

// publishEvent fires a ledger event without failing the operation that
// produced it. The publisher is optional.
func publishEvent(ctx context.Context, publisher gateway.EventPublisher, routingKey string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, gateway.LedgerExchange, routingKey, payload); err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("failed to publish ledger event")
	}
}
