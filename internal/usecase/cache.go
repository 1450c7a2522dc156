package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

// The cache is best effort everywhere: a failing cache must never block a
// read (degrade to the store) nor fail a completed write (log and move on).

// cacheLookup reports a hit and decodes into out. Any cache error counts as
// a miss.
func cacheLookup[T any](ctx context.Context, cache gateway.Cache, key string, out *T) bool {
	if cache == nil {
		return false
	}
	raw, err := cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, ignoring")
		return false
	}
	return true
}

func cacheStore(ctx context.Context, cache gateway.Cache, key string, value interface{}, ttl time.Duration) {
	if cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := cache.Set(ctx, key, raw, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func invalidate(ctx context.Context, cache gateway.Cache, keys ...string) {
	if cache == nil || len(keys) == 0 {
		return
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

// invalidateAccount evicts every key that could reflect the account's
// pre-mutation state. Called after the store write is durable.
func invalidateAccount(ctx context.Context, cache gateway.Cache, account *domain.Account) {
	if account == nil {
		return
	}
	invalidate(ctx, cache,
		gateway.BalanceKey(account.ID),
		gateway.DetailsKey(account.ID),
		gateway.UserAccountsKey(account.UserID),
		gateway.RecentTxnsKey(account.AccountNumber),
	)
}
