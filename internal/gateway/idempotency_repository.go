package gateway

import (
	"context"
	"time"
)

// CachedResponse is the replayable result of a previously handled request.
type CachedResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string][]string
}

type IdempotencyRepository interface {
	// Get returns the cached response, or (nil, nil) when the key is unknown.
	Get(ctx context.Context, key string) (*CachedResponse, error)

	// Save stores the response under the key for ttl.
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
}
