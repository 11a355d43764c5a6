package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// AdjustmentCache implements ports.IdempotencyCache for admin wallet
// adjustments. Values are the serialized transaction recorded under a
// reference id; the ledger table stays the source of truth.
type AdjustmentCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewAdjustmentCache creates a Redis-backed adjustment cache.
func NewAdjustmentCache(client goredis.UniversalClient) *AdjustmentCache {
	return &AdjustmentCache{
		client: client,
		prefix: "ledger:adjustment:",
	}
}

// Get returns the cached transaction for a reference id, or nil, nil on a miss.
func (c *AdjustmentCache) Get(ctx context.Context, referenceID string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+referenceID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis adjustment get: %w", err)
	}
	return val, nil
}

// Set caches a transaction under its reference id. Existing entries are
// left untouched so the first recorded result wins.
func (c *AdjustmentCache) Set(ctx context.Context, referenceID string, value []byte, ttl time.Duration) error {
	if err := c.client.SetNX(ctx, c.prefix+referenceID, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis adjustment set: %w", err)
	}
	return nil
}
