// Package cache implements the view cache on Redis.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-ledger/backend/internal/application/adapter"
)

// redisViewCache implements the adapter.ViewCache interface on a Redis
// client. All values are opaque byte payloads; serialization is the
// caller's concern.
type redisViewCache struct {
	client *redis.Client
}

// NewRedisViewCache creates a new Redis-backed view cache.
func NewRedisViewCache(client *redis.Client) adapter.ViewCache {
	return &redisViewCache{
		client: client,
	}
}

// Get returns the cached payload and whether the key was present.
func (c *redisViewCache) Get(ctx context.Context, key adapter.ViewKey) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, string(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// Put stores a payload under the key. A zero ttl means no expiry.
func (c *redisViewCache) Put(ctx context.Context, key adapter.ViewKey, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, string(key), payload, ttl).Err()
}

// Invalidate removes the given keys. Redis DEL ignores absent keys, so
// repeated invalidation is naturally idempotent.
func (c *redisViewCache) Invalidate(ctx context.Context, keys ...adapter.ViewKey) error {
	if len(keys) == 0 {
		return nil
	}

	raw := make([]string, len(keys))
	for i, key := range keys {
		raw[i] = string(key)
	}
	return c.client.Del(ctx, raw...).Err()
}
