package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gallery-shop/internal/logger"
)

const keyPrefix = "content:"

// Cache is a path-keyed content cache backed by Redis. Entries expire on
// their own after TTL; the revalidation webhook deletes them early when the
// content store reports a change.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
	Log    *logger.Logger
}

func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{Client: client, TTL: ttl, Log: log}
}

// Get returns the cached payload for a path. The second return value is
// false on a miss.
func (c *Cache) Get(ctx context.Context, path string) ([]byte, bool, error) {
	val, err := c.Client.Get(ctx, keyPrefix+path).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *Cache) Set(ctx context.Context, path string, payload []byte) error {
	return c.Client.Set(ctx, keyPrefix+path, payload, c.TTL).Err()
}

// Invalidate deletes the cached entries for the given paths and returns how
// many were actually removed.
func (c *Cache) Invalidate(ctx context.Context, paths ...string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = keyPrefix + p
	}

	removed, err := c.Client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, err
	}

	c.Log.Info("CACHE", fmt.Sprintf("Invalidated %d of %d cached paths", removed, len(paths)))
	return removed, nil
}
