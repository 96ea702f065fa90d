package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Open returns a Redis-backed embedding cache when redisURL is set and
// reachable, otherwise an in-memory cache. The returned closer releases the
// Redis connection. A non-nil error reports why the Redis cache was not used;
// the returned cache is usable either way.
func Open(ctx context.Context, redisURL string) (EmbeddingCache, func(), error) {
	noop := func() {}
	if redisURL == "" {
		return NewMemoryCache(), noop, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return NewMemoryCache(), noop, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return NewMemoryCache(), noop, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCache(client, 0), func() { _ = client.Close() }, nil
}
