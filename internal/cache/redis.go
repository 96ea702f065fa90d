package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long cached embeddings live. Embeddings for a given text
// are stable for a model, so a long TTL is fine.
const DefaultTTL = 30 * 24 * time.Hour

const keyPrefix = "emb:"

// RedisCache is an EmbeddingCache backed by Redis. Keys are hashes of the
// embedded text so arbitrary-length texts map to fixed-size keys.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps a Redis client as an embedding cache. A non-positive
// ttl falls back to DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached vector for text, if present.
func (c *RedisCache) Get(ctx context.Context, text string) ([]float64, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var vector []float64
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, false, fmt.Errorf("decode cached embedding: %w", err)
	}
	return vector, true, nil
}

// Set stores the vector for text with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, text string, vector []float64) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encode embedding: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + hex.EncodeToString(sum[:])
}
