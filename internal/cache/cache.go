// Package cache provides embedding caches keyed by text content. Embedding
// the same profile against many jobs repeats most of the work; caching
// vectors by text avoids the repeated API calls.
package cache

import (
	"context"
	"sync"
)

// EmbeddingCache stores embedding vectors keyed by the exact text embedded.
// Get returns (nil, false, nil) on a miss.
type EmbeddingCache interface {
	Get(ctx context.Context, text string) ([]float64, bool, error)
	Set(ctx context.Context, text string, vector []float64) error
}

// MemoryCache is an in-process EmbeddingCache. Safe for concurrent use.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string][]float64
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]float64)}
}

// Get returns the cached vector for text, if present.
func (c *MemoryCache) Get(_ context.Context, text string) ([]float64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[text]
	return v, ok, nil
}

// Set stores the vector for text.
func (c *MemoryCache) Set(_ context.Context, text string, vector []float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[text] = vector
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Reset drops all cached entries.
func (c *MemoryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]float64)
}
