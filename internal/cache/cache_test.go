package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok, err := c.Get(ctx, "python experience")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "python experience", []float64{0.1, 0.2}))

	v, ok, err := c.Get(ctx, "python experience")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []float64{0.1, 0.2}, v)
	assert.Equal(t, 1, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Len())
	_, ok, err = c.Get(ctx, "python experience")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheKey_Stable(t *testing.T) {
	assert.Equal(t, cacheKey("text"), cacheKey("text"))
	assert.NotEqual(t, cacheKey("text"), cacheKey("other"))
	assert.Contains(t, cacheKey("text"), keyPrefix)
}
