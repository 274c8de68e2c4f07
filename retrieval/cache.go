package retrieval

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the embedding cache.
const DefaultCacheSize = 256

// EmbeddingCache memoizes embedding vectors for previously seen query
// strings. It is bounded with least-recently-used eviction and safe for
// concurrent use.
//
// Concurrent lookups for the same uncomputed key may each invoke the
// compute function independently; the duplicate work is accepted because
// both calls produce the same vector. A miss is only slower than a hit,
// never different.
type EmbeddingCache struct {
	cache *lru.Cache[string, []float32]
}

// NewEmbeddingCache creates a cache bounded to size entries.
func NewEmbeddingCache(size int) (*EmbeddingCache, error) {
	if size < 1 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &EmbeddingCache{cache: cache}, nil
}

// GetOrCompute returns the memoized vector for an exact string match,
// otherwise invokes compute, stores the result, and returns it. A failed
// compute is not cached.
func (c *EmbeddingCache) GetOrCompute(
	ctx context.Context,
	text string,
	compute func(ctx context.Context, text string) ([]float32, error),
) ([]float32, error) {
	if vector, ok := c.cache.Get(text); ok {
		return vector, nil
	}

	vector, err := compute(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, vector)
	return vector, nil
}

// Len returns the number of cached entries.
func (c *EmbeddingCache) Len() int {
	return c.cache.Len()
}
