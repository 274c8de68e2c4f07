package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCompute_MemoizesExactMatch(t *testing.T) {
	cache, err := NewEmbeddingCache(4)
	require.NoError(t, err)

	var calls atomic.Int32
	compute := func(ctx context.Context, text string) ([]float32, error) {
		calls.Add(1)
		return []float32{1, 2, 3}, nil
	}

	ctx := context.Background()
	first, err := cache.GetOrCompute(ctx, "query", compute)
	require.NoError(t, err)
	second, err := cache.GetOrCompute(ctx, "query", compute)
	require.NoError(t, err)

	// A hit must be indistinguishable from a miss, only cheaper.
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetOrCompute_FailedComputeNotCached(t *testing.T) {
	cache, err := NewEmbeddingCache(4)
	require.NoError(t, err)

	var calls atomic.Int32
	boom := errors.New("embedding down")
	compute := func(ctx context.Context, text string) ([]float32, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return []float32{1}, nil
	}

	ctx := context.Background()
	_, err = cache.GetOrCompute(ctx, "query", compute)
	assert.ErrorIs(t, err, boom)

	vector, err := cache.GetOrCompute(ctx, "query", compute)
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, vector)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetOrCompute_BoundedEviction(t *testing.T) {
	cache, err := NewEmbeddingCache(2)
	require.NoError(t, err)

	compute := func(ctx context.Context, text string) ([]float32, error) {
		return []float32{float32(len(text))}, nil
	}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := cache.GetOrCompute(ctx, fmt.Sprintf("query-%d", i), compute)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cache.Len())
}

func TestNewEmbeddingCache_DefaultsOnBadSize(t *testing.T) {
	cache, err := NewEmbeddingCache(0)
	require.NoError(t, err)
	assert.NotNil(t, cache)
}
