package memory

import (
	"context"
	"math"
	"testing"

	"github.com/estateflow/leadlens/core"
	"github.com/estateflow/leadlens/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vectorWithSimilarity builds a unit 2d vector whose cosine similarity to
// the query [1, 0] equals cos.
func vectorWithSimilarity(cos float64) []float32 {
	sin := math.Sqrt(1 - cos*cos)
	return []float32{float32(cos), float32(sin)}
}

func TestNearest_RankingOrder(t *testing.T) {
	store := New(2)
	ctx := context.Background()

	err := store.InsertChunks(ctx, []*core.Chunk{
		{Text: "v2", Embedding: vectorWithSimilarity(0.5), ProjectTag: "p"},
		{Text: "v3", Embedding: vectorWithSimilarity(0.1), ProjectTag: "p"},
		{Text: "v1", Embedding: vectorWithSimilarity(0.9), ProjectTag: "p"},
	})
	require.NoError(t, err)

	hits, err := store.Nearest(ctx, []float32{1, 0}, 3, "")
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "v1", hits[0].Text)
	assert.Equal(t, "v2", hits[1].Text)
	assert.Equal(t, "v3", hits[2].Text)
	assert.InDelta(t, 0.9, hits[0].Similarity, 1e-6)
	assert.InDelta(t, 0.5, hits[1].Similarity, 1e-6)
	assert.InDelta(t, 0.1, hits[2].Similarity, 1e-6)
}

func TestNearest_TagFilterAndLimit(t *testing.T) {
	store := New(2)
	ctx := context.Background()

	err := store.InsertChunks(ctx, []*core.Chunk{
		{Text: "a1", Embedding: vectorWithSimilarity(0.9), ProjectTag: "alpha"},
		{Text: "b1", Embedding: vectorWithSimilarity(0.8), ProjectTag: "beta"},
		{Text: "a2", Embedding: vectorWithSimilarity(0.7), ProjectTag: "alpha"},
		{Text: "a3", Embedding: vectorWithSimilarity(0.6), ProjectTag: "alpha"},
	})
	require.NoError(t, err)

	t.Run("filtered", func(t *testing.T) {
		hits, err := store.Nearest(ctx, []float32{1, 0}, 2, "alpha")
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "a1", hits[0].Text)
		assert.Equal(t, "a2", hits[1].Text)
	})

	t.Run("unfiltered", func(t *testing.T) {
		hits, err := store.Nearest(ctx, []float32{1, 0}, 10, "")
		require.NoError(t, err)
		assert.Len(t, hits, 4)
	})
}

func TestNearest_EmptyStore(t *testing.T) {
	store := New(2)
	hits, err := store.Nearest(context.Background(), []float32{1, 0}, 4, "")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestInsertChunks_FailedBatchLeavesStoreUnchanged(t *testing.T) {
	store := New(2)
	ctx := context.Background()

	err := store.InsertChunks(ctx, []*core.Chunk{
		{Text: "good", Embedding: []float32{1, 0}, ProjectTag: "p"},
		{Text: "", Embedding: []float32{0, 1}, ProjectTag: "p"},
	})
	require.Error(t, err)

	count, err := store.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestInsertChunks_DimensionMismatch(t *testing.T) {
	store := New(2)
	err := store.InsertChunks(context.Background(), []*core.Chunk{
		{Text: "bad width", Embedding: []float32{1, 0, 0}, ProjectTag: "p"},
	})
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
}

func TestCount_ByTag(t *testing.T) {
	store := New(2)
	ctx := context.Background()

	err := store.InsertChunks(ctx, []*core.Chunk{
		{Text: "a", Embedding: []float32{1, 0}, ProjectTag: "alpha"},
		{Text: "b", Embedding: []float32{0, 1}, ProjectTag: "beta"},
		{Text: "c", Embedding: []float32{1, 0}, ProjectTag: "alpha"},
	})
	require.NoError(t, err)

	count, err := store.Count(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	total, err := store.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestClosedStore(t *testing.T) {
	store := New(2)
	require.NoError(t, store.Close())

	err := store.InsertChunks(context.Background(), []*core.Chunk{
		{Text: "x", Embedding: []float32{1, 0}},
	})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.Nearest(context.Background(), []float32{1, 0}, 1, "")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.Count(context.Background(), "")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
