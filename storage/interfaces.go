package storage

import (
	"context"

	"github.com/estateflow/leadlens/core"
)

// ChunkStore persists and queries (text, vector, tag, metadata) tuples.
// Implementations must be thread-safe and support concurrent access; a
// batch insert must hold its connection for the whole transaction and
// never interleave with another transaction's partial state.
type ChunkStore interface {
	// InsertChunks persists a batch of chunks as a single atomic unit:
	// either every chunk is visible afterward or none are. Any failure
	// rolls the whole batch back and surfaces core.ErrStorageUnavailable.
	InsertChunks(ctx context.Context, chunks []*core.Chunk) error

	// Nearest returns up to k chunks ranked descending by cosine
	// similarity (1 - cosine distance) to the query vector. When
	// projectTag is non-empty, only chunks carrying that tag are
	// considered. An empty store yields an empty slice, not an error.
	Nearest(ctx context.Context, vector []float32, k int, projectTag string) ([]core.RetrievedChunk, error)

	// Count returns the number of stored chunks, restricted to projectTag
	// when non-empty.
	Count(ctx context.Context, projectTag string) (int, error)

	// Close closes the store and releases resources.
	Close() error
}
