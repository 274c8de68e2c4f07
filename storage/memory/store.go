package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/estateflow/leadlens/core"
	"github.com/estateflow/leadlens/storage"
)

// Store is an in-memory chunk store using brute-force cosine similarity.
// It exists for tests and small local runs; production deployments use
// the postgres backend.
type Store struct {
	mu        sync.RWMutex
	chunks    []*core.Chunk
	dimension int
	closed    bool
}

var _ storage.ChunkStore = (*Store)(nil)

// New creates an empty in-memory store. A dimension of 0 means the store
// adopts the width of the first inserted batch.
func New(dimension int) *Store {
	return &Store{dimension: dimension}
}

// InsertChunks appends the batch under the write lock. Validation happens
// before any mutation so a failed batch leaves the store unchanged.
func (s *Store) InsertChunks(ctx context.Context, chunks []*core.Chunk) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	if len(chunks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}

	dimension := s.dimension
	if dimension == 0 {
		dimension = len(chunks[0].Embedding)
	}
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
		if len(chunk.Embedding) != dimension {
			return fmt.Errorf("%w: got %d want %d", storage.ErrDimensionMismatch, len(chunk.Embedding), dimension)
		}
	}

	s.dimension = dimension
	for _, chunk := range chunks {
		clone := *chunk
		clone.Embedding = slices.Clone(chunk.Embedding)
		s.chunks = append(s.chunks, &clone)
	}
	return nil
}

// Nearest scans all chunks and ranks them by cosine similarity.
func (s *Store) Nearest(ctx context.Context, vector []float32, k int, projectTag string) ([]core.RetrievedChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive", storage.ErrInvalidQuery)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	results := make([]core.RetrievedChunk, 0, k)
	for _, chunk := range s.chunks {
		if projectTag != "" && chunk.ProjectTag != projectTag {
			continue
		}
		results = append(results, core.RetrievedChunk{
			Text:       chunk.Text,
			Similarity: cosineSimilarity(vector, chunk.Embedding),
		})
	}

	slices.SortStableFunc(results, func(a, b core.RetrievedChunk) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of stored chunks, optionally filtered by tag.
func (s *Store) Count(ctx context.Context, projectTag string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, storage.ErrStorageClosed
	}

	if projectTag == "" {
		return len(s.chunks), nil
	}
	count := 0
	for _, chunk := range s.chunks {
		if chunk.ProjectTag == projectTag {
			count++
		}
	}
	return count, nil
}

// Chunks returns copies of the stored chunks, optionally filtered by tag.
// Intended for inspection in tests.
func (s *Store) Chunks(projectTag string) []*core.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*core.Chunk
	for _, chunk := range s.chunks {
		if projectTag != "" && chunk.ProjectTag != projectTag {
			continue
		}
		clone := *chunk
		clone.Embedding = slices.Clone(chunk.Embedding)
		out = append(out, &clone)
	}
	return out
}

// Close marks the store closed; further operations fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.chunks = nil
	return nil
}

// cosineSimilarity computes 1 - cosine distance between two vectors.
// Mismatched or zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
