// Copyright 2025 EstateFlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retrieval

import (
	"context"
	"log/slog"

	"github.com/estateflow/leadlens/ai"
	"github.com/estateflow/leadlens/core"
	"github.com/estateflow/leadlens/storage"
)

// DefaultTopK is the number of passages returned when the caller does not
// specify k.
const DefaultTopK = 4

// Retriever embeds a query (through the shared embedding cache) and runs a
// ranked nearest-neighbor search against the chunk store.
type Retriever struct {
	store    storage.ChunkStore
	embedder ai.Embedder
	cache    *EmbeddingCache
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithCache injects a shared embedding cache. The cache is process-wide
// state shared across concurrent requests; passing the same cache to every
// retriever keeps query embeddings memoized globally.
func WithCache(cache *EmbeddingCache) Option {
	return func(r *Retriever) error {
		if cache != nil {
			r.cache = cache
		}
		return nil
	}
}

// NewRetriever creates a retriever. Unless WithCache is supplied, a private
// cache of DefaultCacheSize entries is created.
func NewRetriever(store storage.ChunkStore, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	cache, err := NewEmbeddingCache(DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	r := &Retriever{
		store:    store,
		embedder: embedder,
		cache:    cache,
		logger:   slog.Default().With("component", "retriever"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Retrieve returns the k most relevant chunks for the query, most relevant
// first. When projectTag is non-empty the search is restricted to that tag.
// An empty corpus or no matches yields an empty slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, projectTag string) ([]core.RetrievedChunk, error) {
	if k < 1 {
		k = DefaultTopK
	}

	vector, err := r.cache.GetOrCompute(ctx, query, r.embedder.EmbedText)
	if err != nil {
		r.logger.Error("error embedding query", "err", err)
		return nil, err
	}

	hits, err := r.store.Nearest(ctx, vector, k, projectTag)
	if err != nil {
		r.logger.Error("error querying for nearest chunks", "err", err)
		return nil, err
	}

	if len(hits) > 0 {
		r.logger.Debug("retrieved chunks", "count", len(hits), "bestSimilarity", hits[0].Similarity)
	} else {
		r.logger.Debug("no chunks found for query", "query", head(query, 80))
	}
	return hits, nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
