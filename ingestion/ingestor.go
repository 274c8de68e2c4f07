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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/estateflow/leadlens/ai"
	"github.com/estateflow/leadlens/chunker"
	"github.com/estateflow/leadlens/core"
	"github.com/estateflow/leadlens/storage"
)

// Ingestor turns batches of raw documents into embedded chunks and persists
// them atomically. Ingestion is not cancelable mid-batch: once the store
// transaction starts it either commits whole or rolls back whole.
type Ingestor struct {
	store        storage.ChunkStore
	embedder     ai.Embedder
	chunkSize    int
	chunkOverlap int
	logger       *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithChunkSize sets the maximum chunk size in characters.
// Default is chunker.DefaultChunkSize.
func WithChunkSize(size int) Option {
	return func(in *Ingestor) error {
		if size < 1 {
			return fmt.Errorf("chunk size must be positive")
		}
		in.chunkSize = size
		return nil
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks in characters.
// Default is chunker.DefaultChunkOverlap.
func WithChunkOverlap(overlap int) Option {
	return func(in *Ingestor) error {
		if overlap < 0 {
			return fmt.Errorf("chunk overlap cannot be negative")
		}
		in.chunkOverlap = overlap
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		in.logger = logger
		return nil
	}
}

// NewIngestor creates an ingestor.
func NewIngestor(store storage.ChunkStore, embedder ai.Embedder, opts ...Option) (*Ingestor, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	in := &Ingestor{
		store:        store,
		embedder:     embedder,
		chunkSize:    chunker.DefaultChunkSize,
		chunkOverlap: chunker.DefaultChunkOverlap,
		logger:       slog.Default().With("component", "ingestor"),
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Ingest splits the documents into chunks, embeds all chunks in one batch
// call, and persists them in one atomic insert. Returns the number of
// chunks created.
//
// Zero resulting chunks (all inputs empty) returns 0 without touching the
// store. A failure anywhere leaves the store unchanged.
func (in *Ingestor) Ingest(ctx context.Context, projectTag string, documents []core.Document) (int, error) {
	var texts []string
	var metadatas []map[string]any
	for _, doc := range documents {
		parts, err := chunker.Split(doc.Content, in.chunkSize, in.chunkOverlap)
		if err != nil {
			return 0, fmt.Errorf("split document: %w", err)
		}
		for _, part := range parts {
			meta := make(map[string]any, len(doc.Metadata)+1)
			maps.Copy(meta, doc.Metadata)
			meta["project_name"] = projectTag
			texts = append(texts, part)
			metadatas = append(metadatas, meta)
		}
	}

	if len(texts) == 0 {
		in.logger.Warn("no chunks produced", "projectTag", projectTag)
		return 0, nil
	}

	// One batch call amortizes provider latency over all chunks.
	vectors, err := in.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(texts) {
		return 0, fmt.Errorf("embedding result mismatch. expected %d, received %d", len(texts), len(vectors))
	}

	chunks := make([]*core.Chunk, len(texts))
	for i := range texts {
		chunks[i] = &core.Chunk{
			Text:       texts[i],
			Embedding:  vectors[i],
			ProjectTag: projectTag,
			Metadata:   metadatas[i],
		}
	}

	if err := in.store.InsertChunks(ctx, chunks); err != nil {
		return 0, err
	}

	in.logger.Info("ingested chunks", "count", len(chunks), "projectTag", projectTag)
	return len(chunks), nil
}
