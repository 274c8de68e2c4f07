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


package leadlens

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/estateflow/leadlens/ai"
	"github.com/estateflow/leadlens/ai/openai"
	"github.com/estateflow/leadlens/analysis"
	"github.com/estateflow/leadlens/core"
	"github.com/estateflow/leadlens/ingestion"
	"github.com/estateflow/leadlens/retrieval"
	"github.com/estateflow/leadlens/storage"
	"github.com/estateflow/leadlens/storage/postgres"
	"github.com/estateflow/leadlens/topic"
	"github.com/panjf2000/ants/v2"
)

// Service wires the full analysis pipeline together and exposes the entry
// points the routing layer calls: ingestion, retrieval, conversation
// analysis, and the health count.
//
// The embedding cache and store connection pool inside the service are the
// only cross-request shared mutable state; both are created once here and
// torn down by Close.
type Service struct {
	store     storage.ChunkStore
	provider  ai.Provider
	cache     *retrieval.EmbeddingCache
	retriever *retrieval.Retriever
	analyzer  *analysis.Analyzer
	ingestor  *ingestion.Ingestor
	pool      *ants.Pool
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig  *ai.Config
	provider  ai.Provider
	store     storage.ChunkStore
	cacheSize int
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider injects a pre-built AI provider, bypassing the OpenAI
// default. Used by tests and local setups.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithStore injects a pre-built chunk store, bypassing the postgres
// default. Used by tests and local setups.
func WithStore(store storage.ChunkStore) ServiceOption {
	return func(o *serviceOptions) {
		o.store = store
	}
}

// WithCacheSize bounds the shared embedding cache.
// Default is retrieval.DefaultCacheSize.
func WithCacheSize(size int) ServiceOption {
	return func(o *serviceOptions) {
		o.cacheSize = size
	}
}

// NewService creates a fully wired service. Unless overridden by options,
// it connects to postgres at dsn and talks to the OpenAI API using the
// default ai.Config.
func NewService(ctx context.Context, dsn string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:  ai.DefaultConfig(),
		cacheSize: retrieval.DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	store := options.store
	if store == nil {
		var err error
		store, err = postgres.New(ctx, postgres.Config{
			DSN:         dsn,
			Dimension:   options.aiConfig.Dimension,
			EnsureIndex: true,
		})
		if err != nil {
			provider.Close()
			return nil, err
		}
	}

	cache, err := retrieval.NewEmbeddingCache(options.cacheSize)
	if err != nil {
		store.Close()
		provider.Close()
		return nil, err
	}

	retriever, err := retrieval.NewRetriever(store, provider.Embedder(), retrieval.WithCache(cache))
	if err != nil {
		store.Close()
		provider.Close()
		return nil, err
	}

	analyzer, err := analysis.NewAnalyzer(retriever, topic.NewDetector(), provider.Generator())
	if err != nil {
		store.Close()
		provider.Close()
		return nil, err
	}

	ingestor, err := ingestion.NewIngestor(store, provider.Embedder())
	if err != nil {
		store.Close()
		provider.Close()
		return nil, err
	}

	// Single background worker: bootstrap runs at most once at a time.
	pool, err := ants.NewPool(1)
	if err != nil {
		store.Close()
		provider.Close()
		return nil, err
	}

	return &Service{
		store:     store,
		provider:  provider,
		cache:     cache,
		retriever: retriever,
		analyzer:  analyzer,
		ingestor:  ingestor,
		pool:      pool,
		logger:    slog.Default().With("component", "service"),
	}, nil
}

// IngestTexts ingests documents for a project and returns the number of
// chunks created.
func (s *Service) IngestTexts(ctx context.Context, projectTag string, documents []core.Document) (int, error) {
	return s.ingestor.Ingest(ctx, projectTag, documents)
}

// AnalyzeConversation runs the full analysis pipeline on a conversation.
func (s *Service) AnalyzeConversation(ctx context.Context, conversationID string, messages []core.Message) (*core.AnalysisResult, error) {
	return s.analyzer.Analyze(ctx, conversationID, messages)
}

// RetrieveRelevantChunks returns the k most relevant passages for a query,
// optionally restricted to a project tag.
func (s *Service) RetrieveRelevantChunks(ctx context.Context, query string, k int, projectTag string) ([]core.RetrievedChunk, error) {
	return s.retriever.Retrieve(ctx, query, k, projectTag)
}

// Count reports how many chunks are stored, optionally filtered by tag.
// The empty tag counts the whole store, which is what health reporting uses.
func (s *Service) Count(ctx context.Context, projectTag string) (int, error) {
	return s.store.Count(ctx, projectTag)
}

// Bootstrap ingests the bundled JSON project files from fsys, skipping
// projects that already have chunks stored.
func (s *Service) Bootstrap(ctx context.Context, fsys fs.FS) (int, error) {
	return s.ingestor.Bootstrap(ctx, fsys)
}

// BootstrapAsync runs Bootstrap on the background worker so startup is not
// blocked. A failed bootstrap is logged and does not prevent the service
// from handling other requests; ingestion can be retried on demand through
// IngestTexts or Bootstrap.
func (s *Service) BootstrapAsync(fsys fs.FS) error {
	return s.pool.Submit(func() {
		total, err := s.ingestor.Bootstrap(context.Background(), fsys)
		if err != nil {
			s.logger.Warn("background bootstrap failed, retrieval will serve an empty corpus until ingestion succeeds", "err", err)
			return
		}
		s.logger.Info("background bootstrap complete", "chunks", total)
	})
}

// Close releases the worker pool, the AI provider, and the store.
func (s *Service) Close() error {
	s.pool.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing chunk store", "err", err)
		return err
	}
	return nil
}
