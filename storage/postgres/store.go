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


package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/estateflow/leadlens/core"
	"github.com/estateflow/leadlens/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// Config holds connection and schema settings for the pgvector store.
type Config struct {
	// DSN is the postgres connection string.
	DSN string

	// Table is the chunk table name. Default: "project_embeddings".
	Table string

	// Dimension is the fixed embedding width of the vector column.
	Dimension int

	// EnsureIndex creates an ivfflat cosine index on the embedding column
	// during schema bootstrap.
	EnsureIndex bool
}

// Store is a pgvector-backed chunk store. The connection pool is shared
// process-wide; each operation checks out a connection and returns it on
// completion, and a batch insert holds its connection for the duration of
// the whole transaction.
type Store struct {
	pool       *pgxpool.Pool
	tableIdent string
	dimension  int
	logger     *slog.Logger
}

var _ storage.ChunkStore = (*Store)(nil)

// New connects to postgres and bootstraps the chunk schema.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres: DSN is required")
	}
	if cfg.Dimension < 1 {
		return nil, errors.New("postgres: Dimension must be positive")
	}
	table := cfg.Table
	if table == "" {
		table = "project_embeddings"
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", core.ErrStorageUnavailable, err)
	}

	s := &Store{
		pool:       pool,
		tableIdent: pgx.Identifier{table}.Sanitize(),
		dimension:  cfg.Dimension,
		logger:     slog.Default().With("component", "postgres-store"),
	}
	if err := s.ensureSchema(ctx, cfg.EnsureIndex); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context, ensureIndex bool) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquire connection: %v", core.ErrStorageUnavailable, err)
	}
	defer conn.Release()

	if _, err = conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("%w: enable vector extension: %v", core.ErrStorageUnavailable, err)
	}

	createTable := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		project_tag TEXT NOT NULL,
		chunk_text TEXT NOT NULL,
		embedding vector(%d),
		metadata JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`, s.tableIdent, s.dimension)
	if _, err = conn.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("%w: create table: %v", core.ErrStorageUnavailable, err)
	}

	if ensureIndex {
		createIndex := fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s USING ivfflat (embedding vector_cosine_ops)",
			pgx.Identifier{strings.Trim(s.tableIdent, `"`) + "_embedding_idx"}.Sanitize(),
			s.tableIdent,
		)
		if _, err = conn.Exec(ctx, createIndex); err != nil {
			return fmt.Errorf("%w: create index: %v", core.ErrStorageUnavailable, err)
		}
	}
	return nil
}

// InsertChunks persists the batch inside a single transaction. Any failure
// rolls back the whole batch so no torn state is left behind.
func (s *Store) InsertChunks(ctx context.Context, chunks []*core.Chunk) (err error) {
	if len(chunks) == 0 {
		return nil
	}
	for _, chunk := range chunks {
		if verr := core.ValidateChunk(chunk); verr != nil {
			return verr
		}
		if len(chunk.Embedding) != s.dimension {
			return fmt.Errorf("%w: got %d want %d", storage.ErrDimensionMismatch, len(chunk.Embedding), s.dimension)
		}
	}

	tx, txErr := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if txErr != nil {
		return fmt.Errorf("%w: begin tx: %v", core.ErrStorageUnavailable, txErr)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error("rollback failed", "err", rbErr)
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("%w: commit: %v", core.ErrStorageUnavailable, commitErr)
		}
	}()

	stmt := fmt.Sprintf(`INSERT INTO %s (project_tag, chunk_text, embedding, metadata, created_at)
VALUES ($1, $2, $3, $4, $5)`, s.tableIdent)
	now := time.Now().UTC()
	for _, chunk := range chunks {
		metadata, marshalErr := json.Marshal(chunk.Metadata)
		if marshalErr != nil {
			return fmt.Errorf("marshal metadata: %w", marshalErr)
		}
		vector := pgvector.NewVector(chunk.Embedding)
		if _, execErr := tx.Exec(ctx, stmt, chunk.ProjectTag, chunk.Text, vector, metadata, now); execErr != nil {
			return fmt.Errorf("%w: insert chunk: %v", core.ErrStorageUnavailable, execErr)
		}
	}
	return nil
}

// Nearest ranks chunks by cosine similarity using pgvector's <=> operator.
func (s *Store) Nearest(ctx context.Context, vector []float32, k int, projectTag string) ([]core.RetrievedChunk, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query got %d want %d", storage.ErrDimensionMismatch, len(vector), s.dimension)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive", storage.ErrInvalidQuery)
	}

	builder := strings.Builder{}
	builder.WriteString("SELECT chunk_text, 1 - (embedding <=> $1) AS similarity FROM ")
	builder.WriteString(s.tableIdent)
	args := []any{pgvector.NewVector(vector)}
	if projectTag != "" {
		builder.WriteString(" WHERE project_tag = $2")
		args = append(args, projectTag)
	}
	builder.WriteString(fmt.Sprintf(" ORDER BY embedding <=> $1 ASC LIMIT $%d", len(args)+1))
	args = append(args, k)

	rows, err := s.pool.Query(ctx, builder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: nearest query: %v", core.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	results := make([]core.RetrievedChunk, 0, k)
	for rows.Next() {
		var hit core.RetrievedChunk
		if err := rows.Scan(&hit.Text, &hit.Similarity); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", core.ErrStorageUnavailable, err)
		}
		results = append(results, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: nearest rows: %v", core.ErrStorageUnavailable, err)
	}
	return results, nil
}

// Count returns the number of stored chunks, optionally filtered by tag.
func (s *Store) Count(ctx context.Context, projectTag string) (int, error) {
	query := "SELECT COUNT(*) FROM " + s.tableIdent
	args := []any{}
	if projectTag != "" {
		query += " WHERE project_tag = $1"
		args = append(args, projectTag)
	}

	var count int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count: %v", core.ErrStorageUnavailable, err)
	}
	return count, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
