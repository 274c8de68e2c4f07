// Package storage defines the chunk store contract: atomic batch insertion
// and tag-filterable nearest-neighbor search over embedded text chunks.
//
// Backends live in subpackages: postgres (pgvector) for production and
// memory (brute-force cosine) for tests and local runs.
package storage
