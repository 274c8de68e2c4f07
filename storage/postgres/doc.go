// Package postgres implements the chunk store on postgres with the
// pgvector extension. Batch inserts run in a single transaction and
// similarity search uses the cosine distance operator.
package postgres
