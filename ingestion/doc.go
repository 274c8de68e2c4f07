// Package ingestion turns raw documents into embedded chunks and persists
// them atomically: split, batch-embed, single-transaction insert. It also
// provides the idempotent corpus bootstrap that loads bundled JSON project
// files into an empty store.
package ingestion
