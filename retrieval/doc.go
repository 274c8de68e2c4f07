// Package retrieval provides ranked passage retrieval: query embedding
// through a bounded LRU cache followed by nearest-neighbor search against
// the chunk store.
package retrieval
