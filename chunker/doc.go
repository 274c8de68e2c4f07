// Package chunker splits raw document text into overlapping bounded-size
// segments suitable for embedding, using a recursive character splitter
// that prefers paragraph and sentence boundaries over hard cuts.
package chunker
