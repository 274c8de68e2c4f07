// Package core defines the domain model for conversation analysis:
// messages, documents, chunks, retrieval hits, and the combined analysis
// result, together with domain validation rules and the error taxonomy
// shared by every other package.
package core
