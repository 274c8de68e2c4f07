// Package leadlens analyzes sales conversations for a real-estate CRM.
//
// Given a conversation transcript and a corpus of project documents, it
// retrieves the most relevant passages from a vector store and runs three
// concurrent generation tasks (summary, tags, priority) over transcript and
// context, returning one combined result.
//
// The Service type is the composition root: it wires the chunk store, the
// embedding/generation provider, the shared embedding cache, and the
// pipeline components, and exposes the narrow interface the HTTP layer
// calls.
package leadlens
