package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use and must
// return vectors of a fixed dimensionality.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. Batch processing amortizes provider latency over the whole
	// batch. The returned slice contains embeddings in the same order as the
	// input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// GenerationRequest describes one text-generation call.
type GenerationRequest struct {
	// Instruction is the rendered task instruction (system prompt).
	Instruction string

	// Input is the user-supplied content the task operates on.
	Input string

	// Temperature controls sampling variability. Classification-style tasks
	// use 0; summarization uses a mild non-zero value.
	Temperature float64
}

// Generator produces free-form text completions. Transient provider failures
// are retried with bounded attempts inside the implementation; callers never
// retry. Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Complete runs the generation call and returns the raw model output.
	// The output is unstructured text; validation is the caller's concern.
	Complete(ctx context.Context, req GenerationRequest) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Generator instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
