package analysis

import "errors"

var (
	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrDetectorRequired is returned when a topic detector is not provided.
	ErrDetectorRequired = errors.New("topic detector required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrNoMessages is returned when an analysis request carries no messages.
	ErrNoMessages = errors.New("at least one message required")
)
