package mock

import (
	"context"
	"sync"

	"github.com/estateflow/leadlens/ai"
)

// Generator is a test double for ai.Generator.
// It allows custom behavior injection via a function field and records
// every request it receives.
type Generator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Complete returns an empty string.
	CompleteFunc func(ctx context.Context, req ai.GenerationRequest) (string, error)

	mu       sync.Mutex
	requests []ai.GenerationRequest
}

// NewGenerator creates a mock generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Complete records the request and delegates to CompleteFunc when set.
func (m *Generator) Complete(ctx context.Context, req ai.GenerationRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

// Requests returns a copy of all recorded generation requests.
func (m *Generator) Requests() []ai.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ai.GenerationRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of Complete calls.
func (m *Generator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Reset clears recorded requests and injected behavior.
func (m *Generator) Reset() {
	m.mu.Lock()
	m.requests = nil
	m.mu.Unlock()
	m.CompleteFunc = nil
}
