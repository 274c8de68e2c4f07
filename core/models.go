package core

// SenderType identifies the source of a conversation message.
type SenderType int

const (
	// SenderTypeAgent represents the sales agent side of the conversation.
	SenderTypeAgent SenderType = iota + 1
	// SenderTypeLead represents the prospect (lead) side of the conversation.
	SenderTypeLead
)

// Label returns the transcript label used when rendering a conversation.
// Conversations are analysed in a Spanish-language CRM context.
func (s SenderType) Label() string {
	if s == SenderTypeAgent {
		return "Asesor"
	}
	return "Prospecto"
}

// ParseSenderType converts a wire-level role string into a SenderType.
func ParseSenderType(role string) (SenderType, error) {
	switch role {
	case "agent":
		return SenderTypeAgent, nil
	case "lead":
		return SenderTypeLead, nil
	}
	return 0, ErrInvalidSenderType
}

// Message is a single conversation message supplied per analysis request.
// Messages are ordered and immutable.
type Message struct {
	Sender     SenderType
	SenderName string
	Content    string
}

// Document is a raw input to ingestion. It is transient: documents are
// decomposed into chunks and never persisted whole.
type Document struct {
	Content  string
	Metadata map[string]any
}

// Chunk is a bounded-size text segment produced from a document, carrying
// its embedding and provenance metadata. Chunks are immutable once persisted
// and owned exclusively by the chunk store.
type Chunk struct {
	Text       string
	Embedding  []float32
	ProjectTag string
	Metadata   map[string]any
}

// RetrievedChunk is a single similarity-search hit.
type RetrievedChunk struct {
	Text       string
	Similarity float64
}

// Priority is the assessed priority level of a lead.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether the priority is one of the three known levels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// AnalysisResult is the combined output of one conversation analysis.
// It is immutable after construction; no partial result is ever produced.
type AnalysisResult struct {
	Summary  string
	Tags     []string
	Priority Priority
}
