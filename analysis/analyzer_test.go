package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/estateflow/leadlens/ai"
	"github.com/estateflow/leadlens/ai/mock"
	"github.com/estateflow/leadlens/core"
	"github.com/estateflow/leadlens/retrieval"
	"github.com/estateflow/leadlens/storage/memory"
	"github.com/estateflow/leadlens/topic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routingGenerator answers each task by recognizing its instruction text.
func routingGenerator() *mock.Generator {
	generator := mock.NewGenerator()
	generator.CompleteFunc = func(ctx context.Context, req ai.GenerationRequest) (string, error) {
		switch {
		case strings.Contains(req.Instruction, "clasificacion"):
			return `["pricing"]`, nil
		case strings.Contains(req.Instruction, "priorizacion"):
			return "low", nil
		default:
			return "La prospecta pregunto por precios de Lomas Verdes.", nil
		}
	}
	return generator
}

func newTestAnalyzer(t *testing.T, store *memory.Store, generator ai.Generator) *Analyzer {
	t.Helper()

	retriever, err := retrieval.NewRetriever(store, mock.NewEmbedder())
	require.NoError(t, err)
	analyzer, err := NewAnalyzer(retriever, topic.NewDetector(), generator)
	require.NoError(t, err)
	return analyzer
}

func testMessages() []core.Message {
	return []core.Message{
		{Sender: core.SenderTypeLead, SenderName: "Ana", Content: "hola, busco informacion"},
		{Sender: core.SenderTypeAgent, SenderName: "Luis", Content: "con gusto, que le interesa?"},
		{Sender: core.SenderTypeLead, SenderName: "Ana", Content: "precios de dos recamaras"},
	}
}

func TestNewAnalyzer(t *testing.T) {
	store := memory.New(0)
	retriever, err := retrieval.NewRetriever(store, mock.NewEmbedder())
	require.NoError(t, err)
	detector := topic.NewDetector()
	generator := mock.NewGenerator()

	t.Run("valid configuration", func(t *testing.T) {
		analyzer, err := NewAnalyzer(retriever, detector, generator)
		require.NoError(t, err)
		assert.NotNil(t, analyzer)
	})

	t.Run("nil retriever", func(t *testing.T) {
		_, err := NewAnalyzer(nil, detector, generator)
		assert.Equal(t, ErrRetrieverRequired, err)
	})

	t.Run("nil detector", func(t *testing.T) {
		_, err := NewAnalyzer(retriever, nil, generator)
		assert.Equal(t, ErrDetectorRequired, err)
	})

	t.Run("nil generator", func(t *testing.T) {
		_, err := NewAnalyzer(retriever, detector, nil)
		assert.Equal(t, ErrGeneratorRequired, err)
	})
}

// No topics, empty store: the analysis still completes with an empty
// context, empty tags only if the model says so, and a valid priority.
func TestAnalyze_EmptyStoreNoTopics(t *testing.T) {
	generator := mock.NewGenerator()
	generator.CompleteFunc = func(ctx context.Context, req ai.GenerationRequest) (string, error) {
		switch {
		case strings.Contains(req.Instruction, "clasificacion"):
			return `[]`, nil
		case strings.Contains(req.Instruction, "priorizacion"):
			return "medium", nil
		default:
			return "Conversacion exploratoria sin proyecto especifico.", nil
		}
	}
	analyzer := newTestAnalyzer(t, memory.New(0), generator)

	result, err := analyzer.Analyze(context.Background(), "conv-1", testMessages())
	require.NoError(t, err)

	assert.NotEmpty(t, result.Summary)
	assert.Empty(t, result.Tags)
	assert.True(t, result.Priority.Valid())

	// Every task saw the placeholder context, never an empty block.
	for _, req := range generator.Requests() {
		assert.Contains(t, req.Instruction, "No hay contexto adicional disponible.")
	}
}

func TestAnalyze_AssemblesAllThreeResults(t *testing.T) {
	analyzer := newTestAnalyzer(t, memory.New(0), routingGenerator())

	result, err := analyzer.Analyze(context.Background(), "conv-2", testMessages())
	require.NoError(t, err)

	assert.Equal(t, "La prospecta pregunto por precios de Lomas Verdes.", result.Summary)
	assert.Equal(t, []string{"pricing"}, result.Tags)
	assert.Equal(t, core.PriorityLow, result.Priority)
}

func TestAnalyze_TopicFilteredContextReachesTasks(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	embedder := mock.NewEmbedder()

	vector, err := embedder.EmbedText(ctx, "ficha tecnica")
	require.NoError(t, err)
	err = store.InsertChunks(ctx, []*core.Chunk{{
		Text:       "Lomas Verdes ofrece amenidades premium y alberca.",
		Embedding:  vector,
		ProjectTag: "Lomas Verdes",
	}})
	require.NoError(t, err)

	generator := routingGenerator()
	analyzer := newTestAnalyzer(t, store, generator)

	messages := []core.Message{
		{Sender: core.SenderTypeLead, SenderName: "Ana", Content: "me interesa lomas verdes"},
	}
	_, err = analyzer.Analyze(ctx, "conv-3", messages)
	require.NoError(t, err)

	requests := generator.Requests()
	require.Len(t, requests, 3)
	for _, req := range requests {
		assert.Contains(t, req.Instruction, "amenidades premium y alberca")
	}
}

func TestAnalyze_TranscriptFormat(t *testing.T) {
	generator := routingGenerator()
	analyzer := newTestAnalyzer(t, memory.New(0), generator)

	_, err := analyzer.Analyze(context.Background(), "conv-4", testMessages())
	require.NoError(t, err)

	var summaryInput string
	for _, req := range generator.Requests() {
		if strings.Contains(req.Instruction, "analista experto") {
			summaryInput = req.Input
		}
	}
	require.NotEmpty(t, summaryInput)
	assert.Contains(t, summaryInput, "Conversacion (ID: conv-4):")
	assert.Contains(t, summaryInput, "[Prospecto - Ana]: hola, busco informacion")
	assert.Contains(t, summaryInput, "[Asesor - Luis]: con gusto, que le interesa?")
}

// A failed retrieval degrades to an empty context instead of failing the
// whole analysis.
func TestAnalyze_RetrievalFailureDegrades(t *testing.T) {
	store := memory.New(0)
	analyzer := newTestAnalyzer(t, store, routingGenerator())
	require.NoError(t, store.Close())

	result, err := analyzer.Analyze(context.Background(), "conv-5", testMessages())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Summary)
}

// A failed generation task fails the whole request; no partial result.
func TestAnalyze_TaskFailureFailsRequest(t *testing.T) {
	generator := mock.NewGenerator()
	generator.CompleteFunc = func(ctx context.Context, req ai.GenerationRequest) (string, error) {
		if strings.Contains(req.Instruction, "priorizacion") {
			return "", core.ErrProviderUnavailable
		}
		return "ok", nil
	}
	analyzer := newTestAnalyzer(t, memory.New(0), generator)

	result, err := analyzer.Analyze(context.Background(), "conv-6", testMessages())
	assert.ErrorIs(t, err, core.ErrProviderUnavailable)
	assert.Nil(t, result)
}

func TestAnalyze_InputValidation(t *testing.T) {
	analyzer := newTestAnalyzer(t, memory.New(0), routingGenerator())

	t.Run("no messages", func(t *testing.T) {
		_, err := analyzer.Analyze(context.Background(), "conv-7", nil)
		assert.ErrorIs(t, err, ErrNoMessages)
	})

	t.Run("invalid message", func(t *testing.T) {
		_, err := analyzer.Analyze(context.Background(), "conv-8", []core.Message{
			{Sender: core.SenderTypeLead, SenderName: "Ana", Content: ""},
		})
		assert.ErrorIs(t, err, core.ErrInvalidMessage)
	})
}
