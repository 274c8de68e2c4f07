package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/estateflow/leadlens/ai"
)

// summaryTemperature allows mild variability; summaries are free text and
// benefit from natural phrasing.
const summaryTemperature = 0.3

// SummaryTask produces a concise Spanish-language summary of a conversation.
// Its output space is free text, so the raw model output is returned
// trimmed with no further validation.
type SummaryTask struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewSummaryTask creates a summary task backed by the given generator.
func NewSummaryTask(generator ai.Generator) (*SummaryTask, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	return &SummaryTask{
		generator: generator,
		logger:    slog.Default().With("component", "summary-task"),
	}, nil
}

// Generate summarizes the transcript using the retrieved project context.
func (t *SummaryTask) Generate(ctx context.Context, conversationID, transcript, projectContext string) (string, error) {
	instruction, err := renderInstruction(summaryPrompt, projectContext)
	if err != nil {
		return "", fmt.Errorf("render summary instruction: %w", err)
	}

	input := fmt.Sprintf("Conversacion (ID: %s):\n\n%s", conversationID, transcript)
	raw, err := t.generator.Complete(ctx, ai.GenerationRequest{
		Instruction: instruction,
		Input:       input,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}
