package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/estateflow/leadlens/ai"
	"github.com/estateflow/leadlens/core"
)

// PriorityTask assesses the lead's priority level. It never fails on
// malformed output: normalization and a substring scan recover a level
// from sloppy model responses, and anything unrecognizable defaults to
// medium.
type PriorityTask struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewPriorityTask creates a priority task backed by the given generator.
func NewPriorityTask(generator ai.Generator) (*PriorityTask, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	return &PriorityTask{
		generator: generator,
		logger:    slog.Default().With("component", "priority-task"),
	}, nil
}

// Generate returns a valid priority level for the transcript. The returned
// value is always one of high, medium, or low.
func (t *PriorityTask) Generate(ctx context.Context, transcript, projectContext string) (core.Priority, error) {
	instruction, err := renderInstruction(priorityPrompt, projectContext)
	if err != nil {
		return "", fmt.Errorf("render priority instruction: %w", err)
	}

	raw, err := t.generator.Complete(ctx, ai.GenerationRequest{
		Instruction: instruction,
		Input:       "Conversacion:\n\n" + transcript,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	return t.parsePriority(raw), nil
}

// parsePriority extracts a valid priority level from model output.
// The model should return a single word but we normalize and validate
// to be safe.
func (t *PriorityTask) parsePriority(raw string) core.Priority {
	cleaned := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), ".")

	if p := core.Priority(cleaned); p.Valid() {
		return p
	}

	// Accept a level mentioned anywhere in the output, first match wins.
	for _, p := range []core.Priority{core.PriorityHigh, core.PriorityMedium, core.PriorityLow} {
		if strings.Contains(cleaned, string(p)) {
			return p
		}
	}

	t.logger.Warn("could not parse priority from model output, defaulting to medium", "output", head(raw, 100))
	return core.PriorityMedium
}
