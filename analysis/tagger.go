// Copyright 2025 EstateFlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/estateflow/leadlens/ai"
)

// ValidTags is the fixed classification vocabulary. Model output naming any
// tag outside this set is discarded silently.
var ValidTags = map[string]bool{
	"hot-lead":      true,
	"cold-lead":     true,
	"pricing":       true,
	"financing":     true,
	"site-visit":    true,
	"follow-up":     true,
	"urgent":        true,
	"investor":      true,
	"first-home":    true,
	"family":        true,
	"premium":       true,
	"comparison":    true,
	"early-stage":   true,
	"infonavit":     true,
	"documentation": true,
	"negotiation":   true,
}

var (
	codeFencePattern = regexp.MustCompile("```(?:json)?")
	arrayPattern     = regexp.MustCompile(`(?s)\[.*?\]`)
)

// TagTask classifies a conversation against the fixed tag vocabulary.
// The model is asked for a strict JSON array, but its output is unstructured
// text, so parsing runs a fallback chain: strict decode, then a salvage
// decode of the first bracketed substring, then an empty set. Parse failure
// never surfaces as an error.
type TagTask struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewTagTask creates a tagging task backed by the given generator.
func NewTagTask(generator ai.Generator) (*TagTask, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	return &TagTask{
		generator: generator,
		logger:    slog.Default().With("component", "tag-task"),
	}, nil
}

// Generate returns the applicable tags for the transcript. The result only
// ever contains entries from ValidTags.
func (t *TagTask) Generate(ctx context.Context, transcript, projectContext string) ([]string, error) {
	instruction, err := renderInstruction(taggerPrompt, projectContext)
	if err != nil {
		return nil, fmt.Errorf("render tagger instruction: %w", err)
	}

	raw, err := t.generator.Complete(ctx, ai.GenerationRequest{
		Instruction: instruction,
		Input:       "Conversacion:\n\n" + transcript,
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}
	return t.parseTags(raw), nil
}

// parseTags decodes the model output into vocabulary tags.
func (t *TagTask) parseTags(raw string) []string {
	cleaned := codeFencePattern.ReplaceAllString(raw, "")
	cleaned = strings.Trim(strings.TrimSpace(cleaned), "`")

	if tags, ok := decodeTagArray(cleaned); ok {
		return tags
	}

	// Salvage: the first array-like substring anywhere in the output.
	if match := arrayPattern.FindString(cleaned); match != "" {
		if tags, ok := decodeTagArray(match); ok {
			return tags
		}
	}

	t.logger.Warn("could not parse tags from model output", "output", head(raw, 200))
	return []string{}
}

// decodeTagArray attempts a strict JSON array decode, keeping only entries
// from the fixed vocabulary.
func decodeTagArray(s string) ([]string, bool) {
	var parsed []string
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return nil, false
	}
	tags := make([]string, 0, len(parsed))
	for _, tag := range parsed {
		if ValidTags[tag] {
			tags = append(tags, tag)
		}
	}
	return tags, true
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
