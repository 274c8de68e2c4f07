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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/estateflow/leadlens/ai"
	"github.com/estateflow/leadlens/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// retryBaseDelay is the initial backoff between generation attempts.
// Each subsequent attempt doubles it.
const retryBaseDelay = 500 * time.Millisecond

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
// Transient failures are retried with bounded attempts and exponential
// backoff; callers never see a partially retried state.
type Generator struct {
	client     llms.Model
	maxRetries int
	logger     *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client:     client,
		maxRetries: config.MaxRetries,
		logger:     slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Complete runs one generation call, retrying transient failures up to the
// configured attempt limit. The raw model output is returned untrimmed;
// output validation belongs to the task that issued the request.
func (g *Generator) Complete(ctx context.Context, req ai.GenerationRequest) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(req.Instruction),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(req.Input),
			},
		},
	}

	var lastErr error
	delay := retryBaseDelay
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(req.Temperature))
		if err == nil {
			if len(response.Choices) < 1 {
				g.logger.Debug("no choices returned from model")
				return "", nil
			}
			return response.Choices[0].Content, nil
		}

		lastErr = err
		g.logger.Warn("generation attempt failed", "attempt", attempt, "err", err)

		if attempt == g.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", core.ErrProviderUnavailable, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	g.logger.Error("generation failed after retries", "attempts", g.maxRetries, "err", lastErr)
	return "", fmt.Errorf("%w: generation after %d attempts: %v", core.ErrProviderUnavailable, g.maxRetries, lastErr)
}
