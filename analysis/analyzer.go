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
	"fmt"
	"log/slog"
	"strings"

	"github.com/estateflow/leadlens/ai"
	"github.com/estateflow/leadlens/core"
	"github.com/estateflow/leadlens/retrieval"
	"github.com/estateflow/leadlens/topic"
	"golang.org/x/sync/errgroup"
)

const (
	// topicTopK passages are retrieved per detected project.
	topicTopK = 3
	// broadTopK passages are retrieved when no project is mentioned.
	broadTopK = 4
	// queryMessageWindow is how many leading messages form the retrieval query.
	queryMessageWindow = 5
	// contextSeparator joins retrieved passages into one context string.
	contextSeparator = "\n---\n"
)

// Analyzer composes topic detection, retrieval, and the three generation
// tasks into one conversation analysis.
type Analyzer struct {
	retriever *retrieval.Retriever
	detector  *topic.Detector
	summary   *SummaryTask
	tagger    *TagTask
	priority  *PriorityTask
	logger    *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnalyzer creates an analyzer. The three generation tasks share the
// given generator.
func NewAnalyzer(retriever *retrieval.Retriever, detector *topic.Detector, generator ai.Generator, opts ...Option) (*Analyzer, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if detector == nil {
		return nil, ErrDetectorRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	summary, err := NewSummaryTask(generator)
	if err != nil {
		return nil, err
	}
	tagger, err := NewTagTask(generator)
	if err != nil {
		return nil, err
	}
	priority, err := NewPriorityTask(generator)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		retriever: retriever,
		detector:  detector,
		summary:   summary,
		tagger:    tagger,
		priority:  priority,
		logger:    slog.Default().With("component", "analyzer"),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Analyze runs the full pipeline on a conversation: transcript rendering,
// topic detection, context retrieval, and the three generation tasks run
// concurrently. The three results are joined into one AnalysisResult; if
// any task fails the whole request fails and no partial result is returned.
// Retrieval failure is non-fatal and degrades to an empty context.
func (a *Analyzer) Analyze(ctx context.Context, conversationID string, messages []core.Message) (*core.AnalysisResult, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}
	for i := range messages {
		if err := core.ValidateMessage(&messages[i]); err != nil {
			return nil, err
		}
	}

	transcript := formatConversation(messages)
	projectContext := a.buildContext(ctx, messages)

	a.logger.Info("analysing conversation",
		"conversationID", conversationID,
		"messages", len(messages),
		"contextChars", len(projectContext))

	var (
		summary  string
		tags     []string
		priority core.Priority
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = a.summary.Generate(gctx, conversationID, transcript, projectContext)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = a.tagger.Generate(gctx, transcript, projectContext)
		return err
	})
	g.Go(func() error {
		var err error
		priority, err = a.priority.Generate(gctx, transcript, projectContext)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis of conversation %s: %w", conversationID, err)
	}

	return &core.AnalysisResult{
		Summary:  summary,
		Tags:     tags,
		Priority: priority,
	}, nil
}

// buildContext retrieves relevant project passages for the conversation.
//
// When projects are mentioned, each one is queried separately (filtered by
// its tag) and the passages are concatenated in detection order. Otherwise
// a single broad search runs over the whole corpus. Either way the query is
// the concatenated content of the first few messages. Retrieval errors are
// logged and degrade to an empty context.
func (a *Analyzer) buildContext(ctx context.Context, messages []core.Message) string {
	query := retrievalQuery(messages)
	projects := a.detector.Detect(messages)

	var passages []core.RetrievedChunk
	if len(projects) > 0 {
		for _, project := range projects {
			hits, err := a.retriever.Retrieve(ctx, query, topicTopK, project)
			if err != nil {
				a.logger.Warn("retrieval failed, continuing with partial context", "project", project, "err", err)
				continue
			}
			passages = append(passages, hits...)
		}
	} else {
		hits, err := a.retriever.Retrieve(ctx, query, broadTopK, "")
		if err != nil {
			a.logger.Warn("retrieval failed, continuing without context", "err", err)
		} else {
			passages = hits
		}
	}

	if len(passages) == 0 {
		return ""
	}
	texts := make([]string, len(passages))
	for i, hit := range passages {
		texts[i] = hit.Text
	}
	return strings.Join(texts, contextSeparator)
}

// retrievalQuery concatenates the content of the leading messages.
func retrievalQuery(messages []core.Message) string {
	window := messages
	if len(window) > queryMessageWindow {
		window = window[:queryMessageWindow]
	}
	parts := make([]string, len(window))
	for i, msg := range window {
		parts[i] = msg.Content
	}
	return strings.Join(parts, " ")
}

// formatConversation renders messages into a readable transcript, one line
// per message as "[<label> - <name>]: <content>".
func formatConversation(messages []core.Message) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = fmt.Sprintf("[%s - %s]: %s", msg.Sender.Label(), msg.SenderName, msg.Content)
	}
	return strings.Join(lines, "\n")
}
