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


package chunker

import (
	"errors"

	"github.com/tmc/langchaingo/textsplitter"
)

// Default splitting parameters, tuned for project document ingestion.
const (
	DefaultChunkSize    = 600
	DefaultChunkOverlap = 100
)

// separators is the split priority ladder: paragraph breaks first, then
// line breaks, sentence ends, clause breaks, whitespace, and finally hard
// character cuts.
var separators = []string{"\n\n", "\n", ". ", ", ", " ", ""}

// ErrInvalidParams indicates a non-positive size or an overlap that is not
// smaller than the chunk size.
var ErrInvalidParams = errors.New("chunker: overlap must be smaller than chunk size")

// Split breaks text into segments of at most maxSize characters, preferring
// the most semantically significant separator that keeps segments within
// bounds. Adjacent segments share up to overlap characters of context.
//
// Empty input yields an empty slice, not an error.
func Split(text string, maxSize, overlap int) ([]string, error) {
	if maxSize < 1 || overlap < 0 || overlap >= maxSize {
		return nil, ErrInvalidParams
	}
	if text == "" {
		return []string{}, nil
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(maxSize),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithSeparators(separators),
	)

	parts, err := splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	// The splitter can emit empty segments for separator-only input.
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks, nil
}
