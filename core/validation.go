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


package core

import "fmt"

// ValidateMessage validates a conversation message according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - Sender must be a valid SenderType
//
// NOT validated:
//   - SenderName (display-only, may be empty)
func ValidateMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if msg.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyContent)
	}

	if err := ValidateSenderType(msg.Sender); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	return nil
}

// ValidateSenderType validates that a SenderType has a valid value.
func ValidateSenderType(sender SenderType) error {
	if sender != SenderTypeAgent && sender != SenderTypeLead {
		return fmt.Errorf("%w: value %d", ErrInvalidSenderType, sender)
	}
	return nil
}

// ValidateChunk validates a chunk before it is handed to the store.
//
// Validation rules:
//   - Text must not be empty
//   - Embedding must be present (dimensionality is enforced by the store)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("chunk is nil")
	}
	if chunk.Text == "" {
		return fmt.Errorf("chunk: %w", ErrEmptyContent)
	}
	if len(chunk.Embedding) == 0 {
		return fmt.Errorf("chunk %q: embedding is empty", truncate(chunk.Text, 40))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
