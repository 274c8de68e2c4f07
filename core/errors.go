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

import "errors"

// Error taxonomy surfaced to callers. The excluded HTTP layer translates
// these into transport-level responses; the core only carries the kind and
// a descriptive message.
var (
	// ErrStorageUnavailable indicates the chunk store is unreachable or a
	// query failed. Ingestion rolls back atomically before surfacing it.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrProviderUnavailable indicates an embedding or generation call
	// exhausted its retries. No partial AnalysisResult is ever returned.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrInvalidSenderType indicates an unknown sender role value.
	ErrInvalidSenderType = errors.New("invalid sender type")

	// ErrEmptyContent indicates a message with no content.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidMessage indicates a Message failed validation.
	ErrInvalidMessage = errors.New("invalid message")
)
