// Package ai defines the provider-facing interfaces for text embedding and
// text generation, together with their shared configuration.
//
// Implementations live in subpackages (openai for OpenAI-compatible APIs,
// mock for deterministic test doubles). Consumers depend only on the
// interfaces defined here.
package ai
