// Package openai implements the ai interfaces against OpenAI-compatible
// APIs (the hosted OpenAI service, Ollama, LocalAI, vLLM) through
// langchaingo clients.
package openai
