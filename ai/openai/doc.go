// Package openai implements the ai service contracts against
// OpenAI-compatible HTTP APIs (OpenAI, Ollama, LocalAI, vLLM).
package openai
