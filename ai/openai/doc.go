// Package openai implements the ai service interfaces against
// OpenAI-compatible HTTP APIs via langchaingo. It works with hosted
// OpenAI endpoints as well as local services (Ollama, LocalAI, vLLM).
//
// Generative analysis and explanation absorb every backend failure into
// the deterministic heuristic behavior, so a broken or rate-limited
// backend shows up as degraded output, never as a failed request.
package openai
