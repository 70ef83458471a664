// Copyright 2025 Candela Systems
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


// Package ai provides abstractions for the AI services used in
// scholarmatch.
//
// The package defines three service interfaces and an aggregating
// provider:
//
//   - Embedder: generates vector embeddings from text
//   - QueryAnalyzer: structures a free-text interest statement
//   - Explainer: produces per-match reasons
//   - Provider: aggregates the services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs,
//     degrading to the heuristic behavior on backend failure
//   - ai/heuristic: deterministic implementations with no external calls
//   - ai/mock: test doubles for unit testing without external services
//
// Which analyzer and explainer a provider serves is fixed at
// construction time from the configured credential; there is no runtime
// capability probing. QueryAnalyzer and Explainer implementations never
// fail: every backend error is absorbed into a documented fallback, so
// a match request can only be rejected by boundary validation.
package ai
