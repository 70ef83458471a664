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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/candela-systems/scholarmatch/ai"
	"github.com/candela-systems/scholarmatch/ai/heuristic"
	"github.com/candela-systems/scholarmatch/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Explainer implements ai.Explainer using OpenAI-compatible chat APIs.
// One generative call per surviving match; failures degrade to the
// heuristic keyword explanation, so Explain never returns empty and
// never reports an error.
type Explainer struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.Explainer = (*Explainer)(nil)

// newExplainer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newExplainer(config *ai.Config) (*Explainer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Credential),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Explainer{
		client: client,
		logger: slog.Default().With("component", "openai-explainer"),
	}, nil
}

// NewExplainer creates a generative match explainer using the provided
// configuration.
//
// Returns ai.Explainer interface to enforce abstraction.
func NewExplainer(config *ai.Config) (ai.Explainer, error) {
	return newExplainer(config)
}

// Explain requests 2-3 concise match reasons from the generative
// backend. Any failure falls back to the heuristic keyword reasons.
func (e *Explainer) Explain(ctx context.Context, profile *core.Profile, analysis *core.QueryAnalysis, score float64) []string {
	if profile == nil || analysis == nil {
		return heuristic.Explain(profile, analysis, score)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildReasonsPrompt(profile, analysis, score)),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.3), llms.WithMaxTokens(300))
	if err != nil {
		e.logger.Warn("explanation call failed, using heuristic fallback",
			"profile", profile.Name, "err", err)
		return heuristic.Explain(profile, analysis, score)
	}

	if len(response.Choices) < 1 {
		e.logger.Warn("no choices returned from model, using heuristic fallback",
			"profile", profile.Name)
		return heuristic.Explain(profile, analysis, score)
	}

	responseText := stripFences(response.Choices[0].Content)

	var reasons []string
	if err := json.Unmarshal([]byte(responseText), &reasons); err != nil {
		e.logger.Warn("error parsing reasons response, using heuristic fallback",
			"profile", profile.Name, "response", responseText, "err", err)
		return heuristic.Explain(profile, analysis, score)
	}

	// Drop empty entries the model may emit.
	filtered := reasons[:0]
	for _, reason := range reasons {
		if reason != "" {
			filtered = append(filtered, reason)
		}
	}
	if len(filtered) == 0 {
		return heuristic.Explain(profile, analysis, score)
	}
	return filtered
}
