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

// Analyzer implements ai.QueryAnalyzer using OpenAI-compatible chat APIs.
// One generative call per query, no retries; any failure degrades to the
// heuristic analysis, so Analyze never reports an error to its caller.
type Analyzer struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.QueryAnalyzer = (*Analyzer)(nil)

// analysisResponse matches the JSON object requested from the model.
type analysisResponse struct {
	PrimaryAreas                 []string `json:"primary_areas"`
	Methodologies                []string `json:"methodologies"`
	Keywords                     []string `json:"keywords"`
	SpecificTopics               []string `json:"specific_topics"`
	InterdisciplinaryConnections []string `json:"interdisciplinary_connections"`
}

// newAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnalyzer(config *ai.Config) (*Analyzer, error) {
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

	return &Analyzer{
		client: client,
		logger: slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewAnalyzer creates a generative query analyzer using the provided
// configuration.
//
// Returns ai.QueryAnalyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.QueryAnalyzer, error) {
	return newAnalyzer(config)
}

// Analyze structures the raw interest statement with one generative
// call. Backend errors and unparsable responses fall back to the
// deterministic heuristic analysis.
func (a *Analyzer) Analyze(ctx context.Context, rawText string) *core.QueryAnalysis {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildAnalysisPrompt(rawText)),
			},
		},
	}

	response, err := a.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.3), llms.WithMaxTokens(500), llms.WithJSONMode())
	if err != nil {
		a.logger.Warn("query analysis call failed, using heuristic fallback", "err", err)
		return heuristic.Analyze(rawText)
	}

	if len(response.Choices) < 1 {
		a.logger.Warn("no choices returned from model, using heuristic fallback")
		return heuristic.Analyze(rawText)
	}

	responseText := repairJSON(stripFences(response.Choices[0].Content))

	var parsed analysisResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		a.logger.Warn("error parsing analysis response, using heuristic fallback",
			"response", responseText, "err", err)
		return heuristic.Analyze(rawText)
	}

	analysis := &core.QueryAnalysis{
		RawText:                      rawText,
		PrimaryAreas:                 parsed.PrimaryAreas,
		Methodologies:                parsed.Methodologies,
		Keywords:                     parsed.Keywords,
		SpecificTopics:               parsed.SpecificTopics,
		InterdisciplinaryConnections: parsed.InterdisciplinaryConnections,
	}

	// A parsed object with no keywords is useless for ranking and
	// explanation; treat it like a malformed response.
	if len(analysis.Keywords) == 0 {
		a.logger.Warn("analysis response had no keywords, using heuristic fallback")
		return heuristic.Analyze(rawText)
	}

	a.logger.Debug("analyzed query", "keywords", len(analysis.Keywords))
	return analysis
}
