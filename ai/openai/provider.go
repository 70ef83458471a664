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
	"log/slog"

	"github.com/candela-systems/scholarmatch/ai"
	"github.com/candela-systems/scholarmatch/ai/heuristic"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// The embedding service is always used; the analyzer and explainer
// variants are fixed at construction from the configured credential.
type Provider struct {
	config    *ai.Config
	embedder  *Embedder
	analyzer  ai.QueryAnalyzer
	explainer ai.Explainer
	logger    *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a new AI provider. With a credential configured it
// serves the generative analyzer and explainer; without one it serves
// the heuristic variants. Either way the embedder talks to the
// configured embedding service.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	var (
		analyzer  ai.QueryAnalyzer
		explainer ai.Explainer
	)
	if config.Generative() {
		analyzer, err = newAnalyzer(config)
		if err != nil {
			return nil, err
		}
		explainer, err = newExplainer(config)
		if err != nil {
			return nil, err
		}
	} else {
		analyzer = heuristic.NewAnalyzer()
		explainer = heuristic.NewExplainer()
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		analyzer:  analyzer,
		explainer: explainer,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryAnalyzer returns the query analysis service.
func (p *Provider) QueryAnalyzer() ai.QueryAnalyzer {
	return p.analyzer
}

// Explainer returns the match explanation service.
func (p *Provider) Explainer() ai.Explainer {
	return p.explainer
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
