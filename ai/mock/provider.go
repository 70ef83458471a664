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


package mock

import "github.com/candela-systems/scholarmatch/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, analyzer, and explainer instances.
type MockProvider struct {
	embedder  *MockEmbedder
	analyzer  *MockAnalyzer
	explainer *MockExplainer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use GetMockEmbedder()/GetMockAnalyzer()/
// GetMockExplainer() to access concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		analyzer:  NewMockAnalyzer(),
		explainer: NewMockExplainer(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock
// services. This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, analyzer *MockAnalyzer, explainer *MockExplainer) ai.Provider {
	return &MockProvider{
		embedder:  embedder,
		analyzer:  analyzer,
		explainer: explainer,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryAnalyzer returns the mock analyzer.
func (p *MockProvider) QueryAnalyzer() ai.QueryAnalyzer {
	return p.analyzer
}

// Explainer returns the mock explainer.
func (p *MockProvider) Explainer() ai.Explainer {
	return p.explainer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockAnalyzer returns the underlying mock analyzer for test assertions.
func (p *MockProvider) GetMockAnalyzer() *MockAnalyzer {
	return p.analyzer
}

// GetMockExplainer returns the underlying mock explainer for test assertions.
func (p *MockProvider) GetMockExplainer() *MockExplainer {
	return p.explainer
}
