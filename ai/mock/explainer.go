package mock

import (
	"context"
	"fmt"

	"github.com/candela-systems/scholarmatch/core"
)

// MockExplainer is a test double for ai.Explainer.
// It allows custom behavior injection via function fields.
type MockExplainer struct {
	// ExplainFunc is called by Explain if set.
	// If nil, uses a deterministic score-based reason.
	ExplainFunc func(ctx context.Context, profile *core.Profile, analysis *core.QueryAnalysis, score float64) []string

	callCount int
}

// NewMockExplainer creates a mock explainer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockExplainer() *MockExplainer {
	return &MockExplainer{}
}

// Explain returns a single deterministic reason naming the profile.
func (m *MockExplainer) Explain(ctx context.Context, profile *core.Profile, analysis *core.QueryAnalysis, score float64) []string {
	m.callCount++

	if m.ExplainFunc != nil {
		return m.ExplainFunc(ctx, profile, analysis, score)
	}

	name := "unknown"
	if profile != nil {
		name = profile.Name
	}
	return []string{fmt.Sprintf("mock reason for %s (%.3f)", name, score)}
}

// CallCount returns the number of times Explain was called.
func (m *MockExplainer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockExplainer) Reset() {
	m.callCount = 0
	m.ExplainFunc = nil
}
