package mock

import (
	"context"
	"strings"

	"github.com/candela-systems/scholarmatch/core"
)

// MockAnalyzer is a test double for ai.QueryAnalyzer.
// It allows custom behavior injection via function fields.
type MockAnalyzer struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, uses the default whitespace-split behavior.
	AnalyzeFunc func(ctx context.Context, rawText string) *core.QueryAnalysis

	callCount int
}

// NewMockAnalyzer creates a mock analyzer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// Analyze returns a deterministic analysis derived from the raw text.
func (m *MockAnalyzer) Analyze(ctx context.Context, rawText string) *core.QueryAnalysis {
	m.callCount++

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, rawText)
	}

	return &core.QueryAnalysis{
		RawText:                      rawText,
		PrimaryAreas:                 []string{rawText},
		Methodologies:                []string{rawText},
		Keywords:                     strings.Fields(rawText),
		SpecificTopics:               []string{rawText},
		InterdisciplinaryConnections: []string{rawText},
	}
}

// CallCount returns the number of times Analyze was called.
func (m *MockAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockAnalyzer) Reset() {
	m.callCount = 0
	m.AnalyzeFunc = nil
}
