package heuristic

import (
	"context"
	"strings"

	"github.com/candela-systems/scholarmatch/ai"
	"github.com/candela-systems/scholarmatch/core"
)

// Analyzer is the deterministic query analyzer used when no generative
// credential is configured. It is also the fallback target for the
// generative analyzer.
type Analyzer struct{}

var _ ai.QueryAnalyzer = (*Analyzer)(nil)

// NewAnalyzer creates a heuristic analyzer.
//
// Returns ai.QueryAnalyzer interface for consistency with the
// production constructors.
func NewAnalyzer() ai.QueryAnalyzer {
	return &Analyzer{}
}

// Analyze splits the raw text into whitespace-delimited keywords.
// Every other analysis field carries the raw text as its single element,
// so downstream consumers always see a fully populated analysis.
func (a *Analyzer) Analyze(_ context.Context, rawText string) *core.QueryAnalysis {
	return Analyze(rawText)
}

// Analyze is the package-level deterministic analysis, shared with the
// generative analyzer's failure path.
func Analyze(rawText string) *core.QueryAnalysis {
	return &core.QueryAnalysis{
		RawText:                      rawText,
		PrimaryAreas:                 []string{rawText},
		Methodologies:                []string{rawText},
		Keywords:                     strings.Fields(rawText),
		SpecificTopics:               []string{rawText},
		InterdisciplinaryConnections: []string{rawText},
	}
}
