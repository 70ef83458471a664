package heuristic

import (
	"context"
	"fmt"
	"strings"

	"github.com/candela-systems/scholarmatch/ai"
	"github.com/candela-systems/scholarmatch/core"
)

// Explainer produces match reasons by keyword lookup, with a numeric
// score reason as the last resort. It makes no external calls.
type Explainer struct{}

var _ ai.Explainer = (*Explainer)(nil)

// NewExplainer creates a heuristic explainer.
//
// Returns ai.Explainer interface for consistency with the production
// constructors.
func NewExplainer() ai.Explainer {
	return &Explainer{}
}

// Explain emits one reason per analysis keyword found in the profile's
// consolidated research text (case-insensitive substring match). If no
// keyword hits, the single reason is the similarity score.
func (e *Explainer) Explain(_ context.Context, profile *core.Profile, analysis *core.QueryAnalysis, score float64) []string {
	return Explain(profile, analysis, score)
}

// Explain is the package-level heuristic explanation, shared with the
// generative explainer's failure path. It never returns an empty slice.
func Explain(profile *core.Profile, analysis *core.QueryAnalysis, score float64) []string {
	var reasons []string
	if profile != nil && analysis != nil {
		researchText := strings.ToLower(profile.ResearchText())
		for _, keyword := range analysis.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(researchText, strings.ToLower(keyword)) {
				reasons = append(reasons, fmt.Sprintf("Research involves %s", keyword))
			}
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fmt.Sprintf("Semantic similarity score: %.3f", score))
	}
	return reasons
}
