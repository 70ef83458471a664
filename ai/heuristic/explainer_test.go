package heuristic

import (
	"context"
	"testing"

	"github.com/candela-systems/scholarmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainer_Explain(t *testing.T) {
	explainer := NewExplainer()
	ctx := context.Background()

	profile := &core.Profile{
		Name:              "Alice Chen",
		ResearchInterests: []string{"machine learning", "computer vision"},
		Bio:               "Builds perception systems.",
	}

	t.Run("one reason per matching keyword", func(t *testing.T) {
		analysis := &core.QueryAnalysis{
			RawText:  "vision learning",
			Keywords: []string{"vision", "learning"},
		}
		reasons := explainer.Explain(ctx, profile, analysis, 0.82)
		require.Len(t, reasons, 2)
		assert.Contains(t, reasons, "Research involves vision")
		assert.Contains(t, reasons, "Research involves learning")
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		analysis := &core.QueryAnalysis{Keywords: []string{"Vision"}}
		reasons := explainer.Explain(ctx, profile, analysis, 0.5)
		require.Len(t, reasons, 1)
		assert.Equal(t, "Research involves Vision", reasons[0])
	})

	t.Run("score fallback when no keyword hits", func(t *testing.T) {
		analysis := &core.QueryAnalysis{Keywords: []string{"volcanology"}}
		reasons := explainer.Explain(ctx, profile, analysis, 0.7125)
		require.Len(t, reasons, 1)
		assert.Equal(t, "Semantic similarity score: 0.713", reasons[0])
	})

	t.Run("never empty even with nil inputs", func(t *testing.T) {
		reasons := explainer.Explain(ctx, nil, nil, 0.25)
		require.Len(t, reasons, 1)
		assert.Equal(t, "Semantic similarity score: 0.250", reasons[0])
	})
}
