package heuristic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_Analyze(t *testing.T) {
	analyzer := NewAnalyzer()
	ctx := context.Background()

	t.Run("splits keywords on whitespace", func(t *testing.T) {
		analysis := analyzer.Analyze(ctx, "a b c")
		require.NotNil(t, analysis)
		assert.Equal(t, "a b c", analysis.RawText)
		assert.Equal(t, []string{"a", "b", "c"}, analysis.Keywords)
	})

	t.Run("other fields carry the raw text", func(t *testing.T) {
		analysis := analyzer.Analyze(ctx, "deep learning")
		assert.Equal(t, []string{"deep learning"}, analysis.PrimaryAreas)
		assert.Equal(t, []string{"deep learning"}, analysis.Methodologies)
		assert.Equal(t, []string{"deep learning"}, analysis.SpecificTopics)
		assert.Equal(t, []string{"deep learning"}, analysis.InterdisciplinaryConnections)
	})

	t.Run("collapses repeated whitespace", func(t *testing.T) {
		analysis := analyzer.Analyze(ctx, "  graph   neural networks ")
		assert.Equal(t, []string{"graph", "neural", "networks"}, analysis.Keywords)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first := analyzer.Analyze(ctx, "quantum computing")
		second := analyzer.Analyze(ctx, "quantum computing")
		assert.Equal(t, first, second)
	})
}
