package match

import (
	"context"
	"errors"
	"testing"

	"github.com/candela-systems/scholarmatch/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{1, 2, 3}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{0, 1}
		assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{-1, 0}
		assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-9)
	})

	t.Run("zero vector", func(t *testing.T) {
		a := []float32{0, 0, 0}
		b := []float32{1, 2, 3}
		assert.Equal(t, 0.0, CosineSimilarity(a, b))
	})

	t.Run("empty vectors", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
		assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, nil))
	})

	t.Run("mismatched lengths use common prefix", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{1, 0, 5}
		got := CosineSimilarity(a, b)
		assert.Greater(t, got, 0.0)
	})
}

func TestNewSimilarityEngine(t *testing.T) {
	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewSimilarityEngine(nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewSimilarityEngine(mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.NotNil(t, engine)
		engine.Close()
	})

	t.Run("with cache", func(t *testing.T) {
		engine, err := NewSimilarityEngine(mock.NewMockEmbedder(), WithEmbeddingCache(1000))
		require.NoError(t, err)
		assert.NotNil(t, engine)
		engine.Close()
	})

	t.Run("cache disabled with non-positive size", func(t *testing.T) {
		engine, err := NewSimilarityEngine(mock.NewMockEmbedder(), WithEmbeddingCache(0))
		require.NoError(t, err)
		assert.NotNil(t, engine)
		engine.Close()
	})
}

func TestSimilarityEngine_Score(t *testing.T) {
	ctx := context.Background()

	t.Run("self similarity is one", func(t *testing.T) {
		engine, err := NewSimilarityEngine(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer engine.Close()

		score, err := engine.Score(ctx, "deep learning for genomics", "deep learning for genomics")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-6)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		engine, err := NewSimilarityEngine(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer engine.Close()

		first, err := engine.Score(ctx, "quantum computing", "condensed matter physics")
		require.NoError(t, err)
		second, err := engine.Score(ctx, "quantum computing", "condensed matter physics")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("embedding failure propagates", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("backend unavailable")
		}

		engine, err := NewSimilarityEngine(embedder)
		require.NoError(t, err)
		defer engine.Close()

		_, err = engine.Score(ctx, "a", "b")
		assert.Error(t, err)
	})
}

func TestSimilarityEngine_Similarity(t *testing.T) {
	ctx := context.Background()

	t.Run("returns zero on failure", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("backend unavailable")
		}

		engine, err := NewSimilarityEngine(embedder)
		require.NoError(t, err)
		defer engine.Close()

		assert.Equal(t, 0.0, engine.Similarity(ctx, "a", "b"))
	})

	t.Run("returns zero for degenerate embedding", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{0, 0, 0}, nil
		}

		engine, err := NewSimilarityEngine(embedder)
		require.NoError(t, err)
		defer engine.Close()

		assert.Equal(t, 0.0, engine.Similarity(ctx, "a", "b"))
	})

	t.Run("cached scores match uncached scores", func(t *testing.T) {
		plain, err := NewSimilarityEngine(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer plain.Close()

		cached, err := NewSimilarityEngine(mock.NewMockEmbedder(), WithEmbeddingCache(100))
		require.NoError(t, err)
		defer cached.Close()

		want := plain.Similarity(ctx, "graph neural networks", "protein folding")
		got := cached.Similarity(ctx, "graph neural networks", "protein folding")
		assert.Equal(t, want, got)
	})
}
