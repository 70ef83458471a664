package match

import (
	"context"
	"log/slog"
	"math"

	"github.com/candela-systems/scholarmatch/ai"
	"github.com/dgraph-io/ristretto/v2"
)

// SimilarityEngine computes semantic similarity between two texts by
// embedding both and taking the cosine of the vectors. The embedder is
// a shared, read-only resource; the engine is safe for concurrent use.
//
// An optional in-memory cache keyed by text content avoids re-embedding
// the same consolidated text within and across requests. Profile text is
// immutable per corpus snapshot, so no invalidation is needed.
type SimilarityEngine struct {
	embedder ai.Embedder
	cache    *ristretto.Cache[string, []float32]
	logger   *slog.Logger
}

// SimilarityOption configures a SimilarityEngine.
type SimilarityOption func(*SimilarityEngine) error

// WithSimilarityLogger sets a custom logger.
// Default is slog.Default().
func WithSimilarityLogger(logger *slog.Logger) SimilarityOption {
	return func(e *SimilarityEngine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithEmbeddingCache enables an embedding cache holding roughly
// maxEntries vectors. A maxEntries <= 0 disables caching.
func WithEmbeddingCache(maxEntries int64) SimilarityOption {
	return func(e *SimilarityEngine) error {
		if maxEntries <= 0 {
			e.cache = nil
			return nil
		}
		cache, err := ristretto.NewCache(&ristretto.Config[string, []float32]{
			NumCounters: maxEntries * 10,
			MaxCost:     maxEntries,
			BufferItems: 64,
		})
		if err != nil {
			return err
		}
		e.cache = cache
		return nil
	}
}

// NewSimilarityEngine creates a similarity engine on top of an embedder.
func NewSimilarityEngine(embedder ai.Embedder, opts ...SimilarityOption) (*SimilarityEngine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &SimilarityEngine{
		embedder: embedder,
		logger:   slog.Default().With("component", "similarity"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Similarity returns the cosine similarity of the two texts, or 0.0 on
// any embedding failure. A failed comparison must never outrank a
// genuine low-similarity match, so zero is the conservative default.
func (e *SimilarityEngine) Similarity(ctx context.Context, textA, textB string) float64 {
	score, err := e.Score(ctx, textA, textB)
	if err != nil {
		e.logger.Error("similarity computation failed", "err", err)
		return 0.0
	}
	return score
}

// Score is the error-reporting form of Similarity, used by callers that
// distinguish a failed comparison from a genuinely dissimilar pair.
func (e *SimilarityEngine) Score(ctx context.Context, textA, textB string) (float64, error) {
	vecA, err := e.embed(ctx, textA)
	if err != nil {
		return 0, err
	}
	vecB, err := e.embed(ctx, textB)
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(vecA, vecB), nil
}

// Close releases the embedding cache, if any.
func (e *SimilarityEngine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

func (e *SimilarityEngine) embed(ctx context.Context, text string) ([]float32, error) {
	if e.cache != nil {
		if vec, found := e.cache.Get(text); found {
			return vec, nil
		}
	}

	vec, err := e.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(text, vec, 1)
	}
	return vec, nil
}

// CosineSimilarity returns the cosine of two vectors. Mismatched lengths
// are compared over the shorter prefix; a zero-norm or empty vector
// yields 0.0 (the degenerate-embedding case).
func CosineSimilarity(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
