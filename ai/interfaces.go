package ai

import (
	"context"

	"github.com/candela-systems/scholarmatch/core"
)

// Embedder generates vector embeddings from text for semantic similarity
// scoring. Implementations must be thread-safe for concurrent use and
// deterministic for a fixed model version: the same input string yields
// the same vector on every call.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in
	// a batch. The returned slice contains embeddings in the same order
	// as the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryAnalyzer turns a raw interest statement into a structured
// analysis. Implementations never return an error for a non-empty query:
// any backend failure degrades to the deterministic fallback where
// Keywords is the whitespace-split raw text and every other field is the
// single-element raw text.
//
// Empty input is a caller error and is rejected at the request boundary
// before an analyzer is ever invoked.
type QueryAnalyzer interface {
	Analyze(ctx context.Context, rawText string) *core.QueryAnalysis
}

// Explainer produces the human-readable reasons a profile matched a
// query. Implementations never return an empty slice and never fail:
// when nothing better is available, the single reason is the numeric
// similarity score.
type Explainer interface {
	Explain(ctx context.Context, profile *core.Profile, analysis *core.QueryAnalysis, score float64) []string
}

// Provider aggregates the AI services behind one construction point.
// Which analyzer and explainer variants a provider hands out is decided
// when the provider is built (generative when a credential is
// configured, heuristic otherwise), not by runtime capability probing.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// QueryAnalyzer returns the query analysis service.
	QueryAnalyzer() QueryAnalyzer

	// Explainer returns the match explanation service.
	Explainer() Explainer

	// Close releases resources held by the provider and its services.
	Close() error
}
