package match

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/candela-systems/scholarmatch/ai"
	"github.com/candela-systems/scholarmatch/core"
	"github.com/panjf2000/ants/v2"
)

// Matcher runs the full interest-to-profile matching pipeline: query
// analysis, concurrent similarity scoring across the corpus, threshold
// filtering, ranking, and per-match explanations.
type Matcher struct {
	similarity *SimilarityEngine
	analyzer   ai.QueryAnalyzer
	explainer  ai.Explainer
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithPoolSize sets the number of workers scoring profiles concurrently.
// Default is half the CPU count, minimum 1.
func WithPoolSize(size int) Option {
	return func(m *Matcher) error {
		if size < 1 {
			size = 1
		}

		if m.pool != nil {
			m.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// WithCacheSize sets the embedding cache capacity on the underlying
// similarity engine. Zero disables caching.
func WithCacheSize(maxEntries int64) Option {
	return func(m *Matcher) error {
		return WithEmbeddingCache(maxEntries)(m.similarity)
	}
}

// NewMatcher creates a matcher from an AI provider. The provider's
// analyzer and explainer carry their own fallback behavior, so matching
// degrades rather than fails when the generative backend is unavailable.
func NewMatcher(provider ai.Provider, opts ...Option) (*Matcher, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	similarity, err := NewSimilarityEngine(provider.Embedder())
	if err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	m := &Matcher{
		similarity: similarity,
		analyzer:   provider.QueryAnalyzer(),
		explainer:  provider.Explainer(),
		pool:       pool,
		logger:     slog.Default().With("component", "matcher"),
	}

	for _, opt := range opts {
		if optErr := opt(m); optErr != nil {
			m.Release()
			return nil, optErr
		}
	}

	return m, nil
}

// Release frees the worker pool and embedding cache. The matcher must
// not be used after Release.
func (m *Matcher) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
	if m.similarity != nil {
		m.similarity.Close()
	}
}

// Match runs the pipeline for a request and returns ranked matches.
// The only error paths are request validation and context cancellation;
// per-profile failures are logged, counted in the result, and skipped.
func (m *Matcher) Match(ctx context.Context, req *core.MatchRequest) (*core.MatchResult, error) {
	return m.MatchWithMonitor(ctx, req, nil)
}

// MatchWithMonitor is Match with pipeline callbacks. A nil monitor is
// equivalent to Match.
func (m *Matcher) MatchWithMonitor(ctx context.Context, req *core.MatchRequest, monitor MatchMonitor) (*core.MatchResult, error) {
	if monitor == nil {
		monitor = noopMonitor{}
	}

	if err := core.ValidateMatchRequest(req); err != nil {
		return nil, err
	}

	monitor.Start(req.RawText)

	analysis := m.analyzer.Analyze(ctx, req.RawText)
	monitor.AfterAnalysis(analysis)

	matches, skipped, err := m.rank(ctx, req, analysis, monitor)
	if err != nil {
		return nil, err
	}
	monitor.AfterRanking(matches)

	for _, match := range matches {
		match.Reasons = m.explainer.Explain(ctx, match.Profile, analysis, match.Score)
	}

	result := &core.MatchResult{
		Matches:       matches,
		TotalProfiles: len(req.Profiles),
		Skipped:       skipped,
	}
	monitor.Finish(result)

	return result, nil
}

// rank scores every usable profile against the analysis comparison text,
// filters by threshold, and returns matches sorted by descending score,
// capped at the request limit. Ties keep corpus order.
func (m *Matcher) rank(ctx context.Context, req *core.MatchRequest, analysis *core.QueryAnalysis, monitor MatchMonitor) ([]*core.Match, int, error) {
	queryText := analysis.ComparisonText()

	scores := make([]float64, len(req.Profiles))
	scored := make([]bool, len(req.Profiles))
	failed := make([]error, len(req.Profiles))
	skipped := 0

	var wg sync.WaitGroup
	for i, profile := range req.Profiles {
		if profile == nil || strings.TrimSpace(profile.Name) == "" {
			skipped++
			monitor.ProfileSkipped(profile, "missing name")
			continue
		}

		text := profile.ResearchText()
		if strings.TrimSpace(text) == "" {
			skipped++
			monitor.ProfileSkipped(profile, "no research text")
			continue
		}

		score := func() {
			defer wg.Done()
			value, err := m.similarity.Score(ctx, queryText, text)
			if err != nil {
				failed[i] = err
				return
			}
			scores[i] = value
			scored[i] = true
		}

		wg.Add(1)
		if err := m.pool.Submit(score); err != nil {
			// Pool exhausted or released; score on the caller.
			score()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var matches []*core.Match
	for i, profile := range req.Profiles {
		if failed[i] != nil {
			skipped++
			m.logger.Error("skipping profile", "name", profile.Name, "err", failed[i])
			monitor.ProfileSkipped(profile, failed[i].Error())
			continue
		}
		if !scored[i] {
			continue
		}

		monitor.ProfileScored(profile, scores[i])
		if scores[i] >= req.Threshold {
			matches = append(matches, &core.Match{
				Profile: profile,
				Score:   scores[i],
			})
		}
	}

	// Matches are appended in corpus order, so a stable sort keeps that
	// order among equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > req.MaxResults {
		matches = matches[:req.MaxResults]
	}

	return matches, skipped, nil
}
