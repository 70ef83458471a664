// Copyright 2025 Candela Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scholarmatch

import (
	"context"
	"log/slog"

	"github.com/candela-systems/scholarmatch/ai"
	"github.com/candela-systems/scholarmatch/ai/openai"
	"github.com/candela-systems/scholarmatch/core"
	"github.com/candela-systems/scholarmatch/corpus"
	"github.com/candela-systems/scholarmatch/match"
	"github.com/candela-systems/scholarmatch/storage"
	"github.com/candela-systems/scholarmatch/storage/badger"
)

// Engine wires the profile store, AI provider, and matcher into a single
// handle with one Close.
type Engine struct {
	backend     *badger.Backend
	profileRepo storage.ProfileRepository
	provider    ai.Provider
	matcher     *match.Matcher
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	inMemory    bool
	matcherOpts []match.Option
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithInMemoryStorage uses an in-memory profile store instead of a
// directory on disk.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithMatcherOptions passes options through to the matcher.
func WithMatcherOptions(opts ...match.Option) EngineOption {
	return func(o *engineOptions) {
		o.matcherOpts = append(o.matcherOpts, opts...)
	}
}

// NewEngine opens the profile store at filePath and constructs the AI
// provider and matcher. The provider picks generative or heuristic
// analysis from the configured credential at construction time.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	profileRepo, err := badger.NewProfileRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		profileRepo.Close()
		backend.Close()
		return nil, err
	}

	matcher, err := match.NewMatcher(provider, options.matcherOpts...)
	if err != nil {
		provider.Close()
		profileRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:     backend,
		profileRepo: profileRepo,
		provider:    provider,
		matcher:     matcher,
		logger:      slog.Default(),
	}, nil
}

func (e *Engine) Close() error {
	e.matcher.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.profileRepo.Close(); err != nil {
		e.logger.Error("error closing profile repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Engine) ProfileRepository() storage.ProfileRepository {
	return e.profileRepo
}

func (e *Engine) Matcher() *match.Matcher {
	return e.matcher
}

// LoadCorpus reads a collector file and adds its profiles to the store.
// Returns the number of profiles stored and the number skipped by
// validation.
func (e *Engine) LoadCorpus(ctx context.Context, path string) (added, skipped int, err error) {
	result, err := corpus.LoadFile(path)
	if err != nil {
		return 0, 0, err
	}

	if len(result.Profiles) > 0 {
		if _, err := e.profileRepo.AddProfiles(ctx, result.Profiles...); err != nil {
			return 0, result.Skipped, err
		}
	}

	return len(result.Profiles), result.Skipped, nil
}

// MatchStored runs the matching pipeline against the stored corpus.
// A non-positive maxResults uses the default cap.
func (e *Engine) MatchStored(ctx context.Context, rawText string, threshold float64, maxResults int) (*core.MatchResult, error) {
	if maxResults <= 0 {
		maxResults = core.DefaultMaxResults
	}

	profiles, err := e.profileRepo.AllProfiles(ctx)
	if err != nil {
		return nil, err
	}

	return e.matcher.Match(ctx, &core.MatchRequest{
		RawText:    rawText,
		Profiles:   profiles,
		Threshold:  threshold,
		MaxResults: maxResults,
	})
}

// MatchProfiles runs the matching pipeline against an ad hoc corpus
// without touching the store.
func (e *Engine) MatchProfiles(ctx context.Context, rawText string, profiles []*core.Profile, threshold float64, maxResults int) (*core.MatchResult, error) {
	if maxResults <= 0 {
		maxResults = core.DefaultMaxResults
	}

	return e.matcher.Match(ctx, &core.MatchRequest{
		RawText:    rawText,
		Profiles:   profiles,
		Threshold:  threshold,
		MaxResults: maxResults,
	})
}
