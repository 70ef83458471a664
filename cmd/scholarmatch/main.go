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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/candela-systems/scholarmatch"
	"github.com/candela-systems/scholarmatch/ai"
	"github.com/candela-systems/scholarmatch/core"
	"github.com/candela-systems/scholarmatch/corpus"
	"github.com/candela-systems/scholarmatch/server"
	"github.com/candela-systems/scholarmatch/storage/badger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Pick up OPENAI_API_KEY and friends from a local .env if present
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "scholarmatch",
		Usage: "Match research interests against a corpus of researcher profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Load a collector JSON file into the profile store",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Collector JSON file to load",
						Required: true,
					},
				},
			},
			{
				Name:      "match",
				Usage:     "Match research interests against the stored corpus (or a collector file)",
				ArgsUsage: "<research interests>",
				Action:    matchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Match against a collector JSON file instead of a store",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum similarity score to include",
						Value: core.DefaultThreshold,
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of matches to return",
						Value: core.DefaultMaxResults,
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Write results to a file (.json or .csv) instead of stdout",
					},
				}, aiFlags()...),
			},
			{
				Name:   "serve",
				Usage:  "Serve the matching pipeline over HTTP",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
				}, aiFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat service host URL for query analysis and explanations",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name for query analysis and explanations",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "credential",
			Usage:   "API credential; when empty, analysis and explanations use heuristics",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithCredential(c.String("credential")),
	)
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewProfileRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	result, err := corpus.LoadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to load collector file: %w", err)
	}

	if len(result.Profiles) > 0 {
		if _, err := repo.AddProfiles(ctx, result.Profiles...); err != nil {
			return fmt.Errorf("failed to store profiles: %w", err)
		}
	}

	count, err := repo.CountProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to count profiles: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Loaded %d profiles (%d skipped), store now holds %d\n",
		len(result.Profiles), result.Skipped, count)
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	rawText := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(rawText) == "" {
		return fmt.Errorf("research interests are required")
	}

	dbPath := c.String("db")
	filePath := c.String("file")
	if dbPath == "" && filePath == "" {
		return fmt.Errorf("either --db or --file is required")
	}

	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	engineOpts := []scholarmatch.EngineOption{scholarmatch.WithAIConfig(aiConfig)}
	if dbPath == "" {
		engineOpts = append(engineOpts, scholarmatch.WithInMemoryStorage())
	}

	engine, err := scholarmatch.NewEngine(dbPath, engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	var result *core.MatchResult
	if filePath != "" {
		loaded, err := corpus.LoadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to load collector file: %w", err)
		}
		result, err = engine.MatchProfiles(ctx, rawText, loaded.Profiles, c.Float64("threshold"), c.Int("max-results"))
		if err != nil {
			return fmt.Errorf("matching failed: %w", err)
		}
	} else {
		result, err = engine.MatchStored(ctx, rawText, c.Float64("threshold"), c.Int("max-results"))
		if err != nil {
			return fmt.Errorf("matching failed: %w", err)
		}
	}

	if output := c.String("output"); output != "" {
		return writeResults(output, result.Matches)
	}

	fmt.Printf("Found %d matches across %d profiles (%d skipped)\n",
		len(result.Matches), result.TotalProfiles, result.Skipped)
	for i, match := range result.Matches {
		fmt.Printf("%d: %s", i+1, match.Profile.Name)
		if match.Profile.Department != "" {
			fmt.Printf(" (%s)", match.Profile.Department)
		}
		fmt.Printf(" [%0.3f]\n", match.Score)
		for _, reason := range match.Reasons {
			fmt.Printf("   - %s\n", reason)
		}
	}
	return nil
}

func writeResults(path string, matches []*core.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".csv") {
		return corpus.WriteCSV(f, matches)
	}
	return corpus.WriteJSON(f, matches)
}

func serveCommand(c *cli.Context) error {
	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := scholarmatch.NewEngine(c.String("db"), scholarmatch.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	srv := server.New(engine)
	slog.Info("starting server", "addr", c.String("addr"))
	return srv.Router().Run(c.String("addr"))
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
