// Copyright 2026 Dossier Labs
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

	"github.com/urfave/cli/v2"

	"github.com/dossierlab/dossier"
	"github.com/dossierlab/dossier/ai"
	"github.com/dossierlab/dossier/index"
	"github.com/dossierlab/dossier/store"
)

// Example questions the demo dataset can answer.
var exampleQueries = []string{
	"What events involved John Smith in 2023?",
	"List people whose profession is Doctor and who attended events on Climate Change.",
	"List events happened in Washington DC during Feb 2023 to June 2023.",
}

// pipelineFlags are shared by every command that opens the pipeline.
var pipelineFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to the SQLite database holding source rows",
		Value:   dossier.DefaultDatabasePath,
		EnvVars: []string{"DOSSIER_DB"},
	},
	&cli.StringFlag{
		Name:    "store",
		Aliases: []string{"s"},
		Usage:   "Path to the document store directory",
		Value:   dossier.DefaultStorePath,
		EnvVars: []string{"DOSSIER_STORE"},
	},
	&cli.StringFlag{
		Name:    "collection",
		Usage:   "Document collection name",
		Value:   dossier.DefaultCollection,
		EnvVars: []string{"DOSSIER_COLLECTION"},
	},
	&cli.StringFlag{
		Name:    "metric",
		Usage:   "Distance metric for new collections (cosine, l2)",
		Value:   string(store.MetricCosine),
		EnvVars: []string{"DOSSIER_METRIC"},
	},
	&cli.StringFlag{
		Name:    "host",
		Usage:   "Ollama host URL",
		Value:   ai.DefaultHost,
		EnvVars: []string{"OLLAMA_HOST"},
	},
	&cli.StringFlag{
		Name:    "embed-model",
		Usage:   "Embedding model name",
		Value:   ai.DefaultEmbeddingModel,
		EnvVars: []string{"EMBED_MODEL"},
	},
	&cli.StringFlag{
		Name:    "chat-model",
		Usage:   "Chat model name",
		Value:   ai.DefaultChatModel,
		EnvVars: []string{"CHAT_MODEL"},
	},
	&cli.IntFlag{
		Name:    "top-k",
		Usage:   "Number of context documents retrieved per question",
		Value:   dossier.DefaultTopK,
		EnvVars: []string{"TOP_K"},
	},
}

func main() {
	app := &cli.App{
		Name:  "dossier",
		Usage: "Question answering over relational person and event records",
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
				Name:   "seed",
				Usage:  "Load the built-in sample dataset into the source database",
				Action: seedCommand,
				Flags:  pipelineFlags,
			},
			{
				Name:   "index",
				Usage:  "Embed every source row and upsert it into the document store",
				Action: indexCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Documents embedded and upserted per batch",
						Value: 16,
					},
					&cli.BoolFlag{
						Name:  "skip-failed",
						Usage: "Skip batches whose embedding call fails instead of aborting",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 25,
					},
				}, pipelineFlags...),
			},
			{
				Name:      "ask",
				Usage:     "Answer a question using the indexed documents",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "show-context",
						Usage: "Print the retrieved context documents before the answer",
					},
				}, pipelineFlags...),
			},
			{
				Name:   "examples",
				Usage:  "Run the built-in example questions",
				Action: examplesCommand,
				Flags:  pipelineFlags,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// buildConfig maps CLI flags to the pipeline configuration.
func buildConfig(c *cli.Context) (*dossier.Config, error) {
	metric, err := store.ParseMetric(c.String("metric"))
	if err != nil {
		return nil, err
	}

	return &dossier.Config{
		DatabasePath: c.String("db"),
		StorePath:    c.String("store"),
		Collection:   c.String("collection"),
		Metric:       metric,
		TopK:         c.Int("top-k"),
		AI: ai.NewConfig(
			ai.WithHost(c.String("host")),
			ai.WithEmbeddingModel(c.String("embed-model")),
			ai.WithChatModel(c.String("chat-model")),
		),
	}, nil
}

func openPipeline(c *cli.Context) (*dossier.Pipeline, error) {
	cfg, err := buildConfig(c)
	if err != nil {
		return nil, err
	}
	return dossier.Open(cfg)
}

func seedCommand(c *cli.Context) error {
	pipeline, err := openPipeline(c)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}
	defer pipeline.Close()

	if err := pipeline.Seed(context.Background()); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Sample dataset loaded into %s\n", c.String("db"))
	return nil
}

func indexCommand(c *cli.Context) error {
	pipeline, err := openPipeline(c)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}
	defer pipeline.Close()

	opts := []index.Option{
		index.WithBatchSize(c.Int("batch-size")),
		index.WithProgress(os.Stderr, c.Int("report-interval")),
	}
	if c.Bool("skip-failed") {
		opts = append(opts, index.WithSkipFailedBatches())
	}

	stats, err := pipeline.Index(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d documents (%d persons, %d events, %d skipped batches)\n",
		stats.Indexed, stats.Persons, stats.Events, stats.SkippedBatches)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required, e.g.: dossier ask %q", exampleQueries[0])
	}

	pipeline, err := openPipeline(c)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}
	defer pipeline.Close()

	return askOne(c, pipeline, question)
}

func examplesCommand(c *cli.Context) error {
	pipeline, err := openPipeline(c)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}
	defer pipeline.Close()

	for _, question := range exampleQueries {
		fmt.Printf("=== QUERY: %s\n", question)
		if err := askOne(c, pipeline, question); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}

func askOne(c *cli.Context, pipeline *dossier.Pipeline, question string) error {
	result, err := pipeline.Ask(context.Background(), question)
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	if c.Bool("show-context") {
		for i, m := range result.Matches {
			fmt.Fprintf(os.Stderr, "--- context %d (id=%s, distance=%.4f) ---\n%s\n\n",
				i+1, m.Document.ID, m.Distance, m.Document.Text)
		}
	}

	fmt.Println(result.Text)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
