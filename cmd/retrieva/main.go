// Copyright 2025 Lingxi AI
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

	"github.com/lingxi-ai/retrieva"
	"github.com/lingxi-ai/retrieva/ai"
)

func main() {
	app := &cli.App{
		Name:  "retrieva",
		Usage: "Hybrid retrieval engine for Chinese knowledge bases",
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
				Name:      "index",
				Usage:     "Split, embed, and index documents into a knowledge base",
				ArgsUsage: "FILE...",
				Action:    indexCommand,
				Flags: append(engineFlags(),
					&cli.Int64Flag{
						Name:    "kb",
						Aliases: []string{"k"},
						Usage:   "Knowledge base ID",
						Value:   1,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Run a hybrid retrieval query against a knowledge base",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(engineFlags(),
					&cli.Int64Flag{
						Name:    "kb",
						Aliases: []string{"k"},
						Usage:   "Knowledge base ID",
						Value:   1,
					},
					&cli.BoolFlag{
						Name:  "hyde",
						Usage: "Rewrite the query with a hypothetical answer before retrieval",
					},
					&cli.BoolFlag{
						Name:  "hierarchy",
						Usage: "Search the document summary index instead of the chunk store",
					},
				),
			},
			{
				Name:      "remove",
				Usage:     "Remove a document from the summary index",
				ArgsUsage: "DOC_ID",
				Action:    removeCommand,
				Flags:     engineFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "qwen2.5:latest",
		},
		&cli.StringFlag{
			Name:  "generation-model",
			Usage: "Generation model name",
			Value: "qwen2.5:latest",
		},
	}
}

func openEngine(c *cli.Context) (*retrieva.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGenerationModel(c.String("generation-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := retrieva.NewEngine(c.String("db"), retrieva.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func indexCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	if err := engine.LoadIndex(ctx); err != nil {
		return fmt.Errorf("failed to load summary index: %w", err)
	}

	kbID := c.Int64("kb")
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := engine.IndexDocument(ctx, string(data), path, kbID); err != nil {
			return fmt.Errorf("failed to index %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "indexed %s into kb %d\n", path, kbID)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	kbID := c.Int64("kb")

	if c.Bool("hierarchy") {
		if err := engine.LoadIndex(ctx); err != nil {
			return fmt.Errorf("failed to load summary index: %w", err)
		}
		hits, err := engine.Indexer().Search(ctx, query, kbID, 3, 5)
		if err != nil {
			return err
		}
		fmt.Printf("Found %d hits\n", len(hits))
		for i, hit := range hits {
			fmt.Printf("%d: [%s] '%s' [%0.3f]\n", i, hit.DocID, hit.Text, hit.Score)
		}
		return nil
	}

	if c.Bool("hyde") {
		hyde, err := engine.NewHyDE()
		if err != nil {
			return err
		}
		query = hyde.Rewrite(ctx, query)
	}

	retriever, err := engine.NewRetriever()
	if err != nil {
		return err
	}
	results, err := retriever.Retrieve(ctx, query, kbID)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%s)[%0.3f]\n", i, hit.Chunk.Text, hit.Chunk.Source, hit.Final)
	}
	return nil
}

func removeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one document ID is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	if err := engine.LoadIndex(ctx); err != nil {
		return fmt.Errorf("failed to load summary index: %w", err)
	}
	return engine.RemoveDocument(ctx, c.Args().First())
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
