// Copyright 2025 Poiesic Systems
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

	"github.com/poiesic/rampart/adversary"
	"github.com/poiesic/rampart/ai"
	"github.com/poiesic/rampart/ai/openai"
	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/guardrail"
	"github.com/poiesic/rampart/search"
	"github.com/poiesic/rampart/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "rampart",
		Usage: "Security guardrails and hybrid retrieval for LLM calls",
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
				Name:      "scan",
				Usage:     "Scan text against the guardrail rules and print detections",
				ArgsUsage: "<text>",
				Action:    scanCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "direction",
						Usage: "Scan direction (input or output)",
						Value: "input",
					},
				},
			},
			{
				Name:      "analyze",
				Usage:     "Analyze text for adversarial patterns, persisting positives",
				ArgsUsage: "<text>",
				Action:    analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB event store directory",
					},
				},
			},
			{
				Name:   "events",
				Usage:  "List recent security events from the event store",
				Action: eventsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB event store directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of events to list",
						Value: 20,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run an adaptive hybrid search over a document file",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "docs",
						Usage:    "Path to a file with one document per line",
						Required: true,
					},
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
					&cli.BoolFlag{
						Name:  "expert",
						Usage: "Treat the caller as a domain expert",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func scanCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		return fmt.Errorf("text to scan is required")
	}

	var direction core.Direction
	switch c.String("direction") {
	case "input":
		direction = core.DirectionInput
	case "output":
		direction = core.DirectionOutput
	default:
		return fmt.Errorf("invalid direction %q: must be input or output", c.String("direction"))
	}

	detector, err := guardrail.NewDetector()
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}

	report := detector.Scan(text, direction)
	fmt.Printf("Direction:  %s\n", direction)
	fmt.Printf("Blocked:    %t\n", report.Blocked)
	fmt.Printf("Detections: %d\n", len(report.Detections))
	for _, d := range report.Detections {
		fmt.Printf("  [%s] %s: %s (rule %s, %s matches)\n",
			d.Severity, d.Type, d.Message, d.Details["rule"], d.Details["matches"])
	}
	fmt.Printf("Sanitized:  %s\n", report.Sanitized)
	return nil
}

func analyzeCommand(c *cli.Context) error {
	ctx := context.Background()

	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		return fmt.Errorf("text to analyze is required")
	}

	opts := []adversary.Option{}
	if dbPath := c.String("db"); dbPath != "" {
		backend, err := badger.OpenBackend(dbPath, false)
		if err != nil {
			return fmt.Errorf("failed to open event store: %w", err)
		}
		defer backend.Close()

		repo, err := badger.NewEventRepository(backend)
		if err != nil {
			return fmt.Errorf("failed to create event repository: %w", err)
		}
		defer repo.Close()

		opts = append(opts, adversary.WithEventSink(repo))
	}

	monitor, err := adversary.NewMonitor(opts...)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	analysis := monitor.Analyze(ctx, "cli", text)
	fmt.Printf("Attack:     %t\n", analysis.IsAttack)
	if analysis.IsAttack {
		fmt.Printf("Type:       %s\n", analysis.Type)
		fmt.Printf("Severity:   %s\n", analysis.Severity)
		fmt.Printf("Confidence: %.2f\n", analysis.Confidence)
	}
	for _, d := range analysis.Detections {
		fmt.Printf("  [%s] %s: %s\n", d.Severity, d.Type, d.Message)
	}
	return nil
}

func eventsCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEventRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create event repository: %w", err)
	}
	defer repo.Close()

	events, err := repo.GetRecentEvents(ctx, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return nil
	}
	for _, evt := range events {
		fmt.Printf("%s  %-6s  %-8s  %-8s  call=%s  blocked=%t  %s\n",
			evt.Timestamp.Format("2006-01-02 15:04:05"),
			evt.Kind, evt.Severity, evt.DetectionType, evt.CallId, evt.Blocked, evt.Message)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	data, err := os.ReadFile(c.String("docs"))
	if err != nil {
		return fmt.Errorf("failed to read documents: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	corpus := search.NewMemoryCorpus(embedder)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc := core.Document{Content: line, Source: core.SourceNews}
		if err := corpus.Add(ctx, doc); err != nil {
			return fmt.Errorf("failed to index document: %w", err)
		}
	}
	fmt.Fprintf(os.Stderr, "Indexed %d documents\n\n", corpus.Len())

	retriever, err := search.NewRetriever(corpus)
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}
	defer retriever.Close()

	results, err := retriever.AdaptiveSearch(ctx, query, search.Context{Expert: c.Bool("expert")})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	for i, r := range results {
		fmt.Printf("%2d. (%.3f combined, %.2f confidence) %s\n",
			i+1, r.Scores.Combined, r.Confidence, r.Content)
		for _, h := range r.Highlights {
			fmt.Printf("      > %s\n", h)
		}
	}
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
