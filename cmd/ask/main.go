package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"insightgpt-be/internal/bootstrap"
	"insightgpt-be/internal/config"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/database"

	"github.com/fatih/color"
)

// ask runs one question through the pipeline in-process, optionally after
// indexing a document:
//
//	go run ./cmd/ask -doc report.pdf "How did Q3 revenue change?"
func main() {
	docPath := flag.String("doc", "", "document to index before asking")
	flag.Parse()

	question := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if question == "" {
		color.Red("Usage: ask [-doc file] <question>")
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	p, err := bootstrap.NewPipeline(ctx, db, cfg, logger.NewConsoleLogger())
	if err != nil {
		color.Red("Failed to build pipeline: %v", err)
		os.Exit(1)
	}

	if *docPath != "" {
		data, err := os.ReadFile(*docPath)
		if err != nil {
			color.Red("Failed to read %s: %v", *docPath, err)
			os.Exit(1)
		}
		color.Yellow("Indexing %s...", *docPath)
		gen, err := p.Index.BuildFromFile(ctx, *docPath, data)
		if err != nil {
			color.Red("Failed to index document: %v", err)
			os.Exit(1)
		}
		color.Green("Indexed %d chunks (generation %s)", gen.ChunkCount, gen.ID)
	}

	answerCtx, cancel := context.WithTimeout(ctx, cfg.Pipeline.QueryTimeout)
	defer cancel()

	color.Cyan("Q: %s", question)
	answer := p.Query.Answer(answerCtx, question)

	if answer.Failure != "" {
		color.Yellow("route=%s failure=%s", answer.Route, answer.Failure)
	} else {
		color.Green("route=%s", answer.Route)
	}
	fmt.Println(answer.DisplayText)

	if answer.Chart != nil {
		b, err := json.MarshalIndent(answer.Chart, "", "  ")
		if err == nil {
			color.Magenta("\nChart:")
			fmt.Println(string(b))
		}
	}

	if answer.Failure.Fatal() {
		os.Exit(1)
	}
}
