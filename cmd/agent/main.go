// Command agent runs one agent turn against an OpenAI-compatible endpoint:
// it advertises the tool plugins, executes whatever tool calls the model
// requests, and prints the envelopes plus the model's final answer.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ocrandkong/ragflow/internal/adapter"
	"github.com/ocrandkong/ragflow/internal/scraper"
	"github.com/ocrandkong/ragflow/internal/sheets"
	"github.com/ocrandkong/ragflow/internal/tools"
	"github.com/ocrandkong/ragflow/pkg/config"
	"github.com/ocrandkong/ragflow/pkg/logger"
)

const systemPrompt = "You are a support assistant. Use google_sheets_uid_query to look up " +
	"user records (always pass the classification category in query_context when the " +
	"conversation contains one) and web_scraper to read web pages the user mentions."

func main() {
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: agent <message>")
		os.Exit(2)
	}
	userMsg := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	sheetsService := sheets.NewService(cfg.ServiceAccountFile, cfg.SpreadsheetID)
	webScraper := scraper.New(cfg.ScraperUserAgent)
	executor := tools.NewExecutor(sheetsService, webScraper)
	llm := adapter.NewLLMAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelID)

	ctx := context.Background()
	response, err := llm.Generate(ctx, systemPrompt, userMsg, tools.GetAllTools())
	if err != nil {
		log.Fatal("LLM request failed", zap.Error(err))
	}

	if len(response.ToolCalls) == 0 {
		fmt.Println(response.Content)
		return
	}

	for _, call := range response.ToolCalls {
		log.Info("Model requested tool",
			zap.String("tool", call.Name),
			zap.Any("arguments", call.Arguments),
		)
		fmt.Println(executor.Execute(ctx, call.Name, call.Arguments))
	}
}
