package tools

import (
	"context"

	"go.uber.org/zap"

	"github.com/ocrandkong/ragflow/internal/scraper"
	"github.com/ocrandkong/ragflow/internal/sheets"
	"github.com/ocrandkong/ragflow/pkg/logger"
)

// Executor handles tool execution. Every invocation returns a well-formed
// JSON envelope string; failures never escape as errors to the caller.
type Executor struct {
	sheets  *sheets.Service
	scraper *scraper.Scraper
	logger  *zap.Logger
}

// NewExecutor creates a new tool executor
func NewExecutor(sheetsService *sheets.Service, webScraper *scraper.Scraper) *Executor {
	return &Executor{
		sheets:  sheetsService,
		scraper: webScraper,
		logger:  logger.Get(),
	}
}

// Execute runs a tool call and returns the response envelope
func (e *Executor) Execute(ctx context.Context, name string, args map[string]interface{}) string {
	e.logger.Debug("Executing tool", zap.String("tool", name))

	switch name {
	case ToolSheetsUIDQuery:
		return e.executeSheetsUIDQuery(ctx, args)
	case ToolWebScraper:
		return e.executeWebScrape(ctx, args)
	default:
		e.logger.Warn("Unknown tool", zap.String("tool", name))
		return encodeResult(errorEnvelope{
			Success: false,
			Error:   "Unknown tool",
			Message: "Unknown tool: " + name,
		})
	}
}

// ============================================================================
// Argument extraction helpers
// ============================================================================

// argString falls back only when the key is absent or not a string. An
// explicitly passed empty string is returned as-is so validation can reject
// it instead of a default silently taking its place.
func argString(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return fallback
}

func argBool(args map[string]interface{}, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

// argInt tolerates the float64 that JSON decoding produces for numbers.
func argInt(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
