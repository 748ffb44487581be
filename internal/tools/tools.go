package tools

import (
	"github.com/ocrandkong/ragflow/internal/adapter"
)

// Tool names
const (
	ToolSheetsUIDQuery = "google_sheets_uid_query"
	ToolWebScraper     = "web_scraper"
)

// GetAllTools returns all available tools for the agent
func GetAllTools() []adapter.Tool {
	tools := []adapter.Tool{}

	tools = append(tools, GetSheetsTools()...)
	tools = append(tools, GetWebTools()...)

	return tools
}
