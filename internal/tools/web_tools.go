package tools

import (
	"github.com/ocrandkong/ragflow/internal/adapter"
)

// GetWebTools returns the web content extraction tools
func GetWebTools() []adapter.Tool {
	return []adapter.Tool{
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name: ToolWebScraper,
				Description: "Scrape and extract content from web pages. Perfect for retrieving privacy policies, " +
					"terms of service, documentation, articles, and other web content. Supports extracting " +
					"content as markdown (best for LLM), plain text, or HTML. Can target specific sections " +
					"using CSS selectors.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"url": map[string]interface{}{
							"type":        "string",
							"description": "The URL of the web page to scrape (must include http:// or https://)",
						},
						"format": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"markdown", "text", "html"},
							"description": "Output format: 'markdown' (default, best for LLM), 'text' (plain text), or 'html' (raw HTML)",
							"default":     "markdown",
						},
						"selector": map[string]interface{}{
							"type":        "string",
							"description": "Optional CSS selector to extract only specific content (e.g., 'article', '.main-content', '#privacy-policy'). If not provided, extracts entire page.",
						},
						"remove_scripts": map[string]interface{}{
							"type":        "boolean",
							"description": "Remove <script> tags from output (default: true)",
							"default":     true,
						},
						"remove_styles": map[string]interface{}{
							"type":        "boolean",
							"description": "Remove <style> tags from output (default: true)",
							"default":     true,
						},
						"timeout": map[string]interface{}{
							"type":        "integer",
							"description": "Request timeout in seconds (default: 30)",
							"default":     30,
							"minimum":     5,
							"maximum":     120,
						},
					},
					"required": []string{"url"},
				},
			},
		},
	}
}
