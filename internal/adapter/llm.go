// Package adapter talks to an OpenAI-compatible chat completion endpoint
// and exposes the function-tool types the tool registry publishes.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/ocrandkong/ragflow/pkg/logger"
)

// Tool represents a function that can be called by the LLM
type Tool struct {
	Type     string             `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition defines a function that can be called
type FunctionDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ToolCall is a function call requested by the LLM
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]interface{}
}

// Response is the LLM's reply to one Generate call
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// LLMAdapter wraps an OpenAI-compatible client
type LLMAdapter struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewLLMAdapter creates an adapter against the given base URL. An empty API
// key is replaced with a placeholder so local proxies accept the request.
func NewLLMAdapter(baseURL, apiKey, model string) *LLMAdapter {
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL + "/v1"
	}

	return &LLMAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.Get(),
	}
}

// Generate sends one chat turn, advertising tools, and decodes any tool
// calls the model requested.
func (a *LLMAdapter) Generate(ctx context.Context, systemPrompt, userMsg string, tools []Tool) (*Response, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userMsg},
	}

	openaiTools := make([]openai.Tool, 0, len(tools))
	for _, tool := range tools {
		openaiTools = append(openaiTools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Function.Name,
				Description: tool.Function.Description,
				Parameters:  tool.Function.Parameters,
			},
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
		Tools:    openaiTools,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in LLM response")
	}

	choice := resp.Choices[0]
	response := &Response{Content: choice.Message.Content}

	for _, tc := range choice.Message.ToolCalls {
		args, err := parseJSONArguments(tc.Function.Arguments)
		if err != nil {
			a.logger.Warn("Failed to parse tool call arguments",
				zap.String("tool_id", tc.ID),
				zap.Error(err),
			)
			args = make(map[string]interface{})
		}
		response.ToolCalls = append(response.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	a.logger.Debug("LLM response generated",
		zap.String("model", a.model),
		zap.Int("tool_calls", len(response.ToolCalls)),
		zap.Bool("has_content", response.Content != ""),
	)

	return response, nil
}

// parseJSONArguments parses the JSON string arguments into a map
func parseJSONArguments(jsonStr string) (map[string]interface{}, error) {
	if jsonStr == "" {
		return make(map[string]interface{}), nil
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &args); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	return args, nil
}
