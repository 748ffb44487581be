package tools

import (
	"github.com/ocrandkong/ragflow/internal/adapter"
)

// GetSheetsTools returns the Google Sheets lookup tools
func GetSheetsTools() []adapter.Tool {
	return []adapter.Tool{
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name: ToolSheetsUIDQuery,
				Description: "Query user information by UID from Google Sheets. " +
					"This tool uses predefined classification categories to determine which sheet to query. " +
					"IMPORTANT: You MUST provide both uid and query_context parameters. " +
					"The query_context should contain the classification category such as: " +
					"'查询个人活动奖励类' (for reward data), '查询黑牌用户类' (for riskcontrol data), " +
					"or '查询问题类' (for general inquiries). " +
					"The system will automatically map the category to the correct data sheet.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"uid": map[string]interface{}{
							"type":        "string",
							"description": "The user ID (UID) to query. This should be the unique identifier for the user in the Google Sheet.",
						},
						"query_context": map[string]interface{}{
							"type": "string",
							"description": "The classification category that determines which sheet to query. " +
								"RECOMMENDED: Pass the exact category from your classification system. " +
								"Supported categories: " +
								"'查询个人活动奖励类' → reward sheet, " +
								"'查询黑牌用户类' → riskcontrol sheet, " +
								"'查询问题类' → riskcontrol sheet. " +
								"If not provided, the system will try to infer from the user's question keywords, " +
								"but providing the category ensures more accurate routing.",
							"default": "",
						},
					},
					"required": []string{"uid"},
				},
			},
		},
	}
}
