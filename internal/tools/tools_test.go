package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllTools(t *testing.T) {
	all := GetAllTools()
	require.Len(t, all, 2)

	seen := map[string]bool{}
	for _, tool := range all {
		assert.Equal(t, "function", tool.Type)
		assert.NotEmpty(t, tool.Function.Name)
		assert.NotEmpty(t, tool.Function.Description)
		assert.False(t, seen[tool.Function.Name], "duplicate tool name %s", tool.Function.Name)
		seen[tool.Function.Name] = true

		params, ok := tool.Function.Parameters["properties"].(map[string]interface{})
		require.True(t, ok, "%s must declare properties", tool.Function.Name)
		assert.NotEmpty(t, params)
	}

	assert.True(t, seen[ToolSheetsUIDQuery])
	assert.True(t, seen[ToolWebScraper])
}

func TestSheetsToolSchema(t *testing.T) {
	tool := GetSheetsTools()[0]
	required, ok := tool.Function.Parameters["required"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"uid"}, required)

	props := tool.Function.Parameters["properties"].(map[string]interface{})
	assert.Contains(t, props, "uid")
	assert.Contains(t, props, "query_context")
}

func TestWebToolSchema(t *testing.T) {
	tool := GetWebTools()[0]
	props := tool.Function.Parameters["properties"].(map[string]interface{})

	format := props["format"].(map[string]interface{})
	assert.Equal(t, []string{"markdown", "text", "html"}, format["enum"])
	assert.Equal(t, "markdown", format["default"])

	timeout := props["timeout"].(map[string]interface{})
	assert.Equal(t, 5, timeout["minimum"])
	assert.Equal(t, 120, timeout["maximum"])
}
