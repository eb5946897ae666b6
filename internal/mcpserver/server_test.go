package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-board-system.com/task-board-system/internal/board"
	repository "task-board-system.com/task-board-system/internal/repositories"
	"task-board-system.com/task-board-system/internal/services"
	"task-board-system.com/task-board-system/internal/tools"
)

func newRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	repo, err := repository.NewMemoryTaskRepository(nil)
	require.NoError(t, err)
	return tools.NewRegistry(services.NewTaskService(repo), nil)
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestToolDefinition_Schema(t *testing.T) {
	registry := newRegistry(t)

	defs := map[string]mcp.Tool{}
	for _, tool := range registry.Tools() {
		defs[tool.Name] = toolDefinition(tool)
	}
	require.Len(t, defs, 6)

	create := defs["createTask"]
	assert.Equal(t, []string{"title"}, create.InputSchema.Required)
	assert.Contains(t, create.InputSchema.Properties, "dueDate")

	breakdown := defs["breakdownTask"]
	assert.ElementsMatch(t, []string{"id", "subtasks"}, breakdown.InputSchema.Required)
	subtasks, ok := breakdown.InputSchema.Properties["subtasks"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", subtasks["type"])
	assert.Equal(t, subtaskItem, subtasks["items"])
}

func TestHandle_CreateThenBreakdown(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Name = "createTask"
	req.Params.Arguments = map[string]any{"title": "Ship release", "priority": "high"}

	res, err := handle(registry, "createTask")(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Ship release")

	req = mcp.CallToolRequest{}
	req.Params.Name = "breakdownTask"
	req.Params.Arguments = map[string]any{
		"id": "ship",
		"subtasks": []any{
			map[string]any{"title": "Tag version"},
			map[string]any{"title": "Publish notes", "description": "changelog"},
		},
	}

	res, err = handle(registry, "breakdownTask")(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))

	c, err := registry.ReadableContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Stats.Total)
}

func TestHandle_ToolFailureIsErrorResult(t *testing.T) {
	registry := newRegistry(t)

	req := mcp.CallToolRequest{}
	req.Params.Name = "deleteTask"
	req.Params.Arguments = map[string]any{"id": "nothing-like-this"}

	res, err := handle(registry, "deleteTask")(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.NotEmpty(t, resultText(t, res))
}

func TestReadContext_Stats(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"title": "Write docs"}
	_, err := handle(registry, "createTask")(ctx, req)
	require.NoError(t, err)

	contents, err := readContext(registry, StatsURI, func(c tools.ReadableContext) any { return c.Stats })(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, StatsURI, text.URI)

	var stats board.Stats
	require.NoError(t, json.Unmarshal([]byte(text.Text), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Todo)
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(newRegistry(t), "test"))
}
