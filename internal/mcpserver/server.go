// Package mcpserver exposes the task tools and board context over the Model
// Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"task-board-system.com/task-board-system/internal/tools"
)

const (
	CurrentTasksURI = "tasks://current"
	StatsURI        = "tasks://stats"
)

func New(registry *tools.Registry, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"taskboard",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(tools.Instructions),
	)

	for _, t := range registry.Tools() {
		s.AddTool(toolDefinition(t), handle(registry, t.Name))
	}

	s.AddResource(
		mcp.NewResource(CurrentTasksURI, "Current tasks",
			mcp.WithResourceDescription("Every task on the board with its id, status, priority, due date and parent."),
			mcp.WithMIMEType("application/json"),
		),
		readContext(registry, CurrentTasksURI, func(c tools.ReadableContext) any { return c.Tasks }),
	)
	s.AddResource(
		mcp.NewResource(StatsURI, "Task statistics",
			mcp.WithResourceDescription("Counts per column plus high-priority and overdue totals."),
			mcp.WithMIMEType("application/json"),
		),
		readContext(registry, StatsURI, func(c tools.ReadableContext) any { return c.Stats }),
	)

	return s
}

func toolDefinition(t tools.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}

	for _, p := range t.Params {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		switch p.Type {
		case tools.TypeSubtasks:
			propOpts = append(propOpts, mcp.Items(subtaskItem))
			opts = append(opts, mcp.WithArray(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}

	return mcp.NewTool(t.Name, opts...)
}

var subtaskItem = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":       map[string]any{"type": "string", "description": "Subtask title"},
		"description": map[string]any{"type": "string", "description": "Optional details"},
	},
	"required": []string{"title"},
}

// handle forwards the raw MCP arguments to the registry. Tool failures are
// returned as error results so the assistant can read and act on them.
func handle(registry *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("The arguments could not be encoded."), nil
		}

		res := registry.Call(ctx, tools.Call{Name: name, Input: input})
		if res.IsError {
			return mcp.NewToolResultError(res.Content), nil
		}
		return mcp.NewToolResultText(res.Content), nil
	}
}

func readContext(registry *tools.Registry, uri string, pick func(tools.ReadableContext) any) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		c, err := registry.ReadableContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("read tasks: %w", err)
		}

		data, err := json.MarshalIndent(pick(c), "", "  ")
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(data)},
		}, nil
	}
}
