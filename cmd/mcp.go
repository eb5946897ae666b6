package cmd

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"task-board-system.com/task-board-system/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the task tools over MCP on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.close(ctx)
		}()

		return server.ServeStdio(mcpserver.New(a.registry, version))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
