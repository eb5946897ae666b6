package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"task-board-system.com/task-board-system/internal/tools"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [json arguments]",
	Short: "Invoke an assistant tool and print its result",
	Example: `  taskboard call findTask '{"query": "database"}'
  taskboard call breakdownTask '{"id": "demo-1", "subtasks": [{"title": "Pick a driver"}]}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input json.RawMessage
		if len(args) == 2 {
			input = json.RawMessage(args[1])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		res := a.registry.Call(cmd.Context(), tools.Call{Name: args[0], Input: input})
		if res.IsError {
			return errors.New(res.Content)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}
