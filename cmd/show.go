package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"task-board-system.com/task-board-system/internal/board"
	"task-board-system.com/task-board-system/internal/render"
	"task-board-system.com/task-board-system/internal/tools"
)

var showWidth int

var showCmd = &cobra.Command{
	Use:   "show <id or title>",
	Short: "Show one task and its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		tasks, err := a.tasks.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		task, err := tools.Resolve(tasks, args[0])
		if err != nil {
			var rerr *tools.ResolveError
			if errors.As(err, &rerr) {
				return errors.New(rerr.Guidance())
			}
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), render.TaskDetail(task, board.Subtasks(tasks, task.ID), showWidth))
		return nil
	},
}

func init() {
	showCmd.Flags().IntVar(&showWidth, "width", 80, "wrap width")
	rootCmd.AddCommand(showCmd)
}
