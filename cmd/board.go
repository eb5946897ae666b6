package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-board-system.com/task-board-system/internal/board"
	model "task-board-system.com/task-board-system/internal/models"
	"task-board-system.com/task-board-system/internal/render"
)

var (
	boardNested bool
	boardJSON   bool
	boardWidth  int
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the board grouped by status",
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

		var view board.Nested
		if boardNested {
			view = board.GroupWithSubtasks(tasks)
		} else {
			view = flatten(board.GroupByStatus(tasks))
		}

		out := cmd.OutOrStdout()
		if boardJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if boardNested {
				return enc.Encode(view)
			}
			return enc.Encode(board.GroupByStatus(tasks))
		}

		fmt.Fprintln(out, render.Board(view, boardWidth, time.Now()))
		fmt.Fprintln(out, summaryLine(board.Summarize(tasks, time.Now())))
		return nil
	},
}

func flatten(c board.Columns) board.Nested {
	wrap := func(tasks []model.Task) []board.GroupedTask {
		out := make([]board.GroupedTask, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, board.GroupedTask{Task: t})
		}
		return out
	}
	return board.Nested{Todo: wrap(c.Todo), InProgress: wrap(c.InProgress), Done: wrap(c.Done)}
}

func summaryLine(s board.Stats) string {
	return fmt.Sprintf("%d tasks: %d to do, %d in progress, %d done, %d high priority, %d overdue",
		s.Total, s.Todo, s.InProgress, s.Done, s.HighPriority, s.Overdue)
}

func init() {
	boardCmd.Flags().BoolVar(&boardNested, "nested", false, "show subtasks under their parents")
	boardCmd.Flags().BoolVar(&boardJSON, "json", false, "print the projection as JSON")
	boardCmd.Flags().IntVar(&boardWidth, "width", 120, "terminal width")
	rootCmd.AddCommand(boardCmd)
}
