package tools

import (
	"context"
	"fmt"

	"task-board-system.com/task-board-system/internal/board"
)

func deleteTaskTool() Tool {
	return Tool{
		Name:        "deleteTask",
		Description: "Delete a task permanently. Its direct subtasks are deleted with it.",
		Params: []Param{
			{Name: "id", Type: TypeString, Required: true, Description: "The task id from findTask (a unique title fragment also works)."},
		},
		handler: deleteTask,
	}
}

func deleteTask(ctx context.Context, inv *invocation) Result {
	task, res := inv.resolve(ctx, "id")
	if res != nil {
		return *res
	}

	children := len(board.Subtasks(inv.snapshot, task.ID))
	if err := inv.client().DeleteTask(ctx, task.ID); err != nil {
		return inv.failWith(ctx, "delete task", err)
	}

	text := fmt.Sprintf("Successfully deleted task: %q", task.Title)
	switch children {
	case 0:
		text += "."
	case 1:
		text += " and its subtask."
	default:
		text += fmt.Sprintf(" and its %d subtasks.", children)
	}
	return inv.succeed(ctx, "Deleted task: "+task.Title, text)
}
