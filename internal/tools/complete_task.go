package tools

import (
	"context"
	"fmt"

	"task-board-system.com/task-board-system/internal/constants"
	model "task-board-system.com/task-board-system/internal/models"
)

func markTaskCompleteTool() Tool {
	return Tool{
		Name:        "markTaskComplete",
		Description: "Mark a task as done.",
		Params: []Param{
			{Name: "id", Type: TypeString, Required: true, Description: "The task id from findTask (a unique title fragment also works)."},
		},
		handler: markTaskComplete,
	}
}

func markTaskComplete(ctx context.Context, inv *invocation) Result {
	task, res := inv.resolve(ctx, "id")
	if res != nil {
		return *res
	}

	if task.Status == constants.StatusDone {
		return inv.inform(ctx, fmt.Sprintf("%q is already done", task.Title),
			fmt.Sprintf("%q (id: %s) is already marked as done.", task.Title, task.ID))
	}

	done := constants.StatusDone
	updated, err := inv.client().UpdateTask(ctx, task.ID, model.UpdateTaskInput{Status: &done})
	if err != nil {
		return inv.failWith(ctx, "complete task", err)
	}

	return inv.succeed(ctx, "Completed: "+updated.Title,
		fmt.Sprintf("Successfully marked %q (id: %s) as complete.", updated.Title, updated.ID))
}
