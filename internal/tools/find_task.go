package tools

import (
	"context"
	"fmt"
	"strings"

	"task-board-system.com/task-board-system/internal/board"
)

func findTaskTool() Tool {
	return Tool{
		Name: "findTask",
		Description: "Search the board for tasks by id or by part of their title (case-insensitive). " +
			"Call this before updating, completing, deleting or breaking down a task to learn its exact id.",
		Params: []Param{
			{Name: "query", Type: TypeString, Required: true, Description: "A task id or words from the task title."},
		},
		handler: findTask,
	}
}

func findTask(ctx context.Context, inv *invocation) Result {
	query := inv.args.text("query")
	if query == "" {
		return inv.fail(ctx, "Search term required", missingParam("query"))
	}

	if t, ok := board.FindByID(inv.snapshot, query); ok {
		return inv.inform(ctx, fmt.Sprintf("Found %q", t.Title), "Found task: "+describe(t)+".")
	}

	matches := MatchTitle(inv.snapshot, query)
	switch len(matches) {
	case 0:
		_, err := Resolve(inv.snapshot, query)
		return inv.fail(ctx, fmt.Sprintf("No task matching %q", query), err.(*ResolveError).Guidance())
	case 1:
		t := matches[0]
		text := fmt.Sprintf("Found 1 task matching %q:\n- %s\nUse id %q with updateTask, markTaskComplete, deleteTask or breakdownTask.",
			query, describe(t), t.ID)
		return inv.inform(ctx, fmt.Sprintf("Found %q", t.Title), text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d tasks matching %q:\n", len(matches), query)
	writeList(&b, matches)
	b.WriteString("Ask the user which one they mean and use that task's id.")
	return inv.inform(ctx, fmt.Sprintf("Found %d tasks matching %q", len(matches), query), b.String())
}
