package tools

import (
	"context"
	"fmt"
	"strings"
)

func breakdownTaskTool() Tool {
	return Tool{
		Name:        "breakdownTask",
		Description: "Split a task into smaller subtasks. All subtasks are created together or not at all.",
		Params: []Param{
			{Name: "id", Type: TypeString, Required: true, Description: "The parent task id from findTask (a unique title fragment also works)."},
			{Name: "subtasks", Type: TypeSubtasks, Required: true, Description: `List of subtasks, e.g. [{"title": "Draft outline", "description": "optional"}].`},
		},
		handler: breakdownTask,
	}
}

func breakdownTask(ctx context.Context, inv *invocation) Result {
	raw, ok := inv.args["subtasks"]
	if !ok {
		return inv.fail(ctx, "Subtasks required", missingParam("subtasks"))
	}
	items, err := ParseSubtasks(raw)
	if err != nil {
		return inv.fail(ctx, "Invalid subtasks",
			fmt.Sprintf(`Could not read subtasks: %s. Pass a list such as [{"title": "First step"}, {"title": "Second step"}].`, err.Error()))
	}

	parent, res := inv.resolve(ctx, "id")
	if res != nil {
		return *res
	}
	if parent.IsSubtask() {
		return inv.fail(ctx, "Cannot break down a subtask",
			fmt.Sprintf("%q is already a subtask of %s. Break down its parent task instead.", parent.Title, *parent.ParentID))
	}

	created, err := inv.client().CreateSubtasks(ctx, parent.ID, items)
	if err != nil {
		return inv.failWith(ctx, "create subtasks", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Successfully created %d subtasks for %q:\n", len(created), parent.Title)
	for _, st := range created {
		fmt.Fprintf(&b, "- %q (id: %s)\n", st.Title, st.ID)
	}
	return inv.succeed(ctx, fmt.Sprintf("Created %d subtasks for %q", len(created), parent.Title),
		strings.TrimRight(b.String(), "\n"))
}
