package tools

import (
	"context"
	"fmt"

	model "task-board-system.com/task-board-system/internal/models"
)

func createTaskTool() Tool {
	return Tool{
		Name:        "createTask",
		Description: "Create a new top-level task on the board.",
		Params: []Param{
			{Name: "title", Type: TypeString, Required: true, Description: "Short title of the task (max 200 characters)."},
			{Name: "description", Type: TypeString, Description: "Optional details (max 1000 characters)."},
			{Name: "priority", Type: TypeString, Description: "low, medium, high or urgent. Defaults to medium."},
			{Name: "status", Type: TypeString, Description: "todo, in_progress or done. Defaults to todo."},
			{Name: "dueDate", Type: TypeString, Description: "Due date, preferably YYYY-MM-DD."},
		},
		handler: createTask,
	}
}

func createTask(ctx context.Context, inv *invocation) Result {
	title := inv.args.text("title")
	if title == "" {
		return inv.fail(ctx, "Task title required", "A title is required to create a task.")
	}

	in := model.CreateTaskInput{Title: title}
	var notes []string

	if f := inv.args.field("description"); f.given() && !f.clears() {
		d := f.value()
		in.Description = &d
	}
	if f := inv.args.field("priority"); f.given() {
		if p, ok := NormalizePriority(f.text); ok {
			in.Priority = p
		} else {
			notes = append(notes, fmt.Sprintf("Ignored unrecognized priority %q; used medium.", f.value()))
		}
	}
	if f := inv.args.field("status"); f.given() {
		if s, ok := NormalizeStatus(f.text); ok {
			in.Status = s
		} else {
			notes = append(notes, fmt.Sprintf("Ignored unrecognized status %q; used todo.", f.value()))
		}
	}
	if f := inv.args.field("dueDate"); f.given() && !f.clears() {
		if d, ok := NormalizeDate(f.text); ok {
			in.DueDate = &d
		} else {
			notes = append(notes, fmt.Sprintf("Ignored unrecognized due date %q.", f.value()))
		}
	}

	task, err := inv.client().CreateTask(ctx, in)
	if err != nil {
		return inv.failWith(ctx, "create task", err)
	}

	return inv.succeed(ctx, "Created task: "+task.Title,
		withNotes("Successfully created task: "+describe(*task)+".", notes))
}

func withNotes(text string, notes []string) string {
	for _, n := range notes {
		text += "\n" + n
	}
	return text
}
