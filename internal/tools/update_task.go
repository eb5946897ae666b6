package tools

import (
	"context"
	"fmt"
	"strings"

	model "task-board-system.com/task-board-system/internal/models"
)

func updateTaskTool() Tool {
	return Tool{
		Name: "updateTask",
		Description: "Change fields of an existing task. Only the fields you pass are touched. " +
			`Pass null, "" or "none" as description or dueDate to clear it.`,
		Params: []Param{
			{Name: "id", Type: TypeString, Required: true, Description: "The task id from findTask (a unique title fragment also works)."},
			{Name: "title", Type: TypeString, Description: "New title."},
			{Name: "description", Type: TypeString, Description: "New description, or a clear value."},
			{Name: "status", Type: TypeString, Description: "todo, in_progress or done."},
			{Name: "priority", Type: TypeString, Description: "low, medium, high or urgent."},
			{Name: "dueDate", Type: TypeString, Description: "New due date (YYYY-MM-DD), or a clear value."},
		},
		handler: updateTask,
	}
}

func updateTask(ctx context.Context, inv *invocation) Result {
	task, res := inv.resolve(ctx, "id")
	if res != nil {
		return *res
	}

	in, changes, notes := diffUpdate(task, inv.args)
	if in.IsEmpty() {
		text := fmt.Sprintf("No changes applied to %q: the requested values match the current task.", task.Title)
		return inv.inform(ctx, "No changes for "+task.Title, withNotes(text, notes))
	}

	updated, err := inv.client().UpdateTask(ctx, task.ID, in)
	if err != nil {
		return inv.failWith(ctx, "update task", err)
	}

	text := fmt.Sprintf("Successfully updated %q (id: %s): %s.", updated.Title, updated.ID, strings.Join(changes, "; "))
	return inv.succeed(ctx, "Updated task: "+updated.Title, withNotes(text, notes))
}

// diffUpdate builds the update for the fields that differ from the current
// task, with a readable line per change and a note per ignored value.
func diffUpdate(task model.Task, a args) (model.UpdateTaskInput, []string, []string) {
	var (
		in      model.UpdateTaskInput
		changes []string
		notes   []string
	)

	if f := a.field("title"); f.present {
		switch title := f.value(); {
		case title == "" || f.null:
			notes = append(notes, "Ignored an empty title; the title was left unchanged.")
		case title != task.Title:
			in.Title = &title
			changes = append(changes, fmt.Sprintf("title %q -> %q", task.Title, title))
		}
	}

	if f := a.field("description"); f.present {
		if f.clears() {
			if task.Description != nil {
				in.Description = model.Null[string]()
				changes = append(changes, "description cleared")
			}
		} else if d := f.value(); task.Description == nil || *task.Description != d {
			in.Description = model.Some(d)
			if task.Description == nil {
				changes = append(changes, "description added")
			} else {
				changes = append(changes, "description updated")
			}
		}
	}

	if f := a.field("status"); f.given() {
		if s, ok := NormalizeStatus(f.text); !ok {
			notes = append(notes, fmt.Sprintf("Ignored unrecognized status %q; status was left unchanged.", f.value()))
		} else if s != task.Status {
			in.Status = &s
			changes = append(changes, fmt.Sprintf("status %s -> %s", task.Status, s))
		}
	}

	if f := a.field("priority"); f.given() {
		if p, ok := NormalizePriority(f.text); !ok {
			notes = append(notes, fmt.Sprintf("Ignored unrecognized priority %q; priority was left unchanged.", f.value()))
		} else if p != task.Priority {
			in.Priority = &p
			changes = append(changes, fmt.Sprintf("priority %s -> %s", task.Priority, p))
		}
	}

	if f := a.field("dueDate"); f.present {
		if f.clears() {
			if task.DueDate != nil {
				in.DueDate = model.Null[string]()
				changes = append(changes, "due date cleared")
			}
		} else if d, ok := NormalizeDate(f.text); !ok {
			notes = append(notes, fmt.Sprintf("Ignored unrecognized due date %q; due date was left unchanged.", f.value()))
		} else if task.DueDate == nil || *task.DueDate != d {
			in.DueDate = model.Some(d)
			from := "none"
			if task.DueDate != nil {
				from = *task.DueDate
			}
			changes = append(changes, fmt.Sprintf("due date %s -> %s", from, d))
		}
	}

	return in, changes, notes
}
