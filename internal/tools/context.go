package tools

import (
	"context"
	"time"

	"task-board-system.com/task-board-system/internal/board"
	model "task-board-system.com/task-board-system/internal/models"
)

// ReadableContext is the board state shared with the assistant alongside
// the tools.
type ReadableContext struct {
	Tasks []board.ContextTask `json:"tasks"`
	Stats board.Stats         `json:"stats"`
}

func BuildContext(tasks []model.Task, today time.Time) ReadableContext {
	return ReadableContext{
		Tasks: board.Trim(tasks),
		Stats: board.Summarize(tasks, today),
	}
}

// ReadableContext reads a snapshot and builds the context from it.
func (r *Registry) ReadableContext(ctx context.Context) (ReadableContext, error) {
	tasks, err := r.tasks.ListTasks(ctx)
	if err != nil {
		return ReadableContext{}, err
	}
	return BuildContext(tasks, r.now().UTC()), nil
}
