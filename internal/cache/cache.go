package cache

import (
	"context"

	model "task-board-system.com/task-board-system/internal/models"
)

// TaskListCache holds the most recent full task listing.
type TaskListCache interface {
	// GetTasks reports found == false on a miss.
	GetTasks(ctx context.Context) (tasks []model.Task, found bool, err error)

	SetTasks(ctx context.Context, tasks []model.Task) error

	Invalidate(ctx context.Context) error
}
