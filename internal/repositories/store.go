package repository

import (
	"context"
	"time"

	model "task-board-system.com/task-board-system/internal/models"
)

// TaskStore is the persistence contract every backend satisfies.
// Create and CreateMany fill in missing ids; timestamps and defaults are
// the caller's job.
type TaskStore interface {
	List(ctx context.Context) ([]model.Task, error)
	FindByID(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	CreateMany(ctx context.Context, tasks []model.Task) error
	Update(ctx context.Context, id string, in model.UpdateTaskInput, now time.Time) (*model.Task, error)
	// Delete removes the task and every task whose parent_id equals id.
	Delete(ctx context.Context, id string) error
}

var (
	_ TaskStore = (*TaskRepository)(nil)
	_ TaskStore = (*MemoryTaskRepository)(nil)
	_ TaskStore = (*PostgresTaskRepository)(nil)
	_ TaskStore = (*Neo4jTaskRepository)(nil)
	_ TaskStore = (*CachedTaskRepository)(nil)
)
