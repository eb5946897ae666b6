package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"

	apperrors "task-board-system.com/task-board-system/internal/errors"
	model "task-board-system.com/task-board-system/internal/models"
)

const memoryIDPrefix = "demo-"

// MemoryTaskRepository keeps tasks in process memory. It backs the demo
// mode and the tests; nothing survives a restart.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []model.Task
	newID func() string
}

func NewMemoryTaskRepository(seed []model.Task) (*MemoryTaskRepository, error) {
	gen, err := nanoid.Standard(12)
	if err != nil {
		return nil, err
	}

	r := &MemoryTaskRepository{newID: gen}
	for _, t := range seed {
		r.tasks = append(r.tasks, t.Clone())
	}
	return r, nil
}

func (r *MemoryTaskRepository) List(_ context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		t := r.tasks[i].Clone()
		return &t, nil
	}
	return nil, apperrors.ErrTaskNotFound
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = memoryIDPrefix + r.newID()
	}
	r.tasks = append([]model.Task{task.Clone()}, r.tasks...)
	return nil
}

func (r *MemoryTaskRepository) CreateMany(_ context.Context, tasks []model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = memoryIDPrefix + r.newID()
		}
		added = append(added, tasks[i].Clone())
	}
	r.tasks = append(added, r.tasks...)
	return nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, id string, in model.UpdateTaskInput, now time.Time) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.ErrTaskNotFound
	}
	in.Apply(&r.tasks[i], now)
	t := r.tasks[i].Clone()
	return &t, nil
}

// Delete is a no-op for unknown ids.
func (r *MemoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if t.ID == id || (t.ParentID != nil && *t.ParentID == id) {
			continue
		}
		kept = append(kept, t)
	}
	r.tasks = kept
	return nil
}

func (r *MemoryTaskRepository) indexOf(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
