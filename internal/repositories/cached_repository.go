package repository

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"task-board-system.com/task-board-system/internal/cache"
	model "task-board-system.com/task-board-system/internal/models"
)

const listFlightKey = "tasks:list"

// CachedTaskRepository serves List from a TaskListCache and drops the cached
// listing after every successful write. Concurrent misses share one read of
// the underlying store. A listing read before a write is never cached after
// that write's invalidation.
type CachedTaskRepository struct {
	next  TaskStore
	cache cache.TaskListCache
	group singleflight.Group

	// mu orders cache fills against invalidations; gen counts invalidations.
	mu  sync.Mutex
	gen uint64
}

func NewCachedTaskRepository(next TaskStore, c cache.TaskListCache) *CachedTaskRepository {
	return &CachedTaskRepository{next: next, cache: c}
}

func (r *CachedTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	tasks, found, err := r.cache.GetTasks(ctx)
	if err != nil {
		log.Printf("[cache] read failed, falling back to store: %v", err)
	}
	if found {
		return tasks, nil
	}

	val, err, _ := r.group.Do(listFlightKey, func() (any, error) {
		gen := r.generation()
		tasks, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		r.fill(ctx, gen, tasks)
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}

	shared := val.([]model.Task)
	out := make([]model.Task, 0, len(shared))
	for _, t := range shared {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *CachedTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	return r.next.FindByID(ctx, id)
}

func (r *CachedTaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.next.Create(ctx, task); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedTaskRepository) CreateMany(ctx context.Context, tasks []model.Task) error {
	if err := r.next.CreateMany(ctx, tasks); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedTaskRepository) Update(ctx context.Context, id string, in model.UpdateTaskInput, now time.Time) (*model.Task, error) {
	task, err := r.next.Update(ctx, id, in, now)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return task, nil
}

func (r *CachedTaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedTaskRepository) generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// fill caches tasks unless a write was invalidated since they were read.
func (r *CachedTaskRepository) fill(ctx context.Context, gen uint64, tasks []model.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		return
	}
	if err := r.cache.SetTasks(ctx, tasks); err != nil {
		log.Printf("[cache] write failed: %v", err)
	}
}

func (r *CachedTaskRepository) invalidate(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	// later readers must not join a read that started before this write
	r.group.Forget(listFlightKey)
	if err := r.cache.Invalidate(ctx); err != nil {
		log.Printf("[cache] invalidate failed: %v", err)
	}
}
