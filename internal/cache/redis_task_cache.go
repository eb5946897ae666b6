package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/redis/rueidis"

	model "task-board-system.com/task-board-system/internal/models"
)

type RedisTaskCache struct {
	client rueidis.Client
	key    string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewRedisTaskCache(client rueidis.Client, key string, ttl time.Duration) *RedisTaskCache {
	if ttl < time.Second {
		ttl = time.Second
	}
	return &RedisTaskCache{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (r *RedisTaskCache) GetTasks(ctx context.Context) ([]model.Task, bool, error) {
	cmd := r.client.B().Get().Key(r.key).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			r.misses.Add(1)
			return nil, false, nil
		}
		return nil, false, err
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		// treat a corrupt entry as a miss; the next write replaces it
		r.misses.Add(1)
		return nil, false, nil
	}

	r.hits.Add(1)
	return tasks, true, nil
}

func (r *RedisTaskCache) SetTasks(ctx context.Context, tasks []model.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	cmd := r.client.B().Setex().Key(r.key).Seconds(int64(r.ttl / time.Second)).Value(string(data)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisTaskCache) Invalidate(ctx context.Context) error {
	cmd := r.client.B().Del().Key(r.key).Build()
	return r.client.Do(ctx, cmd).Error()
}

// Stats returns the hit and miss counters since start.
func (r *RedisTaskCache) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}
