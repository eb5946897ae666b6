package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/rueidis"

	"task-board-system.com/task-board-system/internal/cache"
	apperrors "task-board-system.com/task-board-system/internal/errors"
	repository "task-board-system.com/task-board-system/internal/repositories"
)

// Store bundles the selected task store with the clients it owns.
type Store struct {
	Tasks repository.TaskStore
	// Redis is nil unless REDIS_ENABLED is set.
	Redis rueidis.Client
	// Cache is the list cache in front of Tasks when Redis is enabled.
	Cache *cache.RedisTaskCache

	closers []func()
}

func (s *Store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// NewTaskStore opens the backend named by cfg.StoreDriver and, when Redis is
// enabled, wraps it with the cached list decorator.
func NewTaskStore(ctx context.Context, cfg Config) (*Store, error) {
	s := &Store{}

	tasks, err := s.open(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	if cfg.RedisEnabled {
		client, err := NewRedisClient(cfg.RedisAddr)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Redis = client
		s.closers = append(s.closers, client.Close)

		ttl := time.Duration(cfg.RedisCacheTTLSeconds) * time.Second
		s.Cache = cache.NewRedisTaskCache(client, cfg.RedisCacheKey, ttl)
		tasks = repository.NewCachedTaskRepository(tasks, s.Cache)
	}

	s.Tasks = tasks
	log.Printf("[store] using %s backend (redis cache: %t)", cfg.StoreDriver, cfg.RedisEnabled)
	return s, nil
}

func (s *Store) open(ctx context.Context, cfg Config) (repository.TaskStore, error) {
	switch cfg.StoreDriver {
	case DriverMemory:
		return repository.NewMemoryTaskRepository(repository.DemoTasks(time.Now()))

	case DriverSQLite:
		db, err := New(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			s.closers = append(s.closers, func() { _ = sqlDB.Close() })
		}
		return repository.NewTaskRepository(db), nil

	case DriverPostgres:
		pool, err := NewPostgresPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)

		repo := repository.NewPostgresTaskRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		return repo, nil

	case DriverNeo4j:
		driver, err := NewNeo4jDriver(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = driver.Close(context.Background()) })

		repo := repository.NewNeo4jTaskRepository(driver, cfg.Neo4jDatabase)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("neo4j schema: %w", err)
		}
		return repo, nil
	}

	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedDriver, cfg.StoreDriver)
}
