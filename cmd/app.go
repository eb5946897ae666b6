package cmd

import (
	"context"
	"log"

	config "task-board-system.com/task-board-system/internal/configs"
	"task-board-system.com/task-board-system/internal/notify"
	"task-board-system.com/task-board-system/internal/services"
	"task-board-system.com/task-board-system/internal/tools"
)

const (
	notifyWorkers   = 2
	notifyQueueSize = 64
	recentLimit     = 50
)

// app holds everything a command needs to drive the board.
type app struct {
	cfg        config.Config
	store      *config.Store
	recorder   *notify.Recorder
	dispatcher *notify.Dispatcher
	tasks      *services.TaskService
	registry   *tools.Registry
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load(configPath)

	store, err := config.NewTaskStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recorder := notify.NewRecorder(recentLimit)
	sinks := notify.Multi{notify.LogNotifier{}, recorder}
	if store.Redis != nil {
		sinks = append(sinks, notify.NewRedisNotifier(store.Redis, cfg.RedisNotifyChannel))
	}
	dispatcher := notify.NewDispatcher(sinks, notifyWorkers, notifyQueueSize)

	tasks := services.NewTaskService(store.Tasks)

	return &app{
		cfg:        cfg,
		store:      store,
		recorder:   recorder,
		dispatcher: dispatcher,
		tasks:      tasks,
		registry:   tools.NewRegistry(tasks, dispatcher),
	}, nil
}

// close drains pending notifications before releasing the store.
func (a *app) close(ctx context.Context) {
	a.dispatcher.Shutdown(ctx)
	a.store.Close()
	log.Println("[app] closed")
}
