package repository

import (
	"time"

	"task-board-system.com/task-board-system/internal/constants"
	model "task-board-system.com/task-board-system/internal/models"
)

// DemoTasks returns the illustrative tasks the memory store starts with.
// created_at steps back one second per task so list order is stable.
func DemoTasks(now time.Time) []model.Task {
	now = now.UTC()
	tomorrow := now.AddDate(0, 0, 1).Format(constants.DateLayout)

	tasks := []model.Task{
		{
			ID:          "demo-1",
			Title:       "Set up the task database",
			Description: model.StringPtr("Pick a store driver (sqlite, postgres or neo4j) and point the service at it."),
			Status:      constants.StatusTodo,
			Priority:    constants.PriorityHigh,
		},
		{
			ID:          "demo-2",
			Title:       "Configure environment variables",
			Description: model.StringPtr("Copy .env.example to .env and fill in TASK_STORE and the matching connection settings."),
			Status:      constants.StatusTodo,
			Priority:    constants.PriorityUrgent,
			DueDate:     &tomorrow,
		},
		{
			ID:          "demo-3",
			Title:       "Try the task assistant",
			Description: model.StringPtr("Connect an MCP client with `taskboard mcp` and ask it to summarize or break down your tasks."),
			Status:      constants.StatusInProgress,
			Priority:    constants.PriorityMedium,
		},
	}

	for i := range tasks {
		stamp := now.Add(-time.Duration(i) * time.Second)
		tasks[i].CreatedAt = stamp
		tasks[i].UpdatedAt = stamp
	}
	return tasks
}
