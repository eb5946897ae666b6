package board

import (
	model "task-board-system.com/task-board-system/internal/models"
)

// ContextTask is the reduced task shape exposed to the assistant.
type ContextTask struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	DueDate      *string `json:"dueDate"`
	ParentID     *string `json:"parentId"`
	IsSubtask    bool    `json:"isSubtask"`
	SubtaskCount int     `json:"subtaskCount"`
}

// Trim maps every task to its context shape, counting direct subtasks
// across the whole snapshot.
func Trim(tasks []model.Task) []ContextTask {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t.IsSubtask() {
			counts[*t.ParentID]++
		}
	}

	out := make([]ContextTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ContextTask{
			ID:           t.ID,
			Title:        t.Title,
			Status:       string(t.Status),
			Priority:     string(t.Priority),
			DueDate:      t.DueDate,
			ParentID:     t.ParentID,
			IsSubtask:    t.IsSubtask(),
			SubtaskCount: counts[t.ID],
		})
	}
	return out
}
