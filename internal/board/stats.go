package board

import (
	"time"

	"task-board-system.com/task-board-system/internal/constants"
	model "task-board-system.com/task-board-system/internal/models"
)

type Stats struct {
	Total        int `json:"total"`
	Todo         int `json:"todo"`
	InProgress   int `json:"inProgress"`
	Done         int `json:"done"`
	HighPriority int `json:"highPriority"`
	Overdue      int `json:"overdue"`
}

// Summarize counts tasks per status plus the high-priority and overdue
// totals. today is compared as a calendar date in its own location.
func Summarize(tasks []model.Task, today time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case constants.StatusTodo:
			s.Todo++
		case constants.StatusInProgress:
			s.InProgress++
		case constants.StatusDone:
			s.Done++
		}
		if t.Priority.IsHigh() {
			s.HighPriority++
		}
		if IsOverdue(t, today) {
			s.Overdue++
		}
	}
	return s
}

// IsOverdue reports a due date strictly before today on a task that is not
// done.
func IsOverdue(t model.Task, today time.Time) bool {
	if t.DueDate == nil || t.Status == constants.StatusDone {
		return false
	}
	due, err := time.Parse(constants.DateLayout, *t.DueDate)
	if err != nil {
		return false
	}
	return due.Format(constants.DateLayout) < today.Format(constants.DateLayout)
}
