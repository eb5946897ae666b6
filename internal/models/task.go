package model

import (
	"time"

	"task-board-system.com/task-board-system/internal/constants"
)

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"size:200;not null" json:"title"`
	Description *string                `gorm:"size:1000" json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	DueDate     *string                `gorm:"type:varchar(10)" json:"due_date"`
	ParentID    *string                `gorm:"size:36;index" json:"parent_id"`
	CreatedAt   time.Time              `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// IsSubtask reports whether the task hangs off a parent.
func (t Task) IsSubtask() bool {
	return t.ParentID != nil && *t.ParentID != ""
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	c := t
	c.Description = cloneString(t.Description)
	c.DueDate = cloneString(t.DueDate)
	c.ParentID = cloneString(t.ParentID)
	return c
}

type CreateTaskInput struct {
	Title       string                 `json:"title"`
	Description *string                `json:"description,omitempty"`
	Status      constants.TaskStatus   `json:"status,omitempty"`
	Priority    constants.TaskPriority `json:"priority,omitempty"`
	DueDate     *string                `json:"due_date,omitempty"`
	ParentID    *string                `json:"parent_id,omitempty"`
}

// SubtaskInput is one item of a bulk subtask creation.
type SubtaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr is a convenience for optional string fields.
func StringPtr(s string) *string {
	return &s
}
