package dto

import (
	"task-board-system.com/task-board-system/internal/constants"
	model "task-board-system.com/task-board-system/internal/models"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	ParentID    *string `json:"parent_id"`
}

func (r CreateTaskRequest) ToInput() model.CreateTaskInput {
	return model.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      constants.TaskStatus(r.Status),
		Priority:    constants.TaskPriority(r.Priority),
		DueDate:     r.DueDate,
		ParentID:    r.ParentID,
	}
}

// UpdateTaskRequest is a partial update. description and due_date accept
// null to clear the field.
type UpdateTaskRequest struct {
	Title       *string                `json:"title"`
	Description model.Nullable[string] `json:"description"`
	Status      *string                `json:"status"`
	Priority    *string                `json:"priority"`
	DueDate     model.Nullable[string] `json:"due_date"`
}

func (r UpdateTaskRequest) ToInput() model.UpdateTaskInput {
	in := model.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
	if r.Status != nil {
		s := constants.TaskStatus(*r.Status)
		in.Status = &s
	}
	if r.Priority != nil {
		p := constants.TaskPriority(*r.Priority)
		in.Priority = &p
	}
	return in
}

type CreateSubtasksRequest struct {
	Subtasks []model.SubtaskInput `json:"subtasks"`
}
