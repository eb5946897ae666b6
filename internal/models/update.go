package model

import (
	"encoding/json"
	"time"

	"task-board-system.com/task-board-system/internal/constants"
)

// Nullable tells an omitted field (Set == false) apart from an explicit
// clear (Set == true, Value == nil) and a concrete value.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// IsClear reports an explicit request to clear the field.
func (n Nullable[T]) IsClear() bool {
	return n.Set && n.Value == nil
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

type UpdateTaskInput struct {
	Title       *string                 `json:"title,omitempty"`
	Description Nullable[string]        `json:"description"`
	Status      *constants.TaskStatus   `json:"status,omitempty"`
	Priority    *constants.TaskPriority `json:"priority,omitempty"`
	DueDate     Nullable[string]        `json:"due_date"`
}

// IsEmpty reports whether the input would leave every field unchanged.
func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && !in.Description.Set && in.Status == nil && in.Priority == nil && !in.DueDate.Set
}

// Apply writes the supplied fields onto t and stamps updated_at.
func (in UpdateTaskInput) Apply(t *Task, now time.Time) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description.Set {
		t.Description = cloneString(in.Description.Value)
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate.Set {
		t.DueDate = cloneString(in.DueDate.Value)
	}
	t.UpdatedAt = now
}

// Changes returns the column assignments of the update keyed by column name.
// Cleared columns map to nil. updated_at is always present.
func (in UpdateTaskInput) Changes(now time.Time) map[string]any {
	changes := map[string]any{"updated_at": now}
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Description.Set {
		changes["description"] = nullableValue(in.Description)
	}
	if in.Status != nil {
		changes["status"] = string(*in.Status)
	}
	if in.Priority != nil {
		changes["priority"] = string(*in.Priority)
	}
	if in.DueDate.Set {
		changes["due_date"] = nullableValue(in.DueDate)
	}
	return changes
}

func nullableValue(n Nullable[string]) any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
