package model

import (
	"encoding/json"
	"testing"
	"time"

	"task-board-system.com/task-board-system/internal/constants"
)

func TestUpdateTaskInput_UnmarshalDistinguishesNullFromAbsent(t *testing.T) {
	var in UpdateTaskInput
	if err := json.Unmarshal([]byte(`{"description":null,"title":"New"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !in.Description.IsClear() {
		t.Error("expected description to be an explicit clear")
	}
	if in.DueDate.Set {
		t.Error("expected due_date to be omitted")
	}
	if in.Title == nil || *in.Title != "New" {
		t.Errorf("unexpected title %v", in.Title)
	}
}

func TestUpdateTaskInput_ApplyOnlyTouchesSuppliedFields(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "a",
		Title:       "Old",
		Description: StringPtr("keep me"),
		Status:      constants.StatusTodo,
		Priority:    constants.PriorityLow,
		DueDate:     StringPtr("2025-02-01"),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	status := constants.StatusDone
	now := created.Add(time.Hour)

	UpdateTaskInput{Status: &status, DueDate: Null[string]()}.Apply(&task, now)

	if task.Status != constants.StatusDone {
		t.Errorf("expected status done, got %s", task.Status)
	}
	if task.DueDate != nil {
		t.Errorf("expected due date cleared, got %v", *task.DueDate)
	}
	if task.Description == nil || *task.Description != "keep me" {
		t.Error("description should be unchanged")
	}
	if task.Title != "Old" || task.Priority != constants.PriorityLow {
		t.Error("title and priority should be unchanged")
	}
	if !task.UpdatedAt.Equal(now) || !task.CreatedAt.Equal(created) {
		t.Error("expected only updated_at to move")
	}
}

func TestUpdateTaskInput_Changes(t *testing.T) {
	now := time.Now().UTC()
	changes := UpdateTaskInput{Description: Null[string](), Title: StringPtr("T")}.Changes(now)

	if v, ok := changes["description"]; !ok || v != nil {
		t.Errorf("expected description cleared, got %v (present=%v)", v, ok)
	}
	if changes["title"] != "T" {
		t.Errorf("unexpected title %v", changes["title"])
	}
	if _, ok := changes["status"]; ok {
		t.Error("status should not be present")
	}
	if changes["updated_at"] != now {
		t.Error("updated_at should always be present")
	}
}
