package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-board-system.com/task-board-system/internal/constants"
	apperrors "task-board-system.com/task-board-system/internal/errors"
	model "task-board-system.com/task-board-system/internal/models"
	repository "task-board-system.com/task-board-system/internal/repositories"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.Task{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newService(t *testing.T) *TaskService {
	repo := repository.NewTaskRepository(setupTestDB(t))
	return NewTaskService(repo).WithClock(func() time.Time { return fixedNow })
}

func TestTaskService_CreateAppliesDefaults(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	task, err := service.CreateTask(ctx, model.CreateTaskInput{Title: "  Write report  "})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.ID == "" {
		t.Error("expected task ID to be set")
	}
	if task.Title != "Write report" {
		t.Errorf("expected trimmed title, got %q", task.Title)
	}
	if task.Status != constants.StatusTodo {
		t.Errorf("expected status %s, got %s", constants.StatusTodo, task.Status)
	}
	if task.Priority != constants.PriorityMedium {
		t.Errorf("expected priority %s, got %s", constants.PriorityMedium, task.Priority)
	}
	if task.Description != nil || task.DueDate != nil || task.ParentID != nil {
		t.Error("expected optional fields to be absent")
	}
	if !task.CreatedAt.Equal(fixedNow) || !task.UpdatedAt.Equal(task.CreatedAt) {
		t.Errorf("expected created_at == updated_at == now, got %v / %v", task.CreatedAt, task.UpdatedAt)
	}

	fetched, err := service.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if fetched.Title != task.Title {
		t.Errorf("expected %q, got %q", task.Title, fetched.Title)
	}
}

func TestTaskService_CreateRejectsInvalidInput(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   model.CreateTaskInput
		want error
	}{
		{"empty title", model.CreateTaskInput{Title: "   "}, apperrors.ErrTitleRequired},
		{"long title", model.CreateTaskInput{Title: strings.Repeat("é", 201)}, apperrors.ErrTitleTooLong},
		{"long description", model.CreateTaskInput{Title: "ok", Description: model.StringPtr(strings.Repeat("x", 1001))}, apperrors.ErrDescriptionTooLong},
		{"bad status", model.CreateTaskInput{Title: "ok", Status: "blocked"}, apperrors.ErrInvalidStatus},
		{"bad priority", model.CreateTaskInput{Title: "ok", Priority: "critical"}, apperrors.ErrInvalidPriority},
		{"bad due date", model.CreateTaskInput{Title: "ok", DueDate: model.StringPtr("next week")}, apperrors.ErrInvalidDueDate},
		{"dangling parent", model.CreateTaskInput{Title: "ok", ParentID: model.StringPtr("nope")}, apperrors.ErrParentNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateTask(ctx, tc.in)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	tasks, _ := service.ListTasks(ctx)
	if len(tasks) != 0 {
		t.Errorf("expected no tasks to be stored, got %d", len(tasks))
	}
}

func TestTaskService_TitleLengthCountsCharacters(t *testing.T) {
	service := newService(t)

	_, err := service.CreateTask(context.Background(), model.CreateTaskInput{Title: strings.Repeat("é", 200)})
	if err != nil {
		t.Errorf("200 characters should be accepted: %v", err)
	}
}

func TestTaskService_UpdateClearsAndNormalizes(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	task, err := service.CreateTask(ctx, model.CreateTaskInput{
		Title:       "Plan",
		Description: model.StringPtr("notes"),
		DueDate:     model.StringPtr("2025-03-10"),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	later := fixedNow.Add(time.Hour)
	service.WithClock(func() time.Time { return later })

	done := constants.StatusDone
	updated, err := service.UpdateTask(ctx, task.ID, model.UpdateTaskInput{
		Status:      &done,
		Description: model.Some(""),
		DueDate:     model.Null[string](),
	})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if updated.Status != constants.StatusDone {
		t.Errorf("expected done, got %s", updated.Status)
	}
	if updated.Description != nil {
		t.Errorf("expected description cleared, got %q", *updated.Description)
	}
	if updated.DueDate != nil {
		t.Errorf("expected due date cleared, got %q", *updated.DueDate)
	}
	if updated.Title != "Plan" {
		t.Errorf("title should be unchanged, got %q", updated.Title)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Errorf("expected updated_at %v, got %v", later, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(fixedNow) {
		t.Errorf("created_at should not move, got %v", updated.CreatedAt)
	}
}

func TestTaskService_EmptyUpdateRefreshesUpdatedAt(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	task, err := service.CreateTask(ctx, model.CreateTaskInput{Title: "Plan", Priority: constants.PriorityHigh})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	later := fixedNow.Add(time.Hour)
	service.WithClock(func() time.Time { return later })

	updated, err := service.UpdateTask(ctx, task.ID, model.UpdateTaskInput{})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Errorf("expected updated_at %v, got %v", later, updated.UpdatedAt)
	}
	if updated.Title != "Plan" || updated.Priority != constants.PriorityHigh {
		t.Errorf("fields should be unchanged, got %q/%s", updated.Title, updated.Priority)
	}

	stored, err := service.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if !stored.UpdatedAt.Equal(later) {
		t.Errorf("expected stored updated_at %v, got %v", later, stored.UpdatedAt)
	}

	if _, err := service.UpdateTask(ctx, "missing", model.UpdateTaskInput{}); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_UpdateValidation(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	task, _ := service.CreateTask(ctx, model.CreateTaskInput{Title: "Plan"})

	blank := " "
	if _, err := service.UpdateTask(ctx, task.ID, model.UpdateTaskInput{Title: &blank}); !errors.Is(err, apperrors.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	bad := constants.TaskPriority("huge")
	if _, err := service.UpdateTask(ctx, task.ID, model.UpdateTaskInput{Priority: &bad}); !errors.Is(err, apperrors.ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}

	if _, err := service.UpdateTask(ctx, "", model.UpdateTaskInput{}); !errors.Is(err, apperrors.ErrTaskIDRequired) {
		t.Errorf("expected ErrTaskIDRequired, got %v", err)
	}

	title := "x"
	if _, err := service.UpdateTask(ctx, "missing", model.UpdateTaskInput{Title: &title}); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_CreateSubtasks(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	parent, _ := service.CreateTask(ctx, model.CreateTaskInput{Title: "Launch", Priority: constants.PriorityHigh})

	subtasks, err := service.CreateSubtasks(ctx, parent.ID, []model.SubtaskInput{
		{Title: "Write copy"},
		{Title: "Ship it", Description: model.StringPtr("friday")},
	})
	if err != nil {
		t.Fatalf("failed to create subtasks: %v", err)
	}

	if len(subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(subtasks))
	}
	for _, st := range subtasks {
		if st.ParentID == nil || *st.ParentID != parent.ID {
			t.Errorf("subtask %q should reference the parent", st.Title)
		}
		if st.Status != constants.StatusTodo || st.Priority != constants.PriorityMedium {
			t.Errorf("subtask %q should use defaults, got %s/%s", st.Title, st.Status, st.Priority)
		}
		if st.ID == "" {
			t.Errorf("subtask %q has no id", st.Title)
		}
	}

	tasks, _ := service.ListTasks(ctx)
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(tasks))
	}
}

func TestTaskService_CreateSubtasksIsAllOrNothing(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	parent, _ := service.CreateTask(ctx, model.CreateTaskInput{Title: "Launch"})

	_, err := service.CreateSubtasks(ctx, parent.ID, []model.SubtaskInput{{Title: "ok"}, {Title: ""}})
	if !errors.Is(err, apperrors.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	if _, err := service.CreateSubtasks(ctx, parent.ID, nil); !errors.Is(err, apperrors.ErrNoSubtasks) {
		t.Errorf("expected ErrNoSubtasks, got %v", err)
	}

	if _, err := service.CreateSubtasks(ctx, "missing", []model.SubtaskInput{{Title: "a"}}); !errors.Is(err, apperrors.ErrParentNotFound) {
		t.Errorf("expected ErrParentNotFound, got %v", err)
	}

	tasks, _ := service.ListTasks(ctx)
	if len(tasks) != 1 {
		t.Errorf("expected only the parent to exist, got %d tasks", len(tasks))
	}
}

func TestTaskService_DeleteCascades(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	parent, _ := service.CreateTask(ctx, model.CreateTaskInput{Title: "Parent"})
	_, _ = service.CreateSubtasks(ctx, parent.ID, []model.SubtaskInput{{Title: "a"}, {Title: "b"}})
	other, _ := service.CreateTask(ctx, model.CreateTaskInput{Title: "Other"})

	if err := service.DeleteTask(ctx, parent.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	tasks, _ := service.ListTasks(ctx)
	if len(tasks) != 1 || tasks[0].ID != other.ID {
		t.Errorf("expected only %q to remain, got %v", other.Title, tasks)
	}
}

func TestTaskService_Seed(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	created, err := service.Seed(ctx)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 seeded tasks, got %d", len(created))
	}

	tasks, _ := service.ListTasks(ctx)
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(tasks))
	}
}

func TestTaskService_ConcurrentCreates(t *testing.T) {
	service := newService(t)

	const concurrentCount = 50
	var wg sync.WaitGroup
	wg.Add(concurrentCount)

	errs := make(chan error, concurrentCount)

	for i := 0; i < concurrentCount; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := service.CreateTask(context.Background(), model.CreateTaskInput{Title: fmt.Sprintf("Task %d", idx)})
			if err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent creation failed: %v", err)
	}

	tasks, _ := service.ListTasks(context.Background())
	if len(tasks) != concurrentCount {
		t.Errorf("expected %d tasks, got %d", concurrentCount, len(tasks))
	}
}
