package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"task-board-system.com/task-board-system/internal/constants"
	apperrors "task-board-system.com/task-board-system/internal/errors"
	model "task-board-system.com/task-board-system/internal/models"
	repository "task-board-system.com/task-board-system/internal/repositories"
)

// TaskService validates and defaults task writes before they reach the
// configured store. Every caller talks to the board through it.
type TaskService struct {
	repo repository.TaskStore
	now  func() time.Time
}

func NewTaskService(repo repository.TaskStore) *TaskService {
	return &TaskService{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock replaces the time source used for created_at and updated_at.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ErrTaskIDRequired
	}
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, in model.CreateTaskInput) (*model.Task, error) {
	task, err := s.buildTask(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, task.ParentID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CreateSubtasks creates every item under parentID in one write. Either all
// subtasks are stored or none are.
func (s *TaskService) CreateSubtasks(ctx context.Context, parentID string, items []model.SubtaskInput) ([]model.Task, error) {
	if strings.TrimSpace(parentID) == "" {
		return nil, apperrors.ErrTaskIDRequired
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNoSubtasks
	}

	tasks := make([]model.Task, 0, len(items))
	now := s.now().UTC()
	for i, item := range items {
		task, err := s.buildTask(model.CreateTaskInput{
			Title:       item.Title,
			Description: item.Description,
			ParentID:    &parentID,
		})
		if err != nil {
			return nil, fmt.Errorf("subtask %d: %w", i+1, err)
		}
		task.CreatedAt, task.UpdatedAt = now, now
		tasks = append(tasks, *task)
	}

	if err := s.checkParent(ctx, &parentID); err != nil {
		return nil, err
	}
	if err := s.repo.CreateMany(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, in model.UpdateTaskInput) (*model.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	in, err := normalizeUpdate(in)
	if err != nil {
		return nil, err
	}
	// an empty update still refreshes updated_at
	return s.repo.Update(ctx, id, in, s.now().UTC())
}

// DeleteTask removes the task and its direct subtasks.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ErrTaskIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// Seed writes the demo tasks through the regular create path and returns
// what was stored.
func (s *TaskService) Seed(ctx context.Context) ([]model.Task, error) {
	demo := repository.DemoTasks(s.now())
	created := make([]model.Task, 0, len(demo))
	// oldest first so the listing keeps the demo order
	for i := len(demo) - 1; i >= 0; i-- {
		d := demo[i]
		task, err := s.CreateTask(ctx, model.CreateTaskInput{
			Title:       d.Title,
			Description: d.Description,
			Status:      d.Status,
			Priority:    d.Priority,
			DueDate:     d.DueDate,
		})
		if err != nil {
			return created, err
		}
		created = append(created, *task)
	}
	return created, nil
}

func (s *TaskService) buildTask(in model.CreateTaskInput) (*model.Task, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	description := emptyToNil(in.Description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = constants.StatusTodo
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	priority := in.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, apperrors.ErrInvalidPriority
	}

	dueDate := emptyToNil(in.DueDate)
	if err := validateDueDate(dueDate); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return &model.Task{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		ParentID:    emptyToNil(in.ParentID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *TaskService) checkParent(ctx context.Context, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if _, err := s.repo.FindByID(ctx, *parentID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.ErrParentNotFound
		}
		return err
	}
	return nil
}

func normalizeUpdate(in model.UpdateTaskInput) (model.UpdateTaskInput, error) {
	if in.Title != nil {
		title, err := validateTitle(*in.Title)
		if err != nil {
			return in, err
		}
		in.Title = &title
	}

	if in.Description.Set {
		if v := emptyToNil(in.Description.Value); v == nil {
			in.Description = model.Null[string]()
		}
		if err := validateDescription(in.Description.Value); err != nil {
			return in, err
		}
	}

	if in.Status != nil && !in.Status.IsValid() {
		return in, apperrors.ErrInvalidStatus
	}
	if in.Priority != nil && !in.Priority.IsValid() {
		return in, apperrors.ErrInvalidPriority
	}

	if in.DueDate.Set {
		if v := emptyToNil(in.DueDate.Value); v == nil {
			in.DueDate = model.Null[string]()
		}
		if err := validateDueDate(in.DueDate.Value); err != nil {
			return in, err
		}
	}

	return in, nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", apperrors.ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return "", apperrors.ErrTitleTooLong
	}
	return title, nil
}

func validateDescription(d *string) error {
	if d != nil && utf8.RuneCountInString(*d) > constants.MaxDescriptionLength {
		return apperrors.ErrDescriptionTooLong
	}
	return nil
}

func validateDueDate(d *string) error {
	if d == nil {
		return nil
	}
	if _, err := time.Parse(constants.DateLayout, *d); err != nil {
		return apperrors.ErrInvalidDueDate
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
