package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

// TaskService implements owner-scoped task CRUD on top of a TaskRepo.
type TaskService struct {
	taskRepo repository.TaskRepo
	now      func() time.Time
}

func NewTaskService(taskRepo repository.TaskRepo) *TaskService {
	return &TaskService{taskRepo: taskRepo, now: time.Now}
}

// normalizeToUTC returns t in UTC, preserving nil and zero values.
func normalizeToUTC(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

func validateEnums(p models.Priority, s models.Status) error {
	if p != "" && !p.Valid() {
		return newValidationError("priority", "Invalid priority %q", p)
	}
	if s != "" && !s.Valid() {
		return newValidationError("status", "Invalid status %q", s)
	}
	return nil
}

// normalizeAndValidateFilter trims the filter values, rejects unknown enums and
// folds unknown sort keys into the default ordering.
func normalizeAndValidateFilter(f models.TaskFilter) (models.TaskFilter, error) {
	f.Status = models.Status(strings.TrimSpace(string(f.Status)))
	f.Priority = models.Priority(strings.TrimSpace(string(f.Priority)))
	if err := validateEnums(f.Priority, f.Status); err != nil {
		return models.TaskFilter{}, err
	}

	switch f.SortBy {
	case models.SortByDate, models.SortByPriority:
	default:
		f.SortBy = models.SortByCreatedAt
	}
	return f, nil
}

// Create stores a new task owned by userID. Title is required; priority and
// status default to Medium and Todo.
func (s *TaskService) Create(ctx context.Context, userID string, in models.TaskPatch) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, newValidationError("title", "Title is required")
	}
	if err := validateEnums(in.Priority, in.Status); err != nil {
		return models.Task{}, err
	}

	t := models.Task{
		Title:       title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     normalizeToUTC(in.DueDate),
		CreatedAt:   s.now().UTC(),
		UserID:      userID,
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Status == "" {
		t.Status = models.StatusTodo
	}

	if err := s.taskRepo.Create(ctx, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// List returns the caller's tasks. The result is never nil.
func (s *TaskService) List(ctx context.Context, userID string, f models.TaskFilter) ([]models.Task, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Update applies the non-empty fields of p to the caller's task id.
// Empty strings and a nil due date keep the stored value, so a field cannot be cleared.
func (s *TaskService) Update(ctx context.Context, userID, id string, p models.TaskPatch) (models.Task, error) {
	if err := validateEnums(p.Priority, p.Status); err != nil {
		return models.Task{}, err
	}

	t, err := s.taskRepo.Get(ctx, userID, id)
	if err != nil {
		return models.Task{}, err
	}
	if t == nil {
		return models.Task{}, ErrTaskNotFound
	}

	p.Title = strings.TrimSpace(p.Title)
	p.DueDate = normalizeToUTC(p.DueDate)
	p.Apply(t)

	if err := s.taskRepo.Update(ctx, *t); err != nil {
		return models.Task{}, mapNotFound(err)
	}
	return *t, nil
}

// Delete removes the caller's task id.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return mapNotFound(s.taskRepo.Delete(ctx, userID, id))
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}
