package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/apperror"
	"taskpad/internal/cache"
	"taskpad/internal/model"
	"taskpad/internal/repository"
)

// TaskInput carries the fields accepted when creating a task.
type TaskInput struct {
	Title       string
	Description string
	Status      model.Status
	DueDate     *model.DateTime
	Reminder    *model.DateTime
}

// TaskPatch carries a partial update. Title and Status are skipped when nil.
// The Optional fields track key presence on the wire: absent keys keep the
// stored value, explicit null (or empty string) clears it.
type TaskPatch struct {
	Title       *string
	Status      *model.Status
	Description model.Optional[string]
	DueDate     model.Optional[model.DateTime]
	Reminder    model.Optional[model.DateTime]
}

// TaskService exposes task CRUD and filter operations. Every operation is
// scoped to the calling user; a task owned by someone else is
// indistinguishable from a missing one.
type TaskService interface {
	List(ctx context.Context, callerID string) ([]model.Task, error)
	GetByID(ctx context.Context, callerID, id string) (*model.Task, error)
	Create(ctx context.Context, callerID string, input TaskInput) (*model.Task, error)
	Update(ctx context.Context, callerID, id string, patch TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, callerID, id string) error
	ListByStatus(ctx context.Context, callerID string, status model.Status) ([]model.Task, error)
	ListByDate(ctx context.Context, callerID, date string) ([]model.Task, error)
}

type taskService struct {
	tasks    repository.TaskRepository
	cache    *cache.Client
	cacheTTL time.Duration
}

// NewTaskService creates a task service. cacheTTL bounds how long a cached
// task list may go stale.
func NewTaskService(tasks repository.TaskRepository, cache *cache.Client, cacheTTL time.Duration) TaskService {
	return &taskService{tasks: tasks, cache: cache, cacheTTL: cacheTTL}
}

func (s *taskService) cacheKey(callerID string) string {
	return fmt.Sprintf("tasks:%s", callerID)
}

// normalizeDate maps an explicit empty-string date, which decodes to the zero
// time, onto a cleared field.
func normalizeDate(d *model.DateTime) *model.DateTime {
	if d != nil && d.IsZero() {
		return nil
	}
	return d
}

// List returns all of the caller's tasks in store insertion order.
func (s *taskService) List(ctx context.Context, callerID string) ([]model.Task, error) {
	key := s.cacheKey(callerID)
	if data := s.cache.Get(ctx, key); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.tasks.ListByUser(ctx, callerID)
	if err != nil {
		return nil, apperror.NewStorage("failed to read task store", err)
	}

	if payload, err := json.Marshal(tasks); err == nil {
		s.cache.Set(ctx, key, payload, s.cacheTTL)
	}
	return tasks, nil
}

func (s *taskService) GetByID(ctx context.Context, callerID, id string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, callerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFound("task not found")
		}
		return nil, apperror.NewStorage("failed to read task store", err)
	}
	return task, nil
}

// Create validates the title, applies defaults and persists a new task.
func (s *taskService) Create(ctx context.Context, callerID string, input TaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperror.NewValidation("task title is required")
	}
	status := input.Status
	if status == "" {
		status = model.StatusNew
	}
	if !status.Valid() {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown task status %q", status))
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.NewString(),
		UserID:      callerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     normalizeDate(input.DueDate),
		Reminder:    normalizeDate(input.Reminder),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperror.NewStorage("failed to save task", err)
	}
	s.cache.Delete(ctx, s.cacheKey(callerID))
	return task, nil
}

// Update applies a field-level patch and refreshes the updated timestamp.
func (s *taskService) Update(ctx context.Context, callerID, id string, patch TaskPatch) (*model.Task, error) {
	task, err := s.GetByID(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperror.NewValidation("task title cannot be empty")
		}
		task.Title = *patch.Title
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperror.NewValidation(fmt.Sprintf("unknown task status %q", *patch.Status))
		}
		task.Status = *patch.Status
	}
	if patch.Description.Set {
		if patch.Description.Value != nil {
			task.Description = *patch.Description.Value
		} else {
			task.Description = ""
		}
	}
	if patch.DueDate.Set {
		task.DueDate = normalizeDate(patch.DueDate.Value)
	}
	if patch.Reminder.Set {
		task.Reminder = normalizeDate(patch.Reminder.Value)
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFound("task not found")
		}
		return nil, apperror.NewStorage("failed to save task", err)
	}
	s.cache.Delete(ctx, s.cacheKey(callerID))
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.tasks.Delete(ctx, callerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewNotFound("task not found")
		}
		return apperror.NewStorage("failed to save task store", err)
	}
	s.cache.Delete(ctx, s.cacheKey(callerID))
	return nil
}

// ListByStatus filters the caller's tasks by exact status match. An unknown
// status yields an empty result rather than an error.
func (s *taskService) ListByStatus(ctx context.Context, callerID string, status model.Status) ([]model.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, callerID)
	if err != nil {
		return nil, apperror.NewStorage("failed to read task store", err)
	}
	filtered := make([]model.Task, 0)
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// ListByDate filters the caller's tasks whose due date falls on the given
// UTC calendar day (date in "2006-01-02" form). Time-of-day is discarded.
func (s *taskService) ListByDate(ctx context.Context, callerID, date string) ([]model.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, callerID)
	if err != nil {
		return nil, apperror.NewStorage("failed to read task store", err)
	}
	filtered := make([]model.Task, 0)
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.Day() == date {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}
