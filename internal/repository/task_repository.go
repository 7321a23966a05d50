package repository

import (
	"context"
	"sync"

	"taskpad/internal/model"
	"taskpad/internal/storage"
)

// TaskRepository defines task persistence operations. Every lookup is scoped
// by the owning user's id; a task owned by someone else reads as ErrNotFound.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	FindByID(ctx context.Context, userID, id string) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, userID, id string) error
}

type fileTaskRepository struct {
	mu  sync.Mutex
	doc *storage.Document
}

// NewTaskRepository creates a repository over the given task document.
func NewTaskRepository(doc *storage.Document) TaskRepository {
	return &fileTaskRepository{doc: doc}
}

func (r *fileTaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []model.Task
	if err := r.doc.Load(&tasks); err != nil {
		return nil, err
	}
	// store insertion order is preserved
	owned := make([]model.Task, 0)
	for _, t := range tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

func (r *fileTaskRepository) FindByID(ctx context.Context, userID, id string) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []model.Task
	if err := r.doc.Load(&tasks); err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id && tasks[i].UserID == userID {
			return &tasks[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileTaskRepository) Create(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []model.Task
	if err := r.doc.Load(&tasks); err != nil {
		return err
	}
	tasks = append(tasks, *task)
	return r.doc.Save(tasks)
}

func (r *fileTaskRepository) Update(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []model.Task
	if err := r.doc.Load(&tasks); err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == task.ID && tasks[i].UserID == task.UserID {
			tasks[i] = *task
			return r.doc.Save(tasks)
		}
	}
	return ErrNotFound
}

func (r *fileTaskRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []model.Task
	if err := r.doc.Load(&tasks); err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == id && tasks[i].UserID == userID {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return r.doc.Save(tasks)
		}
	}
	return ErrNotFound
}
