package repository

import (
	"context"
	"sync"

	"taskpad/internal/model"
	"taskpad/internal/storage"
)

// UserRepository defines user persistence operations. Email uniqueness is a
// service-level rule; the repository stores what it is given.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type fileUserRepository struct {
	mu  sync.Mutex
	doc *storage.Document
}

// NewUserRepository creates a repository over the given user document.
func NewUserRepository(doc *storage.Document) UserRepository {
	return &fileUserRepository{doc: doc}
}

func (r *fileUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []model.User
	if err := r.doc.Load(&users); err != nil {
		return err
	}
	users = append(users, *user)
	return r.doc.Save(users)
}

func (r *fileUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []model.User
	if err := r.doc.Load(&users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []model.User
	if err := r.doc.Load(&users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileUserRepository) List(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []model.User
	if err := r.doc.Load(&users); err != nil {
		return nil, err
	}
	return users, nil
}
