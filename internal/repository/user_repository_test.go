package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/model"
	"taskpad/internal/storage"
)

func newUserRepo(t *testing.T) UserRepository {
	t.Helper()
	doc := storage.NewDocument(filepath.Join(t.TempDir(), "users.json"), storage.CorruptReset)
	return NewUserRepository(doc)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	user := &model.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_List(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Create(ctx, &model.User{ID: "u1", Email: "a@x.com"}))
	require.NoError(t, repo.Create(ctx, &model.User{ID: "u2", Email: "b@x.com"}))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
