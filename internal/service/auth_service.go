package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskpad/internal/apperror"
	"taskpad/internal/auth"
	"taskpad/internal/cache"
	"taskpad/internal/model"
	"taskpad/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and identity lookups.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetCurrentUser(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	users    repository.UserRepository
	jwt      *auth.JWTService
	cache    *cache.Client
	cacheTTL time.Duration
}

// NewAuthService creates an authentication service. cacheTTL bounds how long
// a cached user profile may go stale.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, cache *cache.Client, cacheTTL time.Duration) AuthService {
	return &authService{users: users, jwt: jwt, cache: cache, cacheTTL: cacheTTL}
}

// Register creates a user with a bcrypt-hashed password and issues a token.
// The email must not already be registered.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, "", apperror.NewValidation("username, email and password are required")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", apperror.NewConflict("a user with this email already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperror.NewStorage("failed to read user store", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", apperror.New(apperror.KindUnknown, "failed to hash password", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", apperror.NewStorage("failed to save user", err)
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", apperror.New(apperror.KindUnknown, "failed to issue token", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error so accounts cannot be enumerated.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", apperror.NewValidation("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperror.NewAuthentication("invalid email or password", err)
		}
		return nil, "", apperror.NewStorage("failed to read user store", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.NewAuthentication("invalid email or password", err)
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", apperror.New(apperror.KindUnknown, "failed to issue token", err)
	}
	return user, token, nil
}

// GetCurrentUser resolves a verified caller id back to its user record.
func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*model.User, error) {
	key := s.cacheKey(userID)
	if data := s.cache.Get(ctx, key); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFound("user not found")
		}
		return nil, apperror.NewStorage("failed to read user store", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		s.cache.Set(ctx, key, payload, s.cacheTTL)
	}
	return user, nil
}

func (s *authService) cacheKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}
