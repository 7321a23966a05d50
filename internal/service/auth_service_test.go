package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskpad/internal/apperror"
	"taskpad/internal/auth"
	"taskpad/internal/cache"
	"taskpad/internal/model"
	"taskpad/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func newAuthService(repo repository.UserRepository) AuthService {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, jwtService, cache.New("", "", 0), 5*time.Minute)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantKind  apperror.Kind
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "a@x.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:      "missing username",
			username:  "  ",
			email:     "a@x.com",
			password:  "secret1",
			setupMock: func(m *MockUserRepository) {},
			wantKind:  apperror.KindValidation,
		},
		{
			name:      "missing password",
			username:  "alice",
			email:     "a@x.com",
			password:  "",
			setupMock: func(m *MockUserRepository) {},
			wantKind:  apperror.KindValidation,
		},
		{
			name:     "duplicate email",
			username: "alice",
			email:    "taken@x.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@x.com").Return(&model.User{Email: "taken@x.com"}, nil)
			},
			wantKind: apperror.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthService(mockRepo)
			user, token, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.wantKind != apperror.KindUnknown {
				assert.True(t, apperror.IsKind(err, tt.wantKind), "got %v", err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, user.ID)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), 10)
	stored := &model.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: string(hashed),
	}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantKind  apperror.Kind
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(stored, nil)
			},
		},
		{
			name:      "missing fields",
			email:     "",
			password:  "secret1",
			setupMock: func(m *MockUserRepository) {},
			wantKind:  apperror.KindValidation,
		},
		{
			name:     "unknown email",
			email:    "ghost@x.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, repository.ErrNotFound)
			},
			wantKind: apperror.KindAuthentication,
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(stored, nil)
			},
			wantKind: apperror.KindAuthentication,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthService(mockRepo)
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantKind != apperror.KindUnknown {
				assert.True(t, apperror.IsKind(err, tt.wantKind), "got %v", err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the client.
func TestAuthService_LoginErrorsDoNotEnumerate(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), 10)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, repository.ErrNotFound)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{
		Email:        "a@x.com",
		PasswordHash: string(hashed),
	}, nil)

	svc := newAuthService(mockRepo)

	_, _, unknownErr := svc.Login(context.Background(), "ghost@x.com", "secret1")
	_, _, wrongErr := svc.Login(context.Background(), "a@x.com", "bad-password")

	var unknownApp, wrongApp *apperror.AppError
	require.ErrorAs(t, unknownErr, &unknownApp)
	require.ErrorAs(t, wrongErr, &wrongApp)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Username: "alice"}, nil)
	mockRepo.On("FindByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound)

	svc := newAuthService(mockRepo)

	user, err := svc.GetCurrentUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetCurrentUser(context.Background(), "gone")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "got %v", err)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), 10)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{
		ID:           "u1",
		Email:        "a@x.com",
		PasswordHash: string(hashed),
	}, nil)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	svc := NewAuthService(mockRepo, jwtService, cache.New("", "", 0), 5*time.Minute)

	_, token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}
