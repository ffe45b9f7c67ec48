package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"projectmate-service/internal/auth"
	"projectmate-service/internal/domain"
	"projectmate-service/internal/usecase"
	"projectmate-service/tests/mocks"
)

func newTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return tokens
}

func TestAuthUseCase_Register_Success(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewAuthUseCase(userRepo, newTokens(t))

	userRepo.On("ExistsEmail", mock.Anything, "new.user@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := uc.Register(context.Background(), "  New.User@Example.COM ", "password123", "New User", domain.RoleMember)

	require.NoError(t, err)
	assert.Equal(t, "new.user@example.com", user.Email)
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "password123"))
	userRepo.AssertExpectations(t)
}

func TestAuthUseCase_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     domain.UserRole
		wantErr  error
	}{
		{"empty email", "", "password123", domain.RoleMember, domain.ErrInvalidEmail},
		{"email without at", "not-an-email", "password123", domain.RoleMember, domain.ErrInvalidEmail},
		{"short password", "user@example.com", "short", domain.RoleMember, domain.ErrInvalidPassword},
		{"unknown role", "user@example.com", "password123", domain.UserRole("ADMIN"), domain.ErrInvalidUserRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mocks.UserRepository)
			uc := usecase.NewAuthUseCase(userRepo, newTokens(t))

			user, err := uc.Register(context.Background(), tt.email, tt.password, "Name", tt.role)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
			userRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestAuthUseCase_Register_EmailTaken(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewAuthUseCase(userRepo, newTokens(t))

	userRepo.On("ExistsEmail", mock.Anything, "taken@example.com").Return(true, nil)

	user, err := uc.Register(context.Background(), "taken@example.com", "password123", "Name", domain.RoleLeader)

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Nil(t, user)
	userRepo.AssertNotCalled(t, "Create")
}

func TestAuthUseCase_Login_Success(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	tokens := newTokens(t)
	uc := usecase.NewAuthUseCase(userRepo, tokens)

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	stored := newMember()
	stored.PasswordHash = hash

	userRepo.On("GetByEmail", mock.Anything, "member@example.com").Return(stored, nil)

	user, token, err := uc.Login(context.Background(), " Member@Example.com ", "password123")

	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
	require.NotEmpty(t, token)

	// Выпущенный токен должен проходить проверку
	parsedID, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, parsedID)
}

func TestAuthUseCase_Login_WrongPassword(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewAuthUseCase(userRepo, newTokens(t))

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	stored := newMember()
	stored.PasswordHash = hash

	userRepo.On("GetByEmail", mock.Anything, "member@example.com").Return(stored, nil)

	_, token, err := uc.Login(context.Background(), "member@example.com", "wrong-password")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthUseCase_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewAuthUseCase(userRepo, newTokens(t))

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

	_, token, err := uc.Login(context.Background(), "ghost@example.com", "password123")

	// Несуществующий аккаунт неотличим от неверного пароля
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, token)
}
