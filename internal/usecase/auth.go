package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"projectmate-service/internal/auth"
	"projectmate-service/internal/domain"
)

// AuthUseCase реализует бизнес-логику регистрации и входа.
type AuthUseCase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthUseCase создает новый экземпляр AuthUseCase.
func NewAuthUseCase(userRepo domain.UserRepository, tokens *auth.TokenManager) domain.AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register создает нового пользователя с хешированным паролем.
func (uc *AuthUseCase) Register(ctx context.Context, email, password, name string, role domain.UserRole) (*domain.User, error) {
	// Валидация
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, domain.ErrInvalidPassword
	}
	switch role {
	case domain.RoleLeader, domain.RoleMember, domain.RoleBoth:
	default:
		return nil, domain.ErrInvalidUserRole
	}

	// Проверяем, что email свободен
	exists, err := uc.userRepo.ExistsEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		IsActive:     true,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login проверяет учетные данные и выпускает токен доступа.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Не раскрываем, существует ли аккаунт
		return nil, "", domain.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
