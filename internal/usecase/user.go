package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
	"projectmate-service/internal/governance"
)

// UserUseCase реализует бизнес-логику для работы с пользователями.
type UserUseCase struct {
	userRepo domain.UserRepository
	engine   *governance.Engine
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(userRepo domain.UserRepository, engine *governance.Engine) domain.UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		engine:   engine,
	}
}

// GetProfile возвращает профиль пользователя.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// RecordNoShow фиксирует неявку участника. Действие доступно пользователям
// с ролью лидера; чистая функция ядра применяется к строке пользователя под
// блокировкой, чтобы конкурентные записи не теряли инкременты.
func (uc *UserUseCase) RecordNoShow(ctx context.Context, actorID, userID uuid.UUID) (*domain.User, error) {
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.CanLead() {
		return nil, domain.ErrLeaderRoleRequired
	}

	now := time.Now().UTC()
	return uc.userRepo.UpdatePenaltyState(ctx, userID, func(u domain.User) domain.User {
		return uc.engine.RecordNoShow(u, now)
	})
}
