package usecase

import (
	"context"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
	"projectmate-service/internal/governance"
)

// FeatureUseCase реализует бизнес-логику AI-функций с лимитами использования.
type FeatureUseCase struct {
	usageRepo domain.UsageRepository
	userRepo  domain.UserRepository
	engine    *governance.Engine
}

// NewFeatureUseCase создает новый экземпляр FeatureUseCase.
func NewFeatureUseCase(usageRepo domain.UsageRepository, userRepo domain.UserRepository, engine *governance.Engine) domain.FeatureUseCase {
	return &FeatureUseCase{
		usageRepo: usageRepo,
		userRepo:  userRepo,
		engine:    engine,
	}
}

// UseFeature потребляет одно использование функции и возвращает счетчик с
// остатком (-1 — безлимит). Проверка и инкремент — один условный UPDATE в
// хранилище: две конкурентные попытки на последний слот не пройдут обе.
// Отклоненная попытка счетчик не увеличивает.
func (uc *FeatureUseCase) UseFeature(ctx context.Context, userID uuid.UUID, feature domain.FeatureType) (*domain.UsageCounter, int, error) {
	switch feature {
	case domain.FeaturePortfolioGeneration, domain.FeatureInterviewGuide,
		domain.FeatureTestGeneration, domain.FeatureLearningRoadmap,
		domain.FeatureMeetingSummary:
	default:
		return nil, 0, domain.ErrInvalidFeature
	}

	// Проверяем, что пользователь существует
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}

	limit, _ := uc.engine.Rules().Limit(feature)

	allowed, counter, err := uc.usageRepo.TryConsume(ctx, userID, feature, limit)
	if err != nil {
		return nil, 0, err
	}
	if !allowed {
		return counter, 0, domain.ErrQuotaExceeded
	}

	return counter, governance.Remaining(*counter, limit), nil
}
