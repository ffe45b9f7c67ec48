package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FeatureType идентифицирует AI-функцию с лимитом использования.
type FeatureType string

const (
	FeaturePortfolioGeneration FeatureType = "PORTFOLIO_GENERATION"
	FeatureInterviewGuide      FeatureType = "INTERVIEW_GUIDE"
	FeatureTestGeneration      FeatureType = "TEST_GENERATION"
	FeatureLearningRoadmap     FeatureType = "LEARNING_ROADMAP"
	FeatureMeetingSummary      FeatureType = "MEETING_SUMMARY"
)

// UsageCounter представляет счетчик использований функции пользователем.
// Создается лениво при первом использовании; Count растет только при
// успешном потреблении и никогда не превышает настроенный лимит.
type UsageCounter struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Feature    FeatureType
	Count      int
	LastUsedAt time.Time
}

// UsageRepository определяет контракт для работы со счетчиками использований.
type UsageRepository interface {
	Get(ctx context.Context, userID uuid.UUID, feature FeatureType) (*UsageCounter, error)
	// TryConsume выполняет атомарный compare-and-increment: счетчик
	// увеличивается одним условным UPDATE только пока count < limit.
	// limit <= 0 означает отсутствие лимита (инкремент без проверки).
	TryConsume(ctx context.Context, userID uuid.UUID, feature FeatureType, limit int) (bool, *UsageCounter, error)
}
