package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"projectmate-service/internal/domain"
	"projectmate-service/internal/usecase"
	"projectmate-service/tests/mocks"
)

func TestFeatureUseCase_UseFeature_UnknownFeature(t *testing.T) {
	usageRepo := new(mocks.UsageRepository)
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewFeatureUseCase(usageRepo, userRepo, newTestEngine(t))

	_, _, err := uc.UseFeature(context.Background(), uuid.New(), domain.FeatureType("MIND_READING"))

	assert.ErrorIs(t, err, domain.ErrInvalidFeature)
	usageRepo.AssertNotCalled(t, "TryConsume")
}

func TestFeatureUseCase_UseFeature_UserNotFound(t *testing.T) {
	usageRepo := new(mocks.UsageRepository)
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewFeatureUseCase(usageRepo, userRepo, newTestEngine(t))

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrUserNotFound)

	_, _, err := uc.UseFeature(context.Background(), userID, domain.FeaturePortfolioGeneration)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	usageRepo.AssertNotCalled(t, "TryConsume")
}

func TestFeatureUseCase_UseFeature_Allowed(t *testing.T) {
	usageRepo := new(mocks.UsageRepository)
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewFeatureUseCase(usageRepo, userRepo, newTestEngine(t))

	user := newMember()
	counter := &domain.UsageCounter{
		UserID:     user.ID,
		Feature:    domain.FeaturePortfolioGeneration,
		Count:      1,
		LastUsedAt: time.Now().UTC(),
	}

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	usageRepo.On("TryConsume", mock.Anything, user.ID, domain.FeaturePortfolioGeneration, 3).
		Return(true, counter, nil)

	got, remaining, err := uc.UseFeature(context.Background(), user.ID, domain.FeaturePortfolioGeneration)

	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 2, remaining)
}

func TestFeatureUseCase_UseFeature_QuotaExceeded(t *testing.T) {
	usageRepo := new(mocks.UsageRepository)
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewFeatureUseCase(usageRepo, userRepo, newTestEngine(t))

	user := newMember()
	counter := &domain.UsageCounter{
		UserID:  user.ID,
		Feature: domain.FeaturePortfolioGeneration,
		Count:   3,
	}

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	usageRepo.On("TryConsume", mock.Anything, user.ID, domain.FeaturePortfolioGeneration, 3).
		Return(false, counter, nil)

	got, _, err := uc.UseFeature(context.Background(), user.ID, domain.FeaturePortfolioGeneration)

	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	// Отклоненная попытка возвращает неизмененный счетчик
	assert.Equal(t, 3, got.Count)
}

func TestFeatureUseCase_UseFeature_UnlimitedFeature(t *testing.T) {
	usageRepo := new(mocks.UsageRepository)
	userRepo := new(mocks.UserRepository)
	uc := usecase.NewFeatureUseCase(usageRepo, userRepo, newTestEngine(t))

	user := newMember()
	counter := &domain.UsageCounter{
		UserID:  user.ID,
		Feature: domain.FeatureMeetingSummary,
		Count:   42,
	}

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	// Для функции без настроенного лимита в хранилище уходит limit = 0
	usageRepo.On("TryConsume", mock.Anything, user.ID, domain.FeatureMeetingSummary, 0).
		Return(true, counter, nil)

	_, remaining, err := uc.UseFeature(context.Background(), user.ID, domain.FeatureMeetingSummary)

	require.NoError(t, err)
	assert.Equal(t, -1, remaining)
}
