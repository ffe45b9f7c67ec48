// Package mocks содержит testify-моки контрактов хранилищ для юнит-тестов.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"projectmate-service/internal/domain"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) UpdatePenaltyState(ctx context.Context, userID uuid.UUID, apply func(domain.User) domain.User) (*domain.User, error) {
	args := m.Called(ctx, userID, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Мок хранит исходного пользователя; apply применяется как в настоящем
	// репозитории, чтобы тесты проверяли сквозное поведение
	user := args.Get(0).(*domain.User)
	updated := apply(*user)
	return &updated, args.Error(1)
}

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, filters domain.ProjectFilters) ([]*domain.Project, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Project), args.Int(1), args.Error(2)
}

func (m *ProjectRepository) UpdateStatus(ctx context.Context, projectID uuid.UUID, apply func(domain.Project) (domain.Project, error)) (*domain.Project, error) {
	args := m.Called(ctx, projectID, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	project := args.Get(0).(*domain.Project)
	updated, err := apply(*project)
	if err != nil {
		return nil, err
	}
	return &updated, args.Error(1)
}

func (m *ProjectRepository) GetTeamMembers(ctx context.Context, projectID uuid.UUID) ([]*domain.TeamMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TeamMember), args.Error(1)
}

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, appID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Application, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) HasPending(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ApplicationRepository) Accept(ctx context.Context, projectID, appID uuid.UUID, decide domain.AcceptDecider) (*domain.AcceptOutcome, error) {
	args := m.Called(ctx, projectID, appID, decide)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Мок передает decide снимки, заданные через helper SeedAccept
	seed := args.Get(0).(*AcceptSeed)
	outcome, err := decide(seed.Project, seed.Application)
	if err != nil {
		return nil, err
	}
	return outcome, args.Error(1)
}

func (m *ApplicationRepository) Reject(ctx context.Context, appID uuid.UUID, decide domain.RejectDecider) (*domain.Application, error) {
	args := m.Called(ctx, appID, decide)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	app := args.Get(0).(*domain.Application)
	return decide(*app)
}

// AcceptSeed — снимки, которые мок Accept передает в decide,
// имитируя чтение под блокировкой строки проекта.
type AcceptSeed struct {
	Project     domain.Project
	Application domain.Application
}

type UsageRepository struct {
	mock.Mock
}

func (m *UsageRepository) Get(ctx context.Context, userID uuid.UUID, feature domain.FeatureType) (*domain.UsageCounter, error) {
	args := m.Called(ctx, userID, feature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageCounter), args.Error(1)
}

func (m *UsageRepository) TryConsume(ctx context.Context, userID uuid.UUID, feature domain.FeatureType, limit int) (bool, *domain.UsageCounter, error) {
	args := m.Called(ctx, userID, feature, limit)
	if args.Get(1) == nil {
		return args.Bool(0), nil, args.Error(2)
	}
	return args.Bool(0), args.Get(1).(*domain.UsageCounter), args.Error(2)
}
