package domain

import (
	"context"

	"github.com/google/uuid"
)

// AuthUseCase определяет бизнес-логику регистрации и входа.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, name string, role UserRole) (*User, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
}

// UserUseCase определяет бизнес-логику для работы с пользователями.
type UserUseCase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)
	// RecordNoShow фиксирует неявку участника; вызывается лидером проекта.
	RecordNoShow(ctx context.Context, actorID, userID uuid.UUID) (*User, error)
}

// ProjectUseCase определяет бизнес-логику для работы с проектами.
type ProjectUseCase interface {
	CreateProject(ctx context.Context, leaderID uuid.UUID, project *Project) (*Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, filters ProjectFilters) ([]*Project, int, error)
	CloseRecruitment(ctx context.Context, actorID, projectID uuid.UUID) (*Project, error)
	FinishProject(ctx context.Context, actorID, projectID uuid.UUID) (*Project, error)
	GetTeam(ctx context.Context, projectID uuid.UUID) ([]*TeamMember, error)
}

// ApplicationUseCase определяет бизнес-логику заявок на участие.
type ApplicationUseCase interface {
	Apply(ctx context.Context, userID, projectID uuid.UUID, position, motivation, portfolioLink string) (*Application, error)
	ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]*Application, error)
	Accept(ctx context.Context, actorID, projectID, appID uuid.UUID) (*AcceptOutcome, error)
	Reject(ctx context.Context, actorID, projectID, appID uuid.UUID) (*Application, error)
}

// FeatureUseCase определяет бизнес-логику AI-функций с лимитами.
type FeatureUseCase interface {
	// UseFeature потребляет одно использование функции; при исчерпании
	// лимита возвращает ErrQuotaExceeded, не увеличивая счетчик.
	UseFeature(ctx context.Context, userID uuid.UUID, feature FeatureType) (*UsageCounter, int, error)
}
