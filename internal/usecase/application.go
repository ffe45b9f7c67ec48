package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
	"projectmate-service/internal/governance"
)

// ApplicationUseCase реализует бизнес-логику заявок на участие в проектах.
type ApplicationUseCase struct {
	appRepo     domain.ApplicationRepository
	projectRepo domain.ProjectRepository
	userRepo    domain.UserRepository
	engine      *governance.Engine
}

// NewApplicationUseCase создает новый экземпляр ApplicationUseCase.
func NewApplicationUseCase(appRepo domain.ApplicationRepository, projectRepo domain.ProjectRepository, userRepo domain.UserRepository, engine *governance.Engine) domain.ApplicationUseCase {
	return &ApplicationUseCase{
		appRepo:     appRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		engine:      engine,
	}
}

// Apply подает заявку на роль в проекте. Охранные условия вычисляет ядро по
// снимкам; гонку двух одновременных подач добивает уникальный индекс на
// PENDING-заявки в хранилище.
func (uc *ApplicationUseCase) Apply(ctx context.Context, userID, projectID uuid.UUID, position, motivation, portfolioLink string) (*domain.Application, error) {
	if strings.TrimSpace(motivation) == "" {
		return nil, domain.ErrInvalidMotivation
	}

	applicant, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	pendingExists, err := uc.appRepo.HasPending(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	app, err := uc.engine.Submit(*applicant, *project, pendingExists, position, motivation, portfolioLink, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// ListByProject возвращает заявки проекта; доступно только лидеру.
func (uc *ApplicationUseCase) ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]*domain.Application, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.LeaderID != actorID {
		return nil, domain.ErrNotProjectLeader
	}

	return uc.appRepo.GetByProject(ctx, projectID)
}

// Accept принимает заявку решением лидера. Решение вычисляется ядром по
// снимку, прочитанному под блокировкой строки проекта, и записывается
// атомарно вместе с членством и статусом набора: принятая заявка без
// членства или членство без пересчета мест нарушили бы инвариант
// filled <= needed.
func (uc *ApplicationUseCase) Accept(ctx context.Context, actorID, projectID, appID uuid.UUID) (*domain.AcceptOutcome, error) {
	now := time.Now().UTC()
	return uc.appRepo.Accept(ctx, projectID, appID, func(project domain.Project, app domain.Application) (*domain.AcceptOutcome, error) {
		return uc.engine.Accept(actorID, project, app, now)
	})
}

// Reject отклоняет заявку решением лидера; побочных эффектов нет.
func (uc *ApplicationUseCase) Reject(ctx context.Context, actorID, projectID, appID uuid.UUID) (*domain.Application, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return uc.appRepo.Reject(ctx, appID, func(app domain.Application) (*domain.Application, error) {
		if app.ProjectID != project.ID {
			return nil, domain.ErrApplicationNotFound
		}
		return uc.engine.Reject(actorID, *project, app, now)
	})
}
