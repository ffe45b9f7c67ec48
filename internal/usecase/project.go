package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
	"projectmate-service/internal/governance"
)

// ProjectUseCase реализует бизнес-логику для работы с проектами.
type ProjectUseCase struct {
	projectRepo domain.ProjectRepository
	userRepo    domain.UserRepository
	engine      *governance.Engine
}

// NewProjectUseCase создает новый экземпляр ProjectUseCase.
func NewProjectUseCase(projectRepo domain.ProjectRepository, userRepo domain.UserRepository, engine *governance.Engine) domain.ProjectUseCase {
	return &ProjectUseCase{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		engine:      engine,
	}
}

// CreateProject публикует проект. Публиковать могут пользователи с ролью
// лидера без действующего штрафа.
func (uc *ProjectUseCase) CreateProject(ctx context.Context, leaderID uuid.UUID, project *domain.Project) (*domain.Project, error) {
	// Валидация
	if strings.TrimSpace(project.Title) == "" {
		return nil, domain.ErrInvalidProjectTitle
	}
	if len(project.PositionsNeeded) == 0 {
		return nil, domain.ErrInvalidPositions
	}
	for _, needed := range project.PositionsNeeded {
		if needed < 0 {
			return nil, domain.ErrInvalidPositions
		}
	}

	leader, err := uc.userRepo.GetByID(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.CanCreateProject(*leader, time.Now().UTC()); err != nil {
		return nil, err
	}

	project.ID = uuid.New()
	project.LeaderID = leaderID
	project.RecruitmentStatus = domain.RecruitmentOpen

	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// GetProject возвращает проект по идентификатору.
func (uc *ProjectUseCase) GetProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	return uc.projectRepo.GetByID(ctx, projectID)
}

// ListProjects возвращает страницу проектов.
func (uc *ProjectUseCase) ListProjects(ctx context.Context, filters domain.ProjectFilters) ([]*domain.Project, int, error) {
	return uc.projectRepo.List(ctx, filters)
}

// CloseRecruitment закрывает набор решением лидера.
func (uc *ProjectUseCase) CloseRecruitment(ctx context.Context, actorID, projectID uuid.UUID) (*domain.Project, error) {
	return uc.projectRepo.UpdateStatus(ctx, projectID, func(p domain.Project) (domain.Project, error) {
		if p.LeaderID != actorID {
			return p, domain.ErrNotProjectLeader
		}
		return governance.CloseRecruitment(p)
	})
}

// FinishProject завершает проект решением лидера.
func (uc *ProjectUseCase) FinishProject(ctx context.Context, actorID, projectID uuid.UUID) (*domain.Project, error) {
	return uc.projectRepo.UpdateStatus(ctx, projectID, func(p domain.Project) (domain.Project, error) {
		if p.LeaderID != actorID {
			return p, domain.ErrNotProjectLeader
		}
		return governance.FinishProject(p)
	})
}

// GetTeam возвращает участников команды проекта.
func (uc *ProjectUseCase) GetTeam(ctx context.Context, projectID uuid.UUID) ([]*domain.TeamMember, error) {
	// Проверяем, что проект существует
	if _, err := uc.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.projectRepo.GetTeamMembers(ctx, projectID)
}
