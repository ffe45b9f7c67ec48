package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecruitmentStatus описывает стадию жизненного цикла набора в проект.
type RecruitmentStatus string

const (
	RecruitmentOpen       RecruitmentStatus = "OPEN"
	RecruitmentInProgress RecruitmentStatus = "IN_PROGRESS"
	RecruitmentClosed     RecruitmentStatus = "CLOSED"
	RecruitmentFinished   RecruitmentStatus = "FINISHED"
)

// IsTerminal сообщает, является ли статус терминальным (новые заявки невозможны).
func (s RecruitmentStatus) IsTerminal() bool {
	return s == RecruitmentClosed || s == RecruitmentFinished
}

// ProjectCategory — категория проекта.
type ProjectCategory string

const (
	CategoryContest  ProjectCategory = "CONTEST"
	CategoryBusiness ProjectCategory = "BUSINESS"
	CategoryStudy    ProjectCategory = "STUDY"
	CategoryEtc      ProjectCategory = "ETC"
)

// RemoteType — формат работы над проектом.
type RemoteType string

const (
	RemoteOnline  RemoteType = "ONLINE"
	RemoteOffline RemoteType = "OFFLINE"
	RemoteHybrid  RemoteType = "HYBRID"
)

// Project представляет проект с состоянием набора команды.
// PositionsNeeded и PositionsFilled индексируются меткой роли ("BE", "FE", ...).
// PositionsFilled выводится из активных участников команды и не хранится отдельно.
type Project struct {
	ID                    uuid.UUID
	LeaderID              uuid.UUID
	Title                 string
	Summary               string
	Description           string
	Category              ProjectCategory
	Goal                  string
	ExpectedDurationWeeks int
	RemoteType            RemoteType
	RecruitmentStatus     RecruitmentStatus
	PositionsNeeded       map[string]int
	PositionsFilled       map[string]int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasOpenPosition сообщает, осталась ли хотя бы одна роль с недобором.
func (p Project) HasOpenPosition() bool {
	for role, needed := range p.PositionsNeeded {
		if p.PositionsFilled[role] < needed {
			return true
		}
	}
	return false
}

// TeamMember представляет участника команды проекта.
// Активный участник имеет незаполненный LeftAt.
type TeamMember struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	UserID        uuid.UUID
	RoleInProject string
	IsLeader      bool
	JoinedAt      time.Time
	LeftAt        *time.Time
}

// ProjectFilters — фильтры списка проектов.
type ProjectFilters struct {
	Category   *ProjectCategory
	RemoteType *RemoteType
	Page       int
	Size       int
}

// ProjectRepository определяет контракт для работы с хранилищем проектов.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	// GetByID возвращает проект со снимком PositionsFilled,
	// посчитанным по активным участникам команды.
	GetByID(ctx context.Context, projectID uuid.UUID) (*Project, error)
	List(ctx context.Context, filters ProjectFilters) ([]*Project, int, error)
	// UpdateStatus применяет apply к проекту под блокировкой строки и
	// сохраняет новый статус набора.
	UpdateStatus(ctx context.Context, projectID uuid.UUID, apply func(Project) (Project, error)) (*Project, error)
	GetTeamMembers(ctx context.Context, projectID uuid.UUID) ([]*TeamMember, error)
}
