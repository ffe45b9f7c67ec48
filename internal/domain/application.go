package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus описывает состояние заявки на участие в проекте.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// IsFinal сообщает, является ли статус терминальным.
func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// Application представляет заявку пользователя на роль в проекте.
// После перехода в ACCEPTED/REJECTED запись неизменяема (аудиторский след).
type Application struct {
	ID              uuid.UUID
	ProjectID       uuid.UUID
	UserID          uuid.UUID
	AppliedPosition string
	Motivation      string
	PortfolioLink   string
	Status          ApplicationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AcceptOutcome — результат атомарного принятия заявки: новая версия заявки,
// созданное членство и проект с пересчитанными счетчиками и статусом.
type AcceptOutcome struct {
	Application *Application
	Member      *TeamMember
	Project     *Project
}

// AcceptDecider вычисляет решение о принятии заявки по снимку,
// прочитанному внутри транзакции с заблокированной строкой проекта.
type AcceptDecider func(project Project, app Application) (*AcceptOutcome, error)

// RejectDecider вычисляет решение об отклонении заявки по ее снимку.
type RejectDecider func(app Application) (*Application, error)

// ApplicationRepository определяет контракт для работы с хранилищем заявок.
type ApplicationRepository interface {
	// Create вставляет PENDING-заявку; конфликт по частичному уникальному
	// индексу (project_id, user_id) WHERE status = 'PENDING' отображается
	// в ErrDuplicatePending.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, appID uuid.UUID) (*Application, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]*Application, error)
	HasPending(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	// Accept выполняет принятие заявки одной транзакцией: строка проекта
	// блокируется FOR UPDATE, снимок передается в decide, затем статус заявки,
	// членство и статус набора записываются атомарно. Отказ decide откатывает
	// транзакцию целиком.
	Accept(ctx context.Context, projectID, appID uuid.UUID, decide AcceptDecider) (*AcceptOutcome, error)
	// Reject переводит заявку в REJECTED под блокировкой строки заявки.
	Reject(ctx context.Context, appID uuid.UUID, decide RejectDecider) (*Application, error)
}
