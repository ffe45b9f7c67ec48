package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRole определяет, какие действия доступны пользователю при формировании команд.
type UserRole string

const (
	RoleLeader UserRole = "LEADER"
	RoleMember UserRole = "MEMBER"
	RoleBoth   UserRole = "BOTH"
)

// User представляет сущность пользователя в системе.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         UserRole
	IsActive     bool
	NoShowCount  int
	PenaltyUntil *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLead сообщает, может ли пользователь выступать лидером проекта.
func (u User) CanLead() bool {
	return u.Role == RoleLeader || u.Role == RoleBoth
}

// UserRepository определяет контракт для работы с хранилищем пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	// UpdatePenaltyState применяет apply к пользователю под блокировкой строки,
	// чтобы конкурентные записи no-show не теряли инкременты.
	UpdatePenaltyState(ctx context.Context, userID uuid.UUID, apply func(User) User) (*User, error)
}
