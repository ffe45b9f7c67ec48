package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"projectmate-service/internal/domain"
	"projectmate-service/internal/governance"
)

// Правила тестов: штраф после каждой третьей неявки на 30 дней,
// генерация портфолио ограничена тремя использованиями.
func newTestEngine(t *testing.T) *governance.Engine {
	t.Helper()
	engine, err := governance.NewEngine(governance.Rules{
		NoShowThreshold: 3,
		PenaltyDuration: 30 * 24 * time.Hour,
		FeatureLimits: map[domain.FeatureType]int{
			domain.FeaturePortfolioGeneration: 3,
		},
	})
	require.NoError(t, err)
	return engine
}

func newLeader() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Email:    "leader@example.com",
		Name:     "Leader",
		Role:     domain.RoleLeader,
		IsActive: true,
	}
}

func newMember() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Email:    "member@example.com",
		Name:     "Member",
		Role:     domain.RoleMember,
		IsActive: true,
	}
}

func newOpenProject(leaderID uuid.UUID) *domain.Project {
	return &domain.Project{
		ID:                uuid.New(),
		LeaderID:          leaderID,
		Title:             "Team Matching Platform",
		Category:          domain.CategoryStudy,
		RemoteType:        domain.RemoteOnline,
		RecruitmentStatus: domain.RecruitmentOpen,
		PositionsNeeded:   map[string]int{"BE": 2, "FE": 1},
		PositionsFilled:   map[string]int{},
	}
}
