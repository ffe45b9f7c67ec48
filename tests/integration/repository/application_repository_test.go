package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"projectmate-service/internal/database"
	"projectmate-service/internal/domain"
	"projectmate-service/internal/governance"
	"projectmate-service/internal/repository"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ApplicationRepositoryTestSuite struct {
	suite.Suite
	db          *sql.DB
	userRepo    domain.UserRepository
	projectRepo domain.ProjectRepository
	appRepo     domain.ApplicationRepository
	ctx         context.Context

	leader    *domain.User
	applicant *domain.User
	project   *domain.Project
}

func (suite *ApplicationRepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		"postgres", "password", "localhost", "5433", "projectmate_test",
	)

	var err error
	suite.db, err = sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err = suite.db.Ping(); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	if err = database.MigrateDB(suite.db); err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}

	suite.userRepo = repository.NewUserRepository(suite.db)
	suite.projectRepo = repository.NewProjectRepository(suite.db)
	suite.appRepo = repository.NewApplicationRepository(suite.db)
}

func (suite *ApplicationRepositoryTestSuite) SetupTest() {
	suite.cleanDatabase()

	suite.leader = &domain.User{
		ID: uuid.New(), Email: "leader@example.com", Name: "Leader",
		Role: domain.RoleLeader, IsActive: true,
	}
	suite.applicant = &domain.User{
		ID: uuid.New(), Email: "applicant@example.com", Name: "Applicant",
		Role: domain.RoleMember, IsActive: true,
	}
	require.NoError(suite.T(), suite.userRepo.Create(suite.ctx, suite.leader))
	require.NoError(suite.T(), suite.userRepo.Create(suite.ctx, suite.applicant))

	suite.project = &domain.Project{
		ID:                uuid.New(),
		LeaderID:          suite.leader.ID,
		Title:             "Team Matching Platform",
		Category:          domain.CategoryStudy,
		RemoteType:        domain.RemoteOnline,
		RecruitmentStatus: domain.RecruitmentOpen,
		PositionsNeeded:   map[string]int{"BE": 1, "FE": 1},
	}
	require.NoError(suite.T(), suite.projectRepo.Create(suite.ctx, suite.project))
}

func (suite *ApplicationRepositoryTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *ApplicationRepositoryTestSuite) cleanDatabase() {
	tables := []string{"ai_feature_usage", "project_applications", "team_members", "projects", "users"}
	for _, table := range tables {
		_, err := suite.db.ExecContext(suite.ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			log.Printf("Failed to clean table %s: %v", table, err)
		}
	}
}

func (suite *ApplicationRepositoryTestSuite) createPendingApplication(userID uuid.UUID, role string) *domain.Application {
	now := time.Now().UTC()
	app := &domain.Application{
		ID:              uuid.New(),
		ProjectID:       suite.project.ID,
		UserID:          userID,
		AppliedPosition: role,
		Motivation:      "I want to join",
		Status:          domain.ApplicationPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(suite.T(), suite.appRepo.Create(suite.ctx, app))
	return app
}

func (suite *ApplicationRepositoryTestSuite) TestCreate_DuplicatePendingRejected() {
	suite.createPendingApplication(suite.applicant.ID, "BE")

	err := suite.appRepo.Create(suite.ctx, &domain.Application{
		ID:              uuid.New(),
		ProjectID:       suite.project.ID,
		UserID:          suite.applicant.ID,
		AppliedPosition: "FE",
		Motivation:      "Second try",
		Status:          domain.ApplicationPending,
	})

	// Частичный уникальный индекс пропускает одну PENDING-заявку на пару
	assert.ErrorIs(suite.T(), err, domain.ErrDuplicatePending)
}

func (suite *ApplicationRepositoryTestSuite) TestHasPending() {
	pending, err := suite.appRepo.HasPending(suite.ctx, suite.project.ID, suite.applicant.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), pending)

	suite.createPendingApplication(suite.applicant.ID, "BE")

	pending, err = suite.appRepo.HasPending(suite.ctx, suite.project.ID, suite.applicant.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), pending)
}

func (suite *ApplicationRepositoryTestSuite) TestAccept_WritesMembershipAndCounters() {
	app := suite.createPendingApplication(suite.applicant.ID, "BE")
	now := time.Now().UTC()

	outcome, err := suite.appRepo.Accept(suite.ctx, suite.project.ID, app.ID,
		func(p domain.Project, a domain.Application) (*domain.AcceptOutcome, error) {
			return governance.AcceptApplication(p, a, now)
		})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.ApplicationAccepted, outcome.Application.Status)
	assert.Equal(suite.T(), 1, outcome.Project.PositionsFilled["BE"])
	assert.Equal(suite.T(), domain.RecruitmentOpen, outcome.Project.RecruitmentStatus)

	// Членство записано; лидер учтен при создании проекта
	members, err := suite.projectRepo.GetTeamMembers(suite.ctx, suite.project.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), members, 2)

	// Снимок проекта читает счетчики из активных участников
	stored, err := suite.projectRepo.GetByID(suite.ctx, suite.project.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, stored.PositionsFilled["BE"])
}

func (suite *ApplicationRepositoryTestSuite) TestAccept_LastSlotDerivesInProgress() {
	app := suite.createPendingApplication(suite.applicant.ID, "BE")
	now := time.Now().UTC()

	// Закрываем FE вторым участником
	second := &domain.User{
		ID: uuid.New(), Email: "second@example.com", Name: "Second",
		Role: domain.RoleMember, IsActive: true,
	}
	require.NoError(suite.T(), suite.userRepo.Create(suite.ctx, second))
	feApp := suite.createPendingApplication(second.ID, "FE")

	_, err := suite.appRepo.Accept(suite.ctx, suite.project.ID, app.ID,
		func(p domain.Project, a domain.Application) (*domain.AcceptOutcome, error) {
			return governance.AcceptApplication(p, a, now)
		})
	require.NoError(suite.T(), err)

	outcome, err := suite.appRepo.Accept(suite.ctx, suite.project.ID, feApp.ID,
		func(p domain.Project, a domain.Application) (*domain.AcceptOutcome, error) {
			return governance.AcceptApplication(p, a, now)
		})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.RecruitmentInProgress, outcome.Project.RecruitmentStatus)

	stored, err := suite.projectRepo.GetByID(suite.ctx, suite.project.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.RecruitmentInProgress, stored.RecruitmentStatus)
}

func (suite *ApplicationRepositoryTestSuite) TestAccept_ConcurrentLastSlot() {
	now := time.Now().UTC()

	// Две заявки на единственное BE-место
	first := suite.createPendingApplication(suite.applicant.ID, "BE")
	second := &domain.User{
		ID: uuid.New(), Email: "rival@example.com", Name: "Rival",
		Role: domain.RoleMember, IsActive: true,
	}
	require.NoError(suite.T(), suite.userRepo.Create(suite.ctx, second))
	rivalApp := suite.createPendingApplication(second.ID, "BE")

	decide := func(p domain.Project, a domain.Application) (*domain.AcceptOutcome, error) {
		return governance.AcceptApplication(p, a, now)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, appID := range []uuid.UUID{first.ID, rivalApp.ID} {
		wg.Add(1)
		go func(i int, appID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = suite.appRepo.Accept(suite.ctx, suite.project.ID, appID, decide)
		}(i, appID)
	}
	wg.Wait()

	// Блокировка строки проекта сериализует решения: ровно одно принятие
	var accepted, denied int
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			assert.ErrorIs(suite.T(), err, domain.ErrRecruitmentClosedForRole)
			denied++
		}
	}
	assert.Equal(suite.T(), 1, accepted)
	assert.Equal(suite.T(), 1, denied)

	stored, err := suite.projectRepo.GetByID(suite.ctx, suite.project.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, stored.PositionsFilled["BE"])
}

func (suite *ApplicationRepositoryTestSuite) TestReject() {
	app := suite.createPendingApplication(suite.applicant.ID, "BE")
	now := time.Now().UTC()

	rejected, err := suite.appRepo.Reject(suite.ctx, app.ID,
		func(a domain.Application) (*domain.Application, error) {
			return governance.RejectApplication(a, now)
		})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.ApplicationRejected, rejected.Status)

	// Отклонение не занимает место и не пишет членство
	stored, err := suite.projectRepo.GetByID(suite.ctx, suite.project.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, stored.PositionsFilled["BE"])

	// После отклонения можно подать заново
	pending, err := suite.appRepo.HasPending(suite.ctx, suite.project.ID, suite.applicant.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), pending)
}

func (suite *ApplicationRepositoryTestSuite) TestGetByProject() {
	suite.createPendingApplication(suite.applicant.ID, "BE")

	apps, err := suite.appRepo.GetByProject(suite.ctx, suite.project.ID)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), apps, 1)
	assert.Equal(suite.T(), suite.applicant.ID, apps[0].UserID)
}

func TestApplicationRepositoryTestSuite(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "1" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}
	suite.Run(t, new(ApplicationRepositoryTestSuite))
}
