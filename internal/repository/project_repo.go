package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
)

// ProjectRepository реализует взаимодействие с данными проектов в PostgreSQL.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository создает новый экземпляр ProjectRepository.
func NewProjectRepository(db *sql.DB) domain.ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, leader_id, title, summary, description, category, goal,
	expected_duration_weeks, remote_type, recruitment_status, positions_needed,
	created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	var positionsRaw []byte
	err := row.Scan(
		&p.ID, &p.LeaderID, &p.Title, &p.Summary, &p.Description, &p.Category, &p.Goal,
		&p.ExpectedDurationWeeks, &p.RemoteType, &p.RecruitmentStatus, &positionsRaw,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(positionsRaw, &p.PositionsNeeded); err != nil {
		return nil, fmt.Errorf("failed to decode positions_needed: %w", err)
	}
	return &p, nil
}

// Create вставляет новый проект и членство лидера одной транзакцией.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	positionsRaw, err := json.Marshal(project.PositionsNeeded)
	if err != nil {
		return fmt.Errorf("failed to encode positions_needed: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, leader_id, title, summary, description, category, goal,
			expected_duration_weeks, remote_type, recruitment_status, positions_needed,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`,
		project.ID, project.LeaderID, project.Title, project.Summary, project.Description,
		project.Category, project.Goal, project.ExpectedDurationWeeks, project.RemoteType,
		project.RecruitmentStatus, positionsRaw,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	// Лидер состоит в команде с момента публикации
	_, err = tx.ExecContext(ctx, `
		INSERT INTO team_members (id, project_id, user_id, role_in_project, is_leader, joined_at)
		VALUES ($1, $2, $3, 'LEADER', TRUE, now())`,
		uuid.New(), project.ID, project.LeaderID,
	)
	if err != nil {
		return fmt.Errorf("failed to create leader membership: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID возвращает проект со снимком занятых мест по активным участникам.
func (r *ProjectRepository) GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, projectID)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.PositionsFilled, err = queryPositionsFilled(ctx, r.db, projectID)
	if err != nil {
		return nil, err
	}

	return project, nil
}

// List возвращает страницу проектов с фильтрами по категории и формату.
func (r *ProjectRepository) List(ctx context.Context, filters domain.ProjectFilters) ([]*domain.Project, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if filters.Category != nil {
		args = append(args, *filters.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.RemoteType != nil {
		args = append(args, *filters.RemoteType)
		where += fmt.Sprintf(" AND remote_type = $%d", len(args))
	}

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM projects`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	size := filters.Size
	if size < 1 {
		size = 20
	}

	args = append(args, size, (page-1)*size)
	query := `SELECT ` + projectColumns + ` FROM projects` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate projects: %w", err)
	}

	for _, project := range projects {
		project.PositionsFilled, err = queryPositionsFilled(ctx, r.db, project.ID)
		if err != nil {
			return nil, 0, err
		}
	}

	return projects, total, nil
}

// UpdateStatus применяет apply к проекту под блокировкой строки и сохраняет
// новый статус набора.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, projectID uuid.UUID, apply func(domain.Project) (domain.Project, error)) (*domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	project, err := lockProject(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}

	project.PositionsFilled, err = queryPositionsFilled(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}

	updated, err := apply(*project)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE projects SET recruitment_status = $2, updated_at = now()
		WHERE id = $1`,
		projectID, updated.RecruitmentStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update recruitment status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &updated, nil
}

// GetTeamMembers возвращает участников команды проекта.
func (r *ProjectRepository) GetTeamMembers(ctx context.Context, projectID uuid.UUID) ([]*domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, user_id, role_in_project, is_leader, joined_at, left_at
		FROM team_members WHERE project_id = $1
		ORDER BY joined_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	members := make([]*domain.TeamMember, 0)
	for rows.Next() {
		var m domain.TeamMember
		err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.RoleInProject, &m.IsLeader, &m.JoinedAt, &m.LeftAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}

	return members, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryPositionsFilled считает занятые места по активным участникам
// (left_at IS NULL); членство лидера в positions_needed не входит и не
// учитывается.
func queryPositionsFilled(ctx context.Context, q queryer, projectID uuid.UUID) (map[string]int, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT role_in_project, count(*)
		FROM team_members
		WHERE project_id = $1 AND left_at IS NULL AND is_leader = FALSE
		GROUP BY role_in_project`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count filled positions: %w", err)
	}
	defer rows.Close()

	filled := make(map[string]int)
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("failed to scan filled positions: %w", err)
		}
		filled[role] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate filled positions: %w", err)
	}

	return filled, nil
}

func lockProject(ctx context.Context, tx *sql.Tx, projectID uuid.UUID) (*domain.Project, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, projectID)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to lock project row: %w", err)
	}
	return project, nil
}
