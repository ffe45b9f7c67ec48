package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
)

// ApplicationRepository реализует взаимодействие с данными заявок в PostgreSQL.
type ApplicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository создает новый экземпляр ApplicationRepository.
func NewApplicationRepository(db *sql.DB) domain.ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, project_id, user_id, applied_position, motivation,
	COALESCE(portfolio_link, ''), status, created_at, updated_at`

func scanApplication(row interface{ Scan(...any) error }) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.ProjectID, &a.UserID, &a.AppliedPosition, &a.Motivation,
		&a.PortfolioLink, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create вставляет PENDING-заявку. Гонка двух одновременных подач гасится
// частичным уникальным индексом: проигравшая вставка получает
// ErrDuplicatePending.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	var portfolioLink *string
	if app.PortfolioLink != "" {
		portfolioLink = &app.PortfolioLink
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO project_applications (id, project_id, user_id, applied_position, motivation, portfolio_link, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`,
		app.ID, app.ProjectID, app.UserID, app.AppliedPosition, app.Motivation, portfolioLink, app.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePending
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetByID возвращает заявку по идентификатору.
func (r *ApplicationRepository) GetByID(ctx context.Context, appID uuid.UUID) (*domain.Application, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM project_applications WHERE id = $1`, appID)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// GetByProject возвращает все заявки проекта.
func (r *ApplicationRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM project_applications WHERE project_id = $1 ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, nil
}

// HasPending проверяет наличие PENDING-заявки на пару (проект, пользователь).
func (r *ApplicationRepository) HasPending(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM project_applications
		WHERE project_id = $1 AND user_id = $2 AND status = 'PENDING'`,
		projectID, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check pending application: %w", err)
	}
	return count > 0, nil
}

// Accept выполняет принятие заявки одной транзакцией: блокируется строка
// проекта, по заблокированному снимку вычисляется решение, затем атомарно
// записываются статус заявки, членство и статус набора. Второе конкурентное
// принятие на последнее место перечитает снимок, уже отражающий первое,
// и корректно получит отказ.
func (r *ApplicationRepository) Accept(ctx context.Context, projectID, appID uuid.UUID, decide domain.AcceptDecider) (*domain.AcceptOutcome, error) {
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

	row := tx.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM project_applications WHERE id = $1 AND project_id = $2 FOR UPDATE`,
		appID, projectID)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrApplicationNotFound
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock application row: %w", err)
	}

	outcome, err := decide(*project, *app)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE project_applications SET status = $2, updated_at = now() WHERE id = $1`,
		appID, outcome.Application.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	member := outcome.Member
	_, err = tx.ExecContext(ctx, `
		INSERT INTO team_members (id, project_id, user_id, role_in_project, is_leader, joined_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		member.ID, member.ProjectID, member.UserID, member.RoleInProject, member.IsLeader,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create team membership: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE projects SET recruitment_status = $2, updated_at = now() WHERE id = $1`,
		projectID, outcome.Project.RecruitmentStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update recruitment status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return outcome, nil
}

// Reject переводит заявку в REJECTED под блокировкой строки заявки.
func (r *ApplicationRepository) Reject(ctx context.Context, appID uuid.UUID, decide domain.RejectDecider) (*domain.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM project_applications WHERE id = $1 FOR UPDATE`, appID)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrApplicationNotFound
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock application row: %w", err)
	}

	rejected, err := decide(*app)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE project_applications SET status = $2, updated_at = now() WHERE id = $1`,
		appID, rejected.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rejected, nil
}
