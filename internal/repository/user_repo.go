package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
)

// UserRepository реализует взаимодействие с данными пользователей в PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, role, is_active, no_show_count, penalty_until, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.IsActive, &u.NoShowCount, &u.PenaltyUntil, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create вставляет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_active, no_show_count, penalty_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.IsActive, user.NoShowCount, user.PenaltyUntil,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// ExistsEmail проверяет занятость email.
func (r *UserRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM users WHERE email = $1`, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// UpdatePenaltyState применяет apply к пользователю под блокировкой строки и
// сохраняет счетчик неявок со штрафным окном. Одна транзакция на событие:
// конкурентные записи неявок сериализуются без потерянных инкрементов.
func (r *UserRepository) UpdatePenaltyState(ctx context.Context, userID uuid.UUID, apply func(domain.User) domain.User) (*domain.User, error) {
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
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrUserNotFound
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock user row: %w", err)
	}

	updated := apply(*user)

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET no_show_count = $2, penalty_until = $3, updated_at = now()
		WHERE id = $1`,
		userID, updated.NoShowCount, updated.PenaltyUntil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update penalty state: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &updated, nil
}
