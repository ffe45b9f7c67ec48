package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
)

// UsageRepository реализует взаимодействие со счетчиками использований
// AI-функций в PostgreSQL.
type UsageRepository struct {
	db *sql.DB
}

// NewUsageRepository создает новый экземпляр UsageRepository.
func NewUsageRepository(db *sql.DB) domain.UsageRepository {
	return &UsageRepository{db: db}
}

// Get возвращает счетчик; отсутствие строки — нулевой счетчик (ленивое
// создание происходит при первом потреблении).
func (r *UsageRepository) Get(ctx context.Context, userID uuid.UUID, feature domain.FeatureType) (*domain.UsageCounter, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, feature_type, count, last_used_at
		FROM ai_feature_usage WHERE user_id = $1 AND feature_type = $2`,
		userID, feature)

	var c domain.UsageCounter
	err := row.Scan(&c.ID, &c.UserID, &c.Feature, &c.Count, &c.LastUsedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.UsageCounter{UserID: userID, Feature: feature}, nil
		}
		return nil, fmt.Errorf("failed to get usage counter: %w", err)
	}
	return &c, nil
}

// TryConsume выполняет атомарный compare-and-increment одним запросом:
// счетчик растет только пока count < limit, две конкурентные попытки на
// последний слот не пройдут обе. limit <= 0 — безлимит, инкремент без
// условия. Отклоненная попытка счетчик не меняет.
func (r *UsageRepository) TryConsume(ctx context.Context, userID uuid.UUID, feature domain.FeatureType, limit int) (bool, *domain.UsageCounter, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO ai_feature_usage (user_id, feature_type, count, last_used_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (user_id, feature_type) DO UPDATE
		SET count = ai_feature_usage.count + 1, last_used_at = now()
		WHERE $3 <= 0 OR ai_feature_usage.count < $3
		RETURNING id, user_id, feature_type, count, last_used_at`,
		userID, feature, limit)

	var c domain.UsageCounter
	err := row.Scan(&c.ID, &c.UserID, &c.Feature, &c.Count, &c.LastUsedAt)
	if err == nil {
		return true, &c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, nil, fmt.Errorf("failed to consume usage: %w", err)
	}

	// Условный UPDATE не прошел: лимит исчерпан, возвращаем текущий счетчик
	current, err := r.Get(ctx, userID, feature)
	if err != nil {
		return false, nil, err
	}
	return false, current, nil
}
