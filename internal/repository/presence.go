package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/service"
)

type PresenceRepository struct {
	db *pgxpool.Pool
}

func NewPresenceRepository(db *pgxpool.Pool) service.PresenceRepository {
	return &PresenceRepository{db: db}
}

// Upsert обновляет координаты пользователя, флаг запроса помощи сохраняется
func (r *PresenceRepository) Upsert(ctx context.Context, rec *models.PresenceRecord) error {
	query := `
		INSERT INTO presence (user_id, latitude, longitude, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			last_updated = EXCLUDED.last_updated
		RETURNING help_requested_at;
	`
	err := r.db.QueryRow(ctx, query,
		rec.UserID,
		rec.Latitude,
		rec.Longitude,
		rec.LastUpdated,
	).Scan(&rec.HelpRequestedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert presence: %w", err)
	}
	return nil
}

// GetByUserID возвращает запись присутствия пользователя
func (r *PresenceRepository) GetByUserID(ctx context.Context, userID string) (*models.PresenceRecord, error) {
	query := `
		SELECT user_id, latitude, longitude, last_updated, help_requested_at
		FROM presence
		WHERE user_id = $1;
	`
	rec, err := scanPresence(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("presence for user %s: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get presence: %w", err)
	}
	return rec, nil
}

// ListUpdatedSince возвращает записи, обновленные позже since
func (r *PresenceRepository) ListUpdatedSince(ctx context.Context, since time.Time, excludeUserID string) ([]*models.PresenceRecord, error) {
	query := `
		SELECT user_id, latitude, longitude, last_updated, help_requested_at
		FROM presence
		WHERE last_updated > $1 AND user_id <> $2
		ORDER BY last_updated DESC, user_id;
	`
	rows, err := r.db.Query(ctx, query, since, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list presence: %w", err)
	}
	defer rows.Close()

	records := make([]*models.PresenceRecord, 0)
	for rows.Next() {
		rec, err := scanPresence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan presence row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return records, nil
}

func scanPresence(row pgx.Row) (*models.PresenceRecord, error) {
	rec := &models.PresenceRecord{}
	if err := row.Scan(
		&rec.UserID,
		&rec.Latitude,
		&rec.Longitude,
		&rec.LastUpdated,
		&rec.HelpRequestedAt,
	); err != nil {
		return nil, err
	}
	return rec, nil
}
