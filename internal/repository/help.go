package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/service"
)

const offerColumns = `id, requester_id, helper_id, status, created_at`

// SQLSTATE конфликтов параллельных транзакций
const (
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
)

type HelpRepository struct {
	db *pgxpool.Pool
}

func NewHelpRepository(db *pgxpool.Pool) service.HelpRepository {
	return &HelpRepository{db: db}
}

// SetHelpRequestedAt выставляет флаг запроса помощи
func (r *HelpRepository) SetHelpRequestedAt(ctx context.Context, userID string, at time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE presence SET help_requested_at = $2 WHERE user_id = $1;`, userID, at)
	if err != nil {
		return fmt.Errorf("failed to set help flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("presence for user %s: %w", userID, models.ErrNotFound)
	}
	return nil
}

// CancelHelp очищает флаг и удаляет предложения запросившего в одной транзакции
func (r *HelpRepository) CancelHelp(ctx context.Context, userID string) (int64, error) {
	var removed int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `UPDATE presence SET help_requested_at = NULL WHERE user_id = $1;`, userID)
		if err != nil {
			return fmt.Errorf("failed to clear help flag: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("presence for user %s: %w", userID, models.ErrNotFound)
		}

		cmdTag, err = tx.Exec(ctx, `DELETE FROM help_offers WHERE requester_id = $1;`, userID)
		if err != nil {
			return fmt.Errorf("failed to delete offers: %w", err)
		}
		removed = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, mapTxError(err)
	}
	return removed, nil
}

// UpsertOffer создает предложение или переоткрывает существующее для пары.
// Строка запросившего блокируется FOR SHARE, чтобы отмена запроса не прошла между проверкой и вставкой.
func (r *HelpRepository) UpsertOffer(ctx context.Context, offer *models.HelpOffer, activeSince time.Time) (*models.HelpOffer, error) {
	var saved *models.HelpOffer
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var requestedAt *time.Time
		err := tx.QueryRow(ctx,
			`SELECT help_requested_at FROM presence WHERE user_id = $1 FOR SHARE;`,
			offer.RequesterID,
		).Scan(&requestedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("requester %s: %w", offer.RequesterID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to load requester: %w", err)
		}
		if requestedAt == nil || !requestedAt.After(activeSince) {
			return fmt.Errorf("requester %s is not requesting help: %w", offer.RequesterID, models.ErrInvalidState)
		}

		var helperExists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM presence WHERE user_id = $1);`,
			offer.HelperID,
		).Scan(&helperExists)
		if err != nil {
			return fmt.Errorf("failed to load helper: %w", err)
		}
		if !helperExists {
			return fmt.Errorf("helper %s: %w", offer.HelperID, models.ErrNotFound)
		}

		query := `
			INSERT INTO help_offers (id, requester_id, helper_id, status, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (requester_id, helper_id) DO UPDATE SET
				status = EXCLUDED.status,
				created_at = EXCLUDED.created_at
			RETURNING ` + offerColumns + `;
		`
		saved, err = scanOffer(tx.QueryRow(ctx, query,
			offer.ID,
			offer.RequesterID,
			offer.HelperID,
			string(offer.Status),
			offer.CreatedAt,
		))
		if err != nil {
			return fmt.Errorf("failed to upsert offer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, mapTxError(err)
	}
	return saved, nil
}

// GetOffer возвращает предложение по id
func (r *HelpRepository) GetOffer(ctx context.Context, id uuid.UUID) (*models.HelpOffer, error) {
	offer, err := scanOffer(r.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM help_offers WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("offer %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}

// UpdateOfferStatus меняет статус предложения
func (r *HelpRepository) UpdateOfferStatus(ctx context.Context, id uuid.UUID, status models.OfferStatus, rejectOtherPending bool) (*models.HelpOffer, error) {
	var updated *models.HelpOffer
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// Строки предложений запросившего блокируются в порядке id,
		// иначе два параллельных принятия ждут друг друга
		if rejectOtherPending {
			if _, err := tx.Exec(ctx, `
				SELECT id FROM help_offers
				WHERE requester_id = (SELECT requester_id FROM help_offers WHERE id = $1)
				ORDER BY id
				FOR UPDATE;
			`, id); err != nil {
				return fmt.Errorf("failed to lock offers: %w", err)
			}
		}

		var err error
		updated, err = scanOffer(tx.QueryRow(ctx,
			`UPDATE help_offers SET status = $2 WHERE id = $1 RETURNING `+offerColumns+`;`,
			id, string(status),
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("offer %s: %w", id, models.ErrNotFound)
			}
			return fmt.Errorf("failed to update offer: %w", err)
		}

		if !rejectOtherPending {
			return nil
		}
		_, err = tx.Exec(ctx, `
			UPDATE help_offers SET status = $3
			WHERE requester_id = $1 AND id <> $2 AND status = $4;
		`, updated.RequesterID, id, string(models.OfferStatusRejected), string(models.OfferStatusPending))
		if err != nil {
			return fmt.Errorf("failed to reject competing offers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, mapTxError(err)
	}
	return updated, nil
}

// ListByRequester возвращает предложения, полученные пользователем
func (r *HelpRepository) ListByRequester(ctx context.Context, requesterID string, status models.OfferStatus) ([]*models.HelpOffer, error) {
	return r.listOffers(ctx, "requester_id", requesterID, status)
}

// ListByHelper возвращает предложения, отправленные пользователем
func (r *HelpRepository) ListByHelper(ctx context.Context, helperID string, status models.OfferStatus) ([]*models.HelpOffer, error) {
	return r.listOffers(ctx, "helper_id", helperID, status)
}

// column подставляется только из фиксированного набора выше
func (r *HelpRepository) listOffers(ctx context.Context, column, userID string, status models.OfferStatus) ([]*models.HelpOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM help_offers
		WHERE ` + column + ` = $1 AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at DESC, id;
	`
	rows, err := r.db.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	offers := make([]*models.HelpOffer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return offers, nil
}

// mapTxError переводит взаимоблокировку и сбой сериализации в models.ErrConflict
func mapTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgDeadlockDetected || pgErr.Code == pgSerializationFailure) {
		return fmt.Errorf("concurrent offer update (%s): %w", pgErr.Code, models.ErrConflict)
	}
	return err
}

func scanOffer(row pgx.Row) (*models.HelpOffer, error) {
	offer := &models.HelpOffer{}
	var status string
	if err := row.Scan(
		&offer.ID,
		&offer.RequesterID,
		&offer.HelperID,
		&status,
		&offer.CreatedAt,
	); err != nil {
		return nil, err
	}
	offer.Status = models.OfferStatus(status)
	return offer, nil
}
