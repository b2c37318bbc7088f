package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/geo_safety_system/internal/config"
	"github.com/shenikar/geo_safety_system/internal/metrics"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

// PresenceRepository определяет контракт хранилища местоположений
type PresenceRepository interface {
	// Upsert обновляет координаты и last_updated, не трогая help_requested_at
	Upsert(ctx context.Context, rec *models.PresenceRecord) error
	GetByUserID(ctx context.Context, userID string) (*models.PresenceRecord, error)
	// ListUpdatedSince возвращает записи с last_updated строго позже since,
	// свежие первыми. Пустой excludeUserID ничего не исключает.
	ListUpdatedSince(ctx context.Context, since time.Time, excludeUserID string) ([]*models.PresenceRecord, error)
}

// PresenceService определяет контракт учета присутствия пользователей
type PresenceService interface {
	Heartbeat(ctx context.Context, userID string, lat, lng float64) (*models.PresenceRecord, error)
	ListActive(ctx context.Context, excludeUserID string) ([]*models.PresenceRecord, error)
	GetStats(ctx context.Context) (*models.PresenceStats, error)
}

type presenceService struct {
	repo    PresenceRepository
	logger  *logrus.Logger
	ttl     time.Duration
	helpTTL time.Duration
	now     Clock
}

func NewPresenceService(repo PresenceRepository, logger *logrus.Logger, cfg *config.Config, opts ...Option) PresenceService {
	o := newOptions(opts)
	return &presenceService{
		repo:    repo,
		logger:  logger,
		ttl:     cfg.PresenceTTL,
		helpTTL: cfg.HelpRequestTTL,
		now:     o.now,
	}
}

// Heartbeat сохраняет последнее местоположение пользователя
func (s *presenceService) Heartbeat(ctx context.Context, userID string, lat, lng float64) (*models.PresenceRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "presence",
		"method":  "Heartbeat",
		"user_id": userID,
	})

	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := models.ValidateCoordinates(lat, lng); err != nil {
		log.WithError(err).Warn("Invalid heartbeat coordinates")
		return nil, fmt.Errorf("service: %w", err)
	}

	rec := &models.PresenceRecord{
		UserID:      userID,
		Latitude:    lat,
		Longitude:   lng,
		LastUpdated: s.now(),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		log.WithError(err).Error("Failed to upsert presence")
		return nil, fmt.Errorf("service: could not save presence: %w", err)
	}

	metrics.HeartbeatsTotal.Inc()
	log.Debug("Presence updated")
	return rec, nil
}

// ListActive возвращает пользователей, приславших координаты за окно живости
func (s *presenceService) ListActive(ctx context.Context, excludeUserID string) ([]*models.PresenceRecord, error) {
	records, err := s.repo.ListUpdatedSince(ctx, s.now().Add(-s.ttl), excludeUserID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "presence",
			"method":  "ListActive",
		}).WithError(err).Error("Failed to list active presence")
		return nil, fmt.Errorf("service: could not list active users: %w", err)
	}
	return records, nil
}

// GetStats считает активных пользователей и активные запросы помощи
func (s *presenceService) GetStats(ctx context.Context) (*models.PresenceStats, error) {
	records, err := s.ListActive(ctx, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &models.PresenceStats{ActiveUsers: len(records)}
	for _, rec := range records {
		if rec.IsHelpRequested(now, s.helpTTL) {
			stats.ActiveHelpRequests++
		}
	}

	metrics.ActiveUsers.Set(float64(stats.ActiveUsers))
	return stats, nil
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("service: user id is required: %w", models.ErrValidation)
	}
	return nil
}
