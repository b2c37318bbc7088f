package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/geo_safety_system/internal/config"
	"github.com/shenikar/geo_safety_system/internal/metrics"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

// VisibilityService определяет контракт выдачи соседних пользователей с размытием координат
type VisibilityService interface {
	GetVisibleNearby(ctx context.Context, viewerID string) ([]*models.FuzzedPresence, error)
}

type visibilityService struct {
	presence    PresenceRepository
	help        HelpRepository
	logger      *logrus.Logger
	ttl         time.Duration
	helpTTL     time.Duration
	fuzzDegrees float64
	now         Clock
	rand        RandomSource
}

func NewVisibilityService(presence PresenceRepository, help HelpRepository, logger *logrus.Logger, cfg *config.Config, opts ...Option) VisibilityService {
	o := newOptions(opts)
	return &visibilityService{
		presence:    presence,
		help:        help,
		logger:      logger,
		ttl:         cfg.PresenceTTL,
		helpTTL:     cfg.HelpRequestTTL,
		fuzzDegrees: cfg.FuzzDegrees,
		now:         o.now,
		rand:        o.rand,
	}
}

// GetVisibleNearby возвращает активных пользователей кроме зрителя.
// Точные координаты видны только тем, чье предложение помощи кандидату принято.
// Размытие пересчитывается при каждом вызове.
func (s *visibilityService) GetVisibleNearby(ctx context.Context, viewerID string) ([]*models.FuzzedPresence, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "visibility",
		"method":    "GetVisibleNearby",
		"viewer_id": viewerID,
	})

	if err := validateUserID(viewerID); err != nil {
		return nil, err
	}
	if _, err := s.presence.GetByUserID(ctx, viewerID); err != nil {
		return nil, fmt.Errorf("service: could not load viewer: %w", err)
	}

	now := s.now()
	candidates, err := s.presence.ListUpdatedSince(ctx, now.Add(-s.ttl), viewerID)
	if err != nil {
		log.WithError(err).Error("Failed to list active presence")
		return nil, fmt.Errorf("service: could not list nearby users: %w", err)
	}

	accepted, err := s.help.ListByHelper(ctx, viewerID, models.OfferStatusAccepted)
	if err != nil {
		log.WithError(err).Error("Failed to list accepted offers")
		return nil, fmt.Errorf("service: could not list accepted offers: %w", err)
	}
	authorized := make(map[string]struct{}, len(accepted))
	for _, offer := range accepted {
		authorized[offer.RequesterID] = struct{}{}
	}

	result := make([]*models.FuzzedPresence, 0, len(candidates))
	for _, c := range candidates {
		_, isAuthorized := authorized[c.UserID]
		lat, lng := c.Latitude, c.Longitude
		if !isAuthorized {
			lat += s.jitter()
			lng += s.jitter()
		}
		result = append(result, &models.FuzzedPresence{
			UserID:          c.UserID,
			Latitude:        lat,
			Longitude:       lng,
			LastUpdated:     c.LastUpdated,
			IsHelpRequested: c.IsHelpRequested(now, s.helpTTL),
			IsAuthorized:    isAuthorized,
		})
	}

	metrics.NearbyQueriesTotal.Inc()
	log.WithFields(logrus.Fields{
		"visible":    len(result),
		"authorized": len(authorized),
	}).Debug("Nearby users resolved")
	return result, nil
}

// maxJitterDraws ограничивает повторные выборки нулевого смещения
const maxJitterDraws = 8

// jitter возвращает ненулевое смещение в пределах ±fuzzDegrees/2.
// Нулевое смещение раскрыло бы точную координату.
func (s *visibilityService) jitter() float64 {
	for i := 0; i < maxJitterDraws; i++ {
		if offset := (s.rand.Float64() - 0.5) * s.fuzzDegrees; offset != 0 {
			return offset
		}
	}
	return s.fuzzDegrees / 4
}
