package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_safety_system/internal/config"
	"github.com/shenikar/geo_safety_system/internal/metrics"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// HelpRepository определяет контракт хранилища запросов и предложений помощи
type HelpRepository interface {
	// SetHelpRequestedAt выставляет help_requested_at. ErrNotFound, если записи присутствия нет.
	SetHelpRequestedAt(ctx context.Context, userID string, at time.Time) error
	// CancelHelp в одной транзакции очищает флаг и удаляет все предложения запросившего.
	// Возвращает число удаленных предложений.
	CancelHelp(ctx context.Context, userID string) (int64, error)
	// UpsertOffer создает предложение или возвращает существующее для пары в PENDING.
	// ErrInvalidState, если help_requested_at запросившего пуст или не позже activeSince.
	UpsertOffer(ctx context.Context, offer *models.HelpOffer, activeSince time.Time) (*models.HelpOffer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*models.HelpOffer, error)
	// UpdateOfferStatus меняет статус. При rejectOtherPending остальные PENDING
	// предложения того же запросившего отклоняются в той же транзакции.
	UpdateOfferStatus(ctx context.Context, id uuid.UUID, status models.OfferStatus, rejectOtherPending bool) (*models.HelpOffer, error)
	// Пустой status означает любой статус. Порядок - от новых к старым.
	ListByRequester(ctx context.Context, requesterID string, status models.OfferStatus) ([]*models.HelpOffer, error)
	ListByHelper(ctx context.Context, helperID string, status models.OfferStatus) ([]*models.HelpOffer, error)
}

// HelpService определяет контракт управления сеансами помощи
type HelpService interface {
	RequestHelp(ctx context.Context, userID string) error
	CancelHelp(ctx context.Context, userID string) error
	IsHelpActive(ctx context.Context, userID string) (bool, error)
	OfferHelp(ctx context.Context, requesterID, helperID string) (*models.HelpOffer, error)
	RespondToOffer(ctx context.Context, offerID uuid.UUID, actingID string, decision models.Decision) (*models.HelpOffer, error)
	ListOffersForRequester(ctx context.Context, requesterID string, status models.OfferStatus) ([]*models.HelpOffer, error)
	ListOffersForHelper(ctx context.Context, helperID string, status models.OfferStatus) ([]*models.HelpOffer, error)
}

type helpService struct {
	repo             HelpRepository
	presence         PresenceRepository
	publisher        webhook.WebhookPublisher
	logger           *logrus.Logger
	helpTTL          time.Duration
	enforceOwnership bool
	exclusiveAccept  bool
	now              Clock
}

func NewHelpService(
	repo HelpRepository,
	presence PresenceRepository,
	publisher webhook.WebhookPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
	opts ...Option,
) HelpService {
	o := newOptions(opts)
	if publisher == nil {
		publisher = webhook.NopWebhookPublisher{}
	}
	return &helpService{
		repo:             repo,
		presence:         presence,
		publisher:        publisher,
		logger:           logger,
		helpTTL:          cfg.HelpRequestTTL,
		enforceOwnership: cfg.EnforceOfferOwnership,
		exclusiveAccept:  cfg.ExclusiveAccept,
		now:              o.now,
	}
}

// RequestHelp выставляет флаг запроса помощи. Повторный вызов продлевает запрос.
func (s *helpService) RequestHelp(ctx context.Context, userID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "help",
		"method":  "RequestHelp",
		"user_id": userID,
	})

	if err := validateUserID(userID); err != nil {
		return err
	}

	now := s.now()
	if err := s.repo.SetHelpRequestedAt(ctx, userID, now); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Help requested by unknown user")
		} else {
			log.WithError(err).Error("Failed to set help flag")
		}
		return fmt.Errorf("service: could not request help: %w", err)
	}

	metrics.HelpRequestsTotal.WithLabelValues("requested").Inc()
	log.Info("Help requested")
	s.publish(ctx, webhook.WebhookEvent{
		Type:      webhook.EventHelpRequested,
		UserID:    userID,
		Timestamp: now,
	})
	return nil
}

// CancelHelp завершает запрос помощи и удаляет все связанные предложения
func (s *helpService) CancelHelp(ctx context.Context, userID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "help",
		"method":  "CancelHelp",
		"user_id": userID,
	})

	if err := validateUserID(userID); err != nil {
		return err
	}

	removed, err := s.repo.CancelHelp(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Cancel requested by unknown user")
		} else {
			log.WithError(err).Error("Failed to cancel help")
		}
		return fmt.Errorf("service: could not cancel help: %w", err)
	}

	metrics.HelpRequestsTotal.WithLabelValues("cancelled").Inc()
	log.WithField("offers_removed", removed).Info("Help cancelled")
	s.publish(ctx, webhook.WebhookEvent{
		Type:      webhook.EventHelpCancelled,
		UserID:    userID,
		Timestamp: s.now(),
	})
	return nil
}

// IsHelpActive вычисляет активность запроса помощи на текущий момент
func (s *helpService) IsHelpActive(ctx context.Context, userID string) (bool, error) {
	if err := validateUserID(userID); err != nil {
		return false, err
	}
	rec, err := s.presence.GetByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("service: could not load presence: %w", err)
	}
	return rec.IsHelpRequested(s.now(), s.helpTTL), nil
}

// OfferHelp создает предложение помощи или переоткрывает существующее для той же пары
func (s *helpService) OfferHelp(ctx context.Context, requesterID, helperID string) (*models.HelpOffer, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "help",
		"method":       "OfferHelp",
		"requester_id": requesterID,
		"helper_id":    helperID,
	})

	if err := validateUserID(requesterID); err != nil {
		return nil, err
	}
	if err := validateUserID(helperID); err != nil {
		return nil, err
	}
	if requesterID == helperID {
		log.Warn("Self offer rejected")
		return nil, fmt.Errorf("service: cannot offer help to yourself: %w", models.ErrValidation)
	}

	now := s.now()
	offer := &models.HelpOffer{
		ID:          uuid.New(),
		RequesterID: requesterID,
		HelperID:    helperID,
		Status:      models.OfferStatusPending,
		CreatedAt:   now,
	}
	saved, err := s.repo.UpsertOffer(ctx, offer, now.Add(-s.helpTTL))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidState):
			log.Warn("Requester is not asking for help")
		case errors.Is(err, models.ErrNotFound):
			log.Warn("Offer references unknown user")
		default:
			log.WithError(err).Error("Failed to upsert offer")
		}
		return nil, fmt.Errorf("service: could not offer help: %w", err)
	}

	metrics.HelpOffersTotal.WithLabelValues(string(saved.Status)).Inc()
	log.WithField("offer_id", saved.ID).Info("Help offered")
	s.publish(ctx, webhook.WebhookEvent{
		Type:          webhook.EventOfferCreated,
		UserID:        saved.RequesterID,
		CounterpartID: saved.HelperID,
		OfferID:       saved.ID.String(),
		Status:        string(saved.Status),
		Timestamp:     saved.CreatedAt,
	})
	return saved, nil
}

// RespondToOffer принимает или отклоняет предложение от имени actingID
func (s *helpService) RespondToOffer(ctx context.Context, offerID uuid.UUID, actingID string, decision models.Decision) (*models.HelpOffer, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "help",
		"method":    "RespondToOffer",
		"offer_id":  offerID,
		"acting_id": actingID,
		"decision":  decision,
	})

	status, ok := decision.Status()
	if !ok {
		return nil, fmt.Errorf("service: unknown decision %q: %w", decision, models.ErrValidation)
	}

	offer, err := s.repo.GetOffer(ctx, offerID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.WithError(err).Error("Failed to load offer")
		}
		return nil, fmt.Errorf("service: could not load offer: %w", err)
	}
	if s.enforceOwnership && offer.RequesterID != actingID {
		log.Warn("Response from non-requester rejected")
		return nil, fmt.Errorf("service: only the requester may respond to offer %s: %w", offerID, models.ErrForbidden)
	}

	exclusive := s.exclusiveAccept && status == models.OfferStatusAccepted
	updated, err := s.repo.UpdateOfferStatus(ctx, offerID, status, exclusive)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.WithError(err).Error("Failed to update offer status")
		}
		return nil, fmt.Errorf("service: could not update offer: %w", err)
	}

	metrics.HelpOffersTotal.WithLabelValues(string(updated.Status)).Inc()
	log.Info("Offer answered")

	eventType := webhook.EventOfferRejected
	if updated.Status == models.OfferStatusAccepted {
		eventType = webhook.EventOfferAccepted
	}
	s.publish(ctx, webhook.WebhookEvent{
		Type:          eventType,
		UserID:        updated.RequesterID,
		CounterpartID: updated.HelperID,
		OfferID:       updated.ID.String(),
		Status:        string(updated.Status),
		Timestamp:     s.now(),
	})
	return updated, nil
}

// ListOffersForRequester возвращает полученные предложения, новые первыми
func (s *helpService) ListOffersForRequester(ctx context.Context, requesterID string, status models.OfferStatus) ([]*models.HelpOffer, error) {
	if err := s.checkListArgs(ctx, requesterID, status); err != nil {
		return nil, err
	}
	offers, err := s.repo.ListByRequester(ctx, requesterID, status)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":      "help",
			"method":       "ListOffersForRequester",
			"requester_id": requesterID,
		}).WithError(err).Error("Failed to list offers")
		return nil, fmt.Errorf("service: could not list offers: %w", err)
	}
	return offers, nil
}

// ListOffersForHelper возвращает отправленные предложения, новые первыми
func (s *helpService) ListOffersForHelper(ctx context.Context, helperID string, status models.OfferStatus) ([]*models.HelpOffer, error) {
	if err := s.checkListArgs(ctx, helperID, status); err != nil {
		return nil, err
	}
	offers, err := s.repo.ListByHelper(ctx, helperID, status)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":   "help",
			"method":    "ListOffersForHelper",
			"helper_id": helperID,
		}).WithError(err).Error("Failed to list offers")
		return nil, fmt.Errorf("service: could not list offers: %w", err)
	}
	return offers, nil
}

func (s *helpService) checkListArgs(ctx context.Context, userID string, status models.OfferStatus) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if status != "" && !status.Valid() {
		return fmt.Errorf("service: unknown offer status %q: %w", status, models.ErrValidation)
	}
	if _, err := s.presence.GetByUserID(ctx, userID); err != nil {
		return fmt.Errorf("service: could not load presence: %w", err)
	}
	return nil
}

// publish отправляет событие после фиксации изменений. Ошибка только логируется.
func (s *helpService) publish(ctx context.Context, event webhook.WebhookEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "help",
			"event":   event.Type,
			"user_id": event.UserID,
		}).WithError(err).Warn("Failed to publish webhook event")
	}
}
