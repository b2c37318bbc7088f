package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shenikar/geo_safety_system/internal/config"
	"github.com/shenikar/geo_safety_system/internal/metrics"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/risk"
	"github.com/sirupsen/logrus"
)

// RegionScorer возвращает региональный вклад в оценку риска
type RegionScorer interface {
	RegionScore(region string) float64
}

// AreaQuery - параметры запроса оценки риска.
// Без координат оцениваются последние инциденты без географического фильтра.
type AreaQuery struct {
	Latitude  *float64
	Longitude *float64
	Region    string
}

// AreaRisk - оценка риска и предупреждения, построенные по одному набору инцидентов
type AreaRisk struct {
	risk.Analysis
	Alerts       []string `json:"alerts"`
	Region       string   `json:"region,omitempty"`
	DatasetScore float64  `json:"dataset_score"`
}

// RiskService определяет контракт оценки риска района
type RiskService interface {
	AnalyzeArea(ctx context.Context, q AreaQuery) (*AreaRisk, error)
}

type riskService struct {
	repo     IncidentRepository
	model    *risk.Model
	regions  RegionScorer
	logger   *logrus.Logger
	radiusKm float64
	limit    int
}

func NewRiskService(repo IncidentRepository, model *risk.Model, regions RegionScorer, logger *logrus.Logger, cfg *config.Config) RiskService {
	return &riskService{
		repo:     repo,
		model:    model,
		regions:  regions,
		logger:   logger,
		radiusKm: cfg.RiskRadiusKm,
		limit:    cfg.RiskIncidentLimit,
	}
}

// AnalyzeArea выбирает последние инциденты района и оценивает риск
func (s *riskService) AnalyzeArea(ctx context.Context, q AreaQuery) (*AreaRisk, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "risk",
		"method":  "AnalyzeArea",
		"region":  q.Region,
	})

	var box *models.BoundingBox
	switch {
	case q.Latitude != nil && q.Longitude != nil:
		if err := models.ValidateCoordinates(*q.Latitude, *q.Longitude); err != nil {
			log.WithError(err).Warn("Invalid query point")
			return nil, fmt.Errorf("service: %w", err)
		}
		b := models.BoundingBoxAround(*q.Latitude, *q.Longitude, s.radiusKm)
		box = &b
	case q.Latitude != nil || q.Longitude != nil:
		return nil, fmt.Errorf("service: both latitude and longitude are required: %w", models.ErrValidation)
	}

	incidents, err := s.repo.ListRecent(ctx, box, s.limit)
	if err != nil {
		log.WithError(err).Error("Failed to list recent incidents")
		return nil, fmt.Errorf("service: could not load incidents: %w", err)
	}

	for _, inc := range incidents {
		if inc.Timestamp.IsZero() {
			log.WithField("incident_id", inc.ID).Warn("Incident without timestamp")
			return nil, fmt.Errorf("service: incident %s has no timestamp: %w", inc.ID, models.ErrValidation)
		}
	}
	// Модель ожидает самые свежие инциденты первыми
	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].Timestamp.After(incidents[j].Timestamp)
	})

	datasetScore := s.regions.RegionScore(q.Region)
	analysis := s.model.ComputeRisk(incidents, datasetScore)
	alerts := s.model.GenerateAlerts(incidents)

	metrics.RiskAnalysesTotal.WithLabelValues(string(analysis.Level)).Inc()
	log.WithFields(logrus.Fields{
		"incidents": len(incidents),
		"score":     analysis.Score,
		"level":     analysis.Level,
	}).Debug("Area risk computed")

	return &AreaRisk{
		Analysis:     analysis,
		Alerts:       alerts,
		Region:       q.Region,
		DatasetScore: datasetScore,
	}, nil
}
