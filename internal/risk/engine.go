package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/geo_safety_system/internal/models"
)

// Option настраивает Model
type Option func(*Model)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLocation задает часовой пояс, в котором определяется час инцидента
func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.location = loc
		}
	}
}

// WithCategoryWeights заменяет таблицу весов категорий
func WithCategoryWeights(weights []CategoryWeight, defaultWeight float64) Option {
	return func(m *Model) {
		if len(weights) > 0 {
			m.weights = append([]CategoryWeight(nil), weights...)
		}
		if defaultWeight > 0 {
			m.defaultWeight = defaultWeight
		}
	}
}

// Model вычисляет оценку риска. После создания не изменяется.
type Model struct {
	now           func() time.Time
	location      *time.Location
	weights       []CategoryWeight
	defaultWeight float64
}

// NewModel создает модель с таблицей весов по умолчанию
func NewModel(opts ...Option) *Model {
	m := &Model{
		now:           time.Now,
		location:      time.Local,
		weights:       DefaultCategoryWeights,
		defaultWeight: defaultCategoryWeight,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ComputeRisk оценивает набор инцидентов (самые свежие первыми) с учетом
// регионального вклада datasetScore из диапазона [0, 20].
// Временные метки должны быть проверены вызывающей стороной.
func (m *Model) ComputeRisk(incidents []*models.Incident, datasetScore float64) Analysis {
	datasetScore = clamp(datasetScore, 0, maxDatasetScore)

	factors := Factors{
		TotalIncidents:   len(incidents),
		TimeDistribution: map[string]int{BucketDay: 0, BucketNight: 0},
	}
	if len(incidents) == 0 && datasetScore == 0 {
		return Analysis{Score: 0, Level: LevelLow, Factors: factors}
	}

	now := m.now()
	var incidentScore float64
	for _, inc := range incidents {
		incidentScore += categoryWeight(m.weights, inc.Category, m.defaultWeight)

		age := now.Sub(inc.Timestamp)
		switch {
		case age < 24*time.Hour:
			incidentScore += recentBonus
			factors.RecentIncidents24h++
		case age < 7*24*time.Hour:
			incidentScore += weekBonus
		}

		if isNight(inc.Timestamp.In(m.location).Hour()) {
			incidentScore += nightBonus
			factors.TimeDistribution[BucketNight]++
		} else {
			factors.TimeDistribution[BucketDay]++
		}
	}

	normalized := math.Min(incidentScore, maxIncidentScore)
	score := clamp(round2(normalized*incidentShare+datasetScore), 0, maxScore)

	return Analysis{
		Score:   score,
		Level:   Classify(score),
		Factors: factors,
	}
}

// GenerateAlerts строит предупреждения по тому же набору инцидентов.
// Уровень определяется только по инцидентам, без регионального вклада.
func (m *Model) GenerateAlerts(incidents []*models.Incident) []string {
	a := m.ComputeRisk(incidents, 0)
	alerts := make([]string, 0, 3)

	if a.Factors.RecentIncidents24h > 2 {
		alerts = append(alerts, fmt.Sprintf("High activity detected: %d incidents in the last 24h.", a.Factors.RecentIncidents24h))
	}
	if a.Factors.TimeDistribution[BucketNight] > a.Factors.TimeDistribution[BucketDay] {
		alerts = append(alerts, "Caution: Majority of incidents reported during evening/night hours.")
	}
	if a.Level == LevelHigh || a.Level == LevelCritical {
		alerts = append(alerts, fmt.Sprintf("Risk Level is %s. Avoid travelling alone.", a.Level))
	}
	return alerts
}

func isNight(hour int) bool {
	return hour >= nightFromHour || hour < nightToHour
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
