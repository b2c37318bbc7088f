// Package risk implements the area risk model: incident reports and a static
// regional prior are blended into a bounded score and a level.
//
// The model is a pure function of its input and the injected clock, so it is
// safe to share one Model between goroutines.
package risk

import "strings"

// Level - класс риска
type Level string

const (
	LevelLow      Level = "LOW"
	LevelModerate Level = "MODERATE"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

// Ключи распределения по времени суток
const (
	BucketDay   = "day"
	BucketNight = "night"
)

const (
	maxIncidentScore = 100
	maxScore         = 100
	maxDatasetScore  = 20
	incidentShare    = 0.8

	recentBonus   = 20
	weekBonus     = 10
	nightBonus    = 5
	nightFromHour = 18
	nightToHour   = 6

	defaultCategoryWeight = 10
)

// Analysis - результат оценки риска. Не сохраняется, пересчитывается на каждый запрос.
type Analysis struct {
	Score   float64 `json:"score"`
	Level   Level   `json:"level"`
	Factors Factors `json:"factors"`
}

// Factors - вклад отдельных сигналов в оценку
type Factors struct {
	TotalIncidents     int            `json:"total_incidents"`
	RecentIncidents24h int            `json:"recent_incidents_24h"`
	TimeDistribution   map[string]int `json:"time_distribution"`
}

// CategoryWeight связывает подстроку категории с ее весом
type CategoryWeight struct {
	Keyword string
	Weight  float64
}

// DefaultCategoryWeights - таблица весов категорий.
// Порядок значим: выигрывает первое совпадение.
var DefaultCategoryWeights = []CategoryWeight{
	{Keyword: "rape", Weight: 50},
	{Keyword: "assault", Weight: 40},
	{Keyword: "harassment", Weight: 30},
	{Keyword: "stalking", Weight: 25},
	{Keyword: "robbery", Weight: 20},
	{Keyword: "eve teasing", Weight: 20},
	{Keyword: "domestic violence", Weight: 35},
	{Keyword: "theft", Weight: 15},
	{Keyword: "poor lighting", Weight: 15},
	{Keyword: "unsafe crowding", Weight: 15},
}

// Classify переводит итоговый балл в уровень
func Classify(score float64) Level {
	switch {
	case score > 80:
		return LevelCritical
	case score > 50:
		return LevelHigh
	case score > 20:
		return LevelModerate
	default:
		return LevelLow
	}
}

func categoryWeight(weights []CategoryWeight, category string, fallback float64) float64 {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return fallback
	}
	for _, w := range weights {
		if strings.Contains(c, w.Keyword) {
			return w.Weight
		}
	}
	return fallback
}
