package service_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/risk"
	"github.com/shenikar/geo_safety_system/internal/service"
	"github.com/shenikar/geo_safety_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRiskService(t *testing.T) (service.RiskService, *mocks.MockIncidentRepository, *mocks.MockRegionScorer) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	regionsMock := mocks.NewMockRegionScorer(ctrl)
	model := risk.NewModel(
		risk.WithClock(func() time.Time { return testNow }),
		risk.WithLocation(time.UTC),
	)
	svc := service.NewRiskService(repoMock, model, regionsMock, newSilentLogger(), testConfig())
	return svc, repoMock, regionsMock
}

func ptr(v float64) *float64 { return &v }

func TestAnalyzeArea_PointAndRegion(t *testing.T) {
	// Подготовка
	svc, repoMock, regionsMock := newTestRiskService(t)
	ctx := context.Background()
	incidents := []*models.Incident{
		// Намеренно не по порядку
		{Category: "Poor Lighting", Timestamp: testNow.Add(-10 * time.Hour)},
		{Category: "Harassment", Timestamp: testNow.Add(-2 * time.Hour)},
	}
	expectedBox := models.BoundingBoxAround(28.61, 77.21, 2)

	// Ожидания
	repoMock.EXPECT().
		ListRecent(ctx, &expectedBox, 100).
		Return(incidents, nil).
		Times(1)
	regionsMock.EXPECT().RegionScore("Delhi").Return(4.57).Times(1)

	// Действие
	result, err := svc.AnalyzeArea(ctx, service.AreaQuery{
		Latitude:  ptr(28.61),
		Longitude: ptr(77.21),
		Region:    "Delhi",
	})

	// Проверки
	require.NoError(t, err)
	// 30+20 (10:00 UTC, день) + 15+20+5 (02:00 UTC, ночь) = 90
	assert.Equal(t, 76.57, result.Score)
	assert.Equal(t, risk.LevelHigh, result.Level)
	assert.Equal(t, 4.57, result.DatasetScore)
	assert.Equal(t, "Delhi", result.Region)
	assert.Equal(t, 2, result.Factors.RecentIncidents24h)
	assert.Equal(t, []string{"Risk Level is HIGH. Avoid travelling alone."}, result.Alerts)
	assert.Equal(t, "Harassment", incidents[0].Category, "incidents must be sorted newest first")
}

func TestAnalyzeArea_GlobalWhenNoPoint(t *testing.T) {
	svc, repoMock, regionsMock := newTestRiskService(t)
	ctx := context.Background()

	repoMock.EXPECT().ListRecent(ctx, nil, 100).Return([]*models.Incident{}, nil).Times(1)
	regionsMock.EXPECT().RegionScore("").Return(0.0).Times(1)

	result, err := svc.AnalyzeArea(ctx, service.AreaQuery{})

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, risk.LevelLow, result.Level)
	assert.Empty(t, result.Alerts)
}

func TestAnalyzeArea_Validation(t *testing.T) {
	svc, repoMock, _ := newTestRiskService(t)
	ctx := context.Background()

	// Репозиторий НЕ вызывается
	repoMock.EXPECT().ListRecent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.AnalyzeArea(ctx, service.AreaQuery{Latitude: ptr(1)})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.AnalyzeArea(ctx, service.AreaQuery{Latitude: ptr(math.NaN()), Longitude: ptr(1)})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAnalyzeArea_RejectsMissingTimestamp(t *testing.T) {
	svc, repoMock, _ := newTestRiskService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		ListRecent(ctx, nil, 100).
		Return([]*models.Incident{{Category: "Theft"}}, nil).
		Times(1)

	_, err := svc.AnalyzeArea(ctx, service.AreaQuery{})

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAnalyzeArea_RepositoryError(t *testing.T) {
	svc, repoMock, _ := newTestRiskService(t)
	ctx := context.Background()

	repoMock.EXPECT().ListRecent(ctx, nil, 100).Return(nil, fmt.Errorf("connection refused")).Times(1)

	_, err := svc.AnalyzeArea(ctx, service.AreaQuery{})

	require.Error(t, err)
	assert.ErrorContains(t, err, "could not load incidents")
}
