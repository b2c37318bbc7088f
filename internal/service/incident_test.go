package service_test

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/service"
	"github.com/shenikar/geo_safety_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newSilentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (service.IncidentService, *mocks.MockIncidentRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)

	svc := service.NewIncidentService(repoMock, newSilentLogger(), service.WithClock(func() time.Time { return testNow }))
	return svc, repoMock
}

func TestGetIncident_Success_FromCache(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{
		ID:       incidentID,
		Category: "Theft",
	}

	// Ожидания
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, incidentID).
		Return(expectedIncident, nil).
		Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_Success_FromDB(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{
		ID:       incidentID,
		Category: "Harassment",
	}

	// Ожидания
	// 1. Промах кеша
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, incidentID).
		Return(nil, nil).
		Times(1)

	// 2. Попадание в БД
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(expectedIncident, nil).
		Times(1)

	// 3. Запись в кеш
	repoMock.EXPECT().
		SetIncidentCache(ctx, expectedIncident).
		Return(nil).
		Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_CacheErrorFallsBackToDB(t *testing.T) {
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID}

	repoMock.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, fmt.Errorf("redis down")).Times(1)
	repoMock.EXPECT().GetByID(ctx, incidentID).Return(expectedIncident, nil).Times(1)
	repoMock.EXPECT().SetIncidentCache(ctx, expectedIncident).Return(fmt.Errorf("redis down")).Times(1)

	incident, err := svc.GetIncident(ctx, incidentID)

	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	dbError := fmt.Errorf("incident with id %s: %w", incidentID, models.ErrNotFound)

	// Ожидания
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, incidentID).
		Return(nil, nil).
		Times(1)
	repoMock.EXPECT().
		GetByID(ctx, incidentID).
		Return(nil, dbError).
		Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, incidentID)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorContains(t, err, "could not get incident")
}

func TestCreateIncident_Success(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentToCreate := &models.Incident{
		Latitude:  28.61,
		Longitude: 77.21,
		Category:  "  Poor Lighting ",
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			// Симулируем, что БД присвоила ID
			inc.ID = uuid.New()
			return nil
		}).Times(1)

	// Действие
	err := svc.CreateIncident(ctx, incidentToCreate)

	// Проверки
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, incidentToCreate.ID)
	assert.Equal(t, "Poor Lighting", incidentToCreate.Category)
	assert.Equal(t, testNow, incidentToCreate.Timestamp)
}

func TestCreateIncident_KeepsReportedTimestamp(t *testing.T) {
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	reported := testNow.Add(-3 * time.Hour)
	incidentToCreate := &models.Incident{Category: "Theft", Timestamp: reported}

	repoMock.EXPECT().Create(ctx, incidentToCreate).Return(nil).Times(1)

	require.NoError(t, svc.CreateIncident(ctx, incidentToCreate))
	assert.Equal(t, reported, incidentToCreate.Timestamp)
}

func TestCreateIncident_Validation(t *testing.T) {
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Репозиторий НЕ вызывается
	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	err := svc.CreateIncident(ctx, &models.Incident{Category: "   "})
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.CreateIncident(ctx, &models.Incident{Category: "Theft", Latitude: math.NaN()})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteIncident_Success(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	// Ожидания
	repoMock.EXPECT().Delete(ctx, incidentID).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateIncidentCache(ctx, incidentID).Return(nil).Times(1)

	// Действие
	err := svc.DeleteIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
}

func TestDeleteIncident_NotFound(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	repoError := fmt.Errorf("incident with id %s: %w", incidentID, models.ErrNotFound)

	// Ожидания
	repoMock.EXPECT().Delete(ctx, incidentID).Return(repoError).Times(1)
	repoMock.EXPECT().InvalidateIncidentCache(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := svc.DeleteIncident(ctx, incidentID)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListIncidents_Success(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	page, pageSize := 1, 10
	expectedIncidents := []*models.Incident{
		{ID: uuid.New(), Category: "Theft"},
		{ID: uuid.New(), Category: "Assault"},
	}

	// Ожидания
	repoMock.EXPECT().ListIncidents(ctx, page, pageSize).Return(expectedIncidents, nil).Times(1)

	// Действие
	incidents, err := svc.ListIncidents(ctx, page, pageSize)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncidents, incidents)
}

func TestListIncidents_NormalizesPaging(t *testing.T) {
	svc, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().ListIncidents(ctx, 1, 20).Return([]*models.Incident{}, nil).Times(1)

	_, err := svc.ListIncidents(ctx, 0, 1000)
	require.NoError(t, err)
}
