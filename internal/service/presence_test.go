package service_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/repository"
	"github.com/shenikar/geo_safety_system/internal/service"
	"github.com/shenikar/geo_safety_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHeartbeat_UpsertsRecord(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := service.NewPresenceService(store, newSilentLogger(), testConfig(), service.WithClock(clock.Now))

	rec, err := svc.Heartbeat(ctx, "alice", 28.61, 77.21)
	require.NoError(t, err)
	assert.Equal(t, testNow, rec.LastUpdated)

	clock.Advance(time.Minute)
	rec, err = svc.Heartbeat(ctx, "alice", 28.62, 77.22)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Minute), rec.LastUpdated)

	stored, err := store.GetByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 28.62, stored.Latitude)
	assert.Equal(t, 77.22, stored.Longitude)
}

func TestHeartbeat_RejectsNonFiniteCoordinates(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockPresenceRepository(ctrl)
	svc := service.NewPresenceService(repoMock, newSilentLogger(), testConfig())

	// Репозиторий НЕ вызывается
	repoMock.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Heartbeat(ctx, "alice", math.NaN(), 0)
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = svc.Heartbeat(ctx, "alice", 0, math.Inf(1))
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = svc.Heartbeat(ctx, "", 0, 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestHeartbeat_RepositoryError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockPresenceRepository(ctrl)
	svc := service.NewPresenceService(repoMock, newSilentLogger(), testConfig())

	repoMock.EXPECT().Upsert(ctx, gomock.Any()).Return(fmt.Errorf("connection reset")).Times(1)

	_, err := svc.Heartbeat(ctx, "alice", 1, 2)
	require.Error(t, err)
	assert.ErrorContains(t, err, "could not save presence")
}

func TestListActive_LivenessBoundary(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	svc := service.NewPresenceService(store, newSilentLogger(), testConfig(), service.WithClock(clock.Now))

	require.NoError(t, store.Upsert(ctx, &models.PresenceRecord{UserID: "fresh", LastUpdated: testNow.Add(-299 * time.Second)}))
	require.NoError(t, store.Upsert(ctx, &models.PresenceRecord{UserID: "stale", LastUpdated: testNow.Add(-301 * time.Second)}))
	require.NoError(t, store.Upsert(ctx, &models.PresenceRecord{UserID: "me", LastUpdated: testNow}))

	active, err := svc.ListActive(ctx, "me")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "fresh", active[0].UserID)

	all, err := svc.ListActive(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Устаревшая запись не удаляется, она просто не видна
	_, err = store.GetByUserID(ctx, "stale")
	assert.NoError(t, err)
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	cfg := testConfig()
	presence := service.NewPresenceService(store, newSilentLogger(), cfg, service.WithClock(clock.Now))
	help := service.NewHelpService(store, store, nil, newSilentLogger(), cfg, service.WithClock(clock.Now))

	for _, id := range []string{"a", "b", "c"} {
		_, err := presence.Heartbeat(ctx, id, 1, 1)
		require.NoError(t, err)
	}
	require.NoError(t, help.RequestHelp(ctx, "a"))
	require.NoError(t, store.Upsert(ctx, &models.PresenceRecord{UserID: "gone", LastUpdated: testNow.Add(-time.Hour)}))

	stats, err := presence.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.ActiveUsers)
	assert.Equal(t, 1, stats.ActiveHelpRequests)
}
