//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/service"
	"github.com/shenikar/geo_safety_system/pkg/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Запуск: POSTGRES_URL=postgres://... go test -tags integration ./internal/repository/...
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL not set")
	}

	require.NoError(t, postgres.RunMigrations(url, "file://../../migrations"))

	ctx := context.Background()
	pool, err := postgres.NewPostgresDB(ctx, url, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE help_offers, presence, incidents;`)
	require.NoError(t, err)
	return pool
}

func seedPostgresPresence(t *testing.T, repo service.PresenceRepository, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, repo.Upsert(context.Background(), &models.PresenceRecord{
			UserID:      id,
			Latitude:    28.6,
			Longitude:   77.2,
			LastUpdated: time.Now().UTC(),
		}))
	}
}

func TestPostgres_HelpLifecycle(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	presence := NewPresenceRepository(pool)
	help := NewHelpRepository(pool)

	seedPostgresPresence(t, presence, "r", "h1", "h2")
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := help.UpsertOffer(ctx, newOffer("r", "h1", now), now.Add(-15*time.Minute))
	assert.ErrorIs(t, err, models.ErrInvalidState)

	require.NoError(t, help.SetHelpRequestedAt(ctx, "r", now))

	first, err := help.UpsertOffer(ctx, newOffer("r", "h1", now), now.Add(-15*time.Minute))
	require.NoError(t, err)
	again, err := help.UpsertOffer(ctx, newOffer("r", "h1", now.Add(time.Second)), now.Add(-15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.CreatedAt.After(first.CreatedAt))

	second, err := help.UpsertOffer(ctx, newOffer("r", "h2", now.Add(2*time.Second)), now.Add(-15*time.Minute))
	require.NoError(t, err)

	accepted, err := help.UpdateOfferStatus(ctx, first.ID, models.OfferStatusAccepted, true)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, accepted.Status)

	other, err := help.GetOffer(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, other.Status)

	byHelper, err := help.ListByHelper(ctx, "h1", models.OfferStatusAccepted)
	require.NoError(t, err)
	require.Len(t, byHelper, 1)

	removed, err := help.CancelHelp(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	left, err := help.ListByRequester(ctx, "r", "")
	require.NoError(t, err)
	assert.Empty(t, left)

	rec, err := presence.GetByUserID(ctx, "r")
	require.NoError(t, err)
	assert.Nil(t, rec.HelpRequestedAt)

	_, err = help.GetOffer(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostgres_ConcurrentExclusiveAccept(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	presence := NewPresenceRepository(pool)
	help := NewHelpRepository(pool)

	helpers := []string{"h1", "h2", "h3", "h4"}
	seedPostgresPresence(t, presence, append([]string{"r"}, helpers...)...)
	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, help.SetHelpRequestedAt(ctx, "r", now))

	for round := 0; round < 20; round++ {
		ids := make([]uuid.UUID, 0, len(helpers))
		for i, h := range helpers {
			offer, err := help.UpsertOffer(ctx, newOffer("r", h, now.Add(time.Duration(i)*time.Millisecond)), now.Add(-15*time.Minute))
			require.NoError(t, err)
			ids = append(ids, offer.ID)
		}

		var wg sync.WaitGroup
		errs := make(chan error, len(ids))
		for _, id := range ids {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				if _, err := help.UpdateOfferStatus(ctx, id, models.OfferStatusAccepted, true); err != nil {
					errs <- err
				}
			}(id)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.True(t, errors.Is(err, models.ErrConflict), "round %d: unexpected error %v", round, err)
		}
	}
}

func TestPostgres_PresenceUpsertKeepsHelpFlag(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	presence := NewPresenceRepository(pool)
	help := NewHelpRepository(pool)

	seedPostgresPresence(t, presence, "u")
	require.NoError(t, help.SetHelpRequestedAt(ctx, "u", time.Now().UTC()))

	rec := &models.PresenceRecord{UserID: "u", Latitude: 1, Longitude: 2, LastUpdated: time.Now().UTC()}
	require.NoError(t, presence.Upsert(ctx, rec))
	assert.NotNil(t, rec.HelpRequestedAt)

	active, err := presence.ListUpdatedSince(ctx, time.Now().Add(-time.Minute), "")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	none, err := presence.ListUpdatedSince(ctx, time.Now().Add(-time.Minute), "u")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostgres_Incidents(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo := NewIncidentRepository(pool, nil, time.Minute)

	inc := &models.Incident{
		Latitude:  28.61,
		Longitude: 77.21,
		Category:  "Harassment",
		Timestamp: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, inc))
	assert.NotEqual(t, uuid.Nil, inc.ID)

	got, err := repo.GetByID(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harassment", got.Category)

	box := models.BoundingBoxAround(28.61, 77.21, 2)
	recent, err := repo.ListRecent(ctx, &box, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	farBox := models.BoundingBoxAround(19.07, 72.87, 2)
	recent, err = repo.ListRecent(ctx, &farBox, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	cached, err := repo.GetIncidentFromCache(ctx, inc.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)

	require.NoError(t, repo.Delete(ctx, inc.ID))
	assert.ErrorIs(t, repo.Delete(ctx, inc.ID), models.ErrNotFound)
}
