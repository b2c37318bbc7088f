package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_safety_system/internal/config"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/repository"
	"github.com/shenikar/geo_safety_system/internal/service"
	"github.com/shenikar/geo_safety_system/internal/service/mocks"
	"github.com/shenikar/geo_safety_system/internal/webhook"
	webhook_mocks "github.com/shenikar/geo_safety_system/internal/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: testNow} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.Config {
	return &config.Config{
		PresenceTTL:           5 * time.Minute,
		HelpRequestTTL:        15 * time.Minute,
		FuzzDegrees:           0.002,
		EnforceOfferOwnership: true,
		RiskRadiusKm:          2,
		RiskIncidentLimit:     100,
	}
}

type helpFixture struct {
	store    *repository.MemoryStore
	clock    *fakeClock
	presence service.PresenceService
	help     service.HelpService
}

func newHelpFixture(t *testing.T, cfg *config.Config, publisher webhook.WebhookPublisher) *helpFixture {
	t.Helper()
	clock := newFakeClock()
	store := repository.NewMemoryStore(repository.WithMemoryClock(clock.Now))
	logger := newSilentLogger()
	return &helpFixture{
		store:    store,
		clock:    clock,
		presence: service.NewPresenceService(store, logger, cfg, service.WithClock(clock.Now)),
		help:     service.NewHelpService(store, store, publisher, logger, cfg, service.WithClock(clock.Now)),
	}
}

func (f *helpFixture) heartbeat(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := f.presence.Heartbeat(context.Background(), id, 28.61, 77.21)
		require.NoError(t, err)
	}
}

func TestRequestHelp_UnknownUser(t *testing.T) {
	f := newHelpFixture(t, testConfig(), nil)

	err := f.help.RequestHelp(context.Background(), "ghost")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRequestHelp_EmptyUser(t *testing.T) {
	f := newHelpFixture(t, testConfig(), nil)

	err := f.help.RequestHelp(context.Background(), "  ")

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRequestHelp_IdempotentAndExpiresLazily(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	f.heartbeat(t, "alice")

	require.NoError(t, f.help.RequestHelp(ctx, "alice"))
	f.clock.Advance(10 * time.Minute)
	require.NoError(t, f.help.RequestHelp(ctx, "alice"))

	// Повторный запрос продлевает окно
	f.clock.Advance(14*time.Minute + 59*time.Second)
	active, err := f.help.IsHelpActive(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, active)

	f.clock.Advance(2 * time.Second)
	active, err = f.help.IsHelpActive(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, active)

	// Флаг в хранилище не очищается, истечение только вычисляется
	rec, err := f.store.GetByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, rec.HelpRequestedAt)
}

func TestIsHelpActive_UnknownUser(t *testing.T) {
	f := newHelpFixture(t, testConfig(), nil)

	_, err := f.help.IsHelpActive(context.Background(), "ghost")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCancelHelp_CascadeInvariant(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	f.heartbeat(t, "r", "h1", "h2")
	require.NoError(t, f.help.RequestHelp(ctx, "r"))

	o1, err := f.help.OfferHelp(ctx, "r", "h1")
	require.NoError(t, err)
	_, err = f.help.OfferHelp(ctx, "r", "h2")
	require.NoError(t, err)
	_, err = f.help.RespondToOffer(ctx, o1.ID, "r", models.DecisionAccept)
	require.NoError(t, err)

	require.NoError(t, f.help.CancelHelp(ctx, "r"))

	for _, status := range []models.OfferStatus{"", models.OfferStatusPending, models.OfferStatusAccepted, models.OfferStatusRejected} {
		offers, err := f.help.ListOffersForRequester(ctx, "r", status)
		require.NoError(t, err)
		assert.Empty(t, offers, "status %q", status)
	}
	active, err := f.help.IsHelpActive(ctx, "r")
	require.NoError(t, err)
	assert.False(t, active)

	// Отмененный запрос больше не принимает предложения
	_, err = f.help.OfferHelp(ctx, "r", "h1")
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestCancelHelp_ConcurrentOffersLeaveNoStaleOffers(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	helpers := []string{"h1", "h2", "h3"}
	f.heartbeat(t, append([]string{"r"}, helpers...)...)

	for round := 0; round < 200; round++ {
		require.NoError(t, f.help.RequestHelp(ctx, "r"))

		var wg sync.WaitGroup
		errs := make(chan error, len(helpers)+1)
		start := make(chan struct{})
		for _, h := range helpers {
			wg.Add(1)
			go func(helperID string) {
				defer wg.Done()
				<-start
				if _, err := f.help.OfferHelp(ctx, "r", helperID); err != nil && !errors.Is(err, models.ErrInvalidState) {
					errs <- err
				}
			}(h)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if err := f.help.CancelHelp(ctx, "r"); err != nil {
				errs <- err
			}
		}()
		close(start)
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err, "round %d", round)
		}

		active, err := f.help.IsHelpActive(ctx, "r")
		require.NoError(t, err)
		require.False(t, active, "round %d", round)
		offers, err := f.help.ListOffersForRequester(ctx, "r", "")
		require.NoError(t, err)
		require.Empty(t, offers, "round %d: offers survived cancellation", round)
	}
}

func TestCancelHelp_UnknownUser(t *testing.T) {
	f := newHelpFixture(t, testConfig(), nil)

	err := f.help.CancelHelp(context.Background(), "ghost")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOfferHelp_Idempotence(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	f.heartbeat(t, "r", "h")
	require.NoError(t, f.help.RequestHelp(ctx, "r"))

	first, err := f.help.OfferHelp(ctx, "r", "h")
	require.NoError(t, err)
	f.clock.Advance(30 * time.Second)
	second, err := f.help.OfferHelp(ctx, "r", "h")
	require.NoError(t, err)

	offers, err := f.help.ListOffersForRequester(ctx, "r", "")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.OfferStatusPending, offers[0].Status)
	assert.Equal(t, testNow.Add(30*time.Second), offers[0].CreatedAt)
}

func TestOfferHelp_RearmsRejectedOffer(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	f.heartbeat(t, "r", "h")
	require.NoError(t, f.help.RequestHelp(ctx, "r"))

	offer, err := f.help.OfferHelp(ctx, "r", "h")
	require.NoError(t, err)
	_, err = f.help.RespondToOffer(ctx, offer.ID, "r", models.DecisionReject)
	require.NoError(t, err)

	again, err := f.help.OfferHelp(ctx, "r", "h")
	require.NoError(t, err)
	assert.Equal(t, offer.ID, again.ID)
	assert.Equal(t, models.OfferStatusPending, again.Status)
}

func TestOfferHelp_InvalidState(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	f.heartbeat(t, "r", "h")

	_, err := f.help.OfferHelp(ctx, "r", "h")
	assert.ErrorIs(t, err, models.ErrInvalidState)

	require.NoError(t, f.help.RequestHelp(ctx, "r"))
	f.clock.Advance(15 * time.Minute)
	_, err = f.help.OfferHelp(ctx, "r", "h")
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestOfferHelp_Validation(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	f.heartbeat(t, "r")
	require.NoError(t, f.help.RequestHelp(ctx, "r"))

	_, err := f.help.OfferHelp(ctx, "r", "r")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.help.OfferHelp(ctx, "r", "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.help.OfferHelp(ctx, "ghost", "r")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRespondToOffer_Ownership(t *testing.T) {
	ctx := context.Background()

	t.Run("enforced", func(t *testing.T) {
		f := newHelpFixture(t, testConfig(), nil)
		f.heartbeat(t, "r", "h", "mallory")
		require.NoError(t, f.help.RequestHelp(ctx, "r"))
		offer, err := f.help.OfferHelp(ctx, "r", "h")
		require.NoError(t, err)

		_, err = f.help.RespondToOffer(ctx, offer.ID, "mallory", models.DecisionAccept)
		assert.ErrorIs(t, err, models.ErrForbidden)
		_, err = f.help.RespondToOffer(ctx, offer.ID, "h", models.DecisionAccept)
		assert.ErrorIs(t, err, models.ErrForbidden)

		updated, err := f.help.RespondToOffer(ctx, offer.ID, "r", models.DecisionAccept)
		require.NoError(t, err)
		assert.Equal(t, models.OfferStatusAccepted, updated.Status)
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.EnforceOfferOwnership = false
		f := newHelpFixture(t, cfg, nil)
		f.heartbeat(t, "r", "h")
		require.NoError(t, f.help.RequestHelp(ctx, "r"))
		offer, err := f.help.OfferHelp(ctx, "r", "h")
		require.NoError(t, err)

		updated, err := f.help.RespondToOffer(ctx, offer.ID, "anyone", models.DecisionReject)
		require.NoError(t, err)
		assert.Equal(t, models.OfferStatusRejected, updated.Status)
	})
}

func TestRespondToOffer_Errors(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)

	_, err := f.help.RespondToOffer(ctx, uuid.New(), "r", models.Decision("MAYBE"))
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.help.RespondToOffer(ctx, uuid.New(), "r", models.DecisionAccept)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRespondToOffer_MultiAcceptByDefault(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	f.heartbeat(t, "r", "h1", "h2")
	require.NoError(t, f.help.RequestHelp(ctx, "r"))
	o1, err := f.help.OfferHelp(ctx, "r", "h1")
	require.NoError(t, err)
	o2, err := f.help.OfferHelp(ctx, "r", "h2")
	require.NoError(t, err)

	_, err = f.help.RespondToOffer(ctx, o1.ID, "r", models.DecisionAccept)
	require.NoError(t, err)
	_, err = f.help.RespondToOffer(ctx, o2.ID, "r", models.DecisionAccept)
	require.NoError(t, err)

	accepted, err := f.help.ListOffersForRequester(ctx, "r", models.OfferStatusAccepted)
	require.NoError(t, err)
	assert.Len(t, accepted, 2)
}

func TestRespondToOffer_ExclusiveAccept(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.ExclusiveAccept = true
	f := newHelpFixture(t, cfg, nil)
	f.heartbeat(t, "r", "h1", "h2")
	require.NoError(t, f.help.RequestHelp(ctx, "r"))
	o1, err := f.help.OfferHelp(ctx, "r", "h1")
	require.NoError(t, err)
	o2, err := f.help.OfferHelp(ctx, "r", "h2")
	require.NoError(t, err)

	_, err = f.help.RespondToOffer(ctx, o1.ID, "r", models.DecisionAccept)
	require.NoError(t, err)

	sent, err := f.help.ListOffersForHelper(ctx, "h2", "")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, o2.ID, sent[0].ID)
	assert.Equal(t, models.OfferStatusRejected, sent[0].Status)
}

func TestListOffers_OrderAndFilters(t *testing.T) {
	ctx := context.Background()
	f := newHelpFixture(t, testConfig(), nil)
	f.heartbeat(t, "r", "h1", "h2")
	require.NoError(t, f.help.RequestHelp(ctx, "r"))
	o1, err := f.help.OfferHelp(ctx, "r", "h1")
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	o2, err := f.help.OfferHelp(ctx, "r", "h2")
	require.NoError(t, err)

	received, err := f.help.ListOffersForRequester(ctx, "r", "")
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, o2.ID, received[0].ID)
	assert.Equal(t, o1.ID, received[1].ID)

	sent, err := f.help.ListOffersForHelper(ctx, "h1", models.OfferStatusPending)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, o1.ID, sent[0].ID)

	_, err = f.help.ListOffersForRequester(ctx, "r", models.OfferStatus("DONE"))
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.help.ListOffersForHelper(ctx, "ghost", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestHelpService_PublishesLifecycleEvents(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	publisher := webhook_mocks.NewMockWebhookPublisher(ctrl)
	f := newHelpFixture(t, testConfig(), publisher)
	f.heartbeat(t, "r", "h")

	var events []webhook.EventType
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event webhook.WebhookEvent) {
			events = append(events, event.Type)
			assert.Equal(t, "r", event.UserID)
		}).
		Return(nil).
		Times(4)

	require.NoError(t, f.help.RequestHelp(ctx, "r"))
	offer, err := f.help.OfferHelp(ctx, "r", "h")
	require.NoError(t, err)
	_, err = f.help.RespondToOffer(ctx, offer.ID, "r", models.DecisionAccept)
	require.NoError(t, err)
	require.NoError(t, f.help.CancelHelp(ctx, "r"))

	assert.Equal(t, []webhook.EventType{
		webhook.EventHelpRequested,
		webhook.EventOfferCreated,
		webhook.EventOfferAccepted,
		webhook.EventHelpCancelled,
	}, events)
}

func TestHelpService_PublishFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	publisher := webhook_mocks.NewMockWebhookPublisher(ctrl)
	f := newHelpFixture(t, testConfig(), publisher)
	f.heartbeat(t, "r")

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(fmt.Errorf("redis down")).Times(1)

	require.NoError(t, f.help.RequestHelp(ctx, "r"))
	active, err := f.help.IsHelpActive(ctx, "r")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestHelpService_FailedMutationPublishesNothing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockHelpRepository(ctrl)
	presenceMock := mocks.NewMockPresenceRepository(ctrl)
	publisher := webhook_mocks.NewMockWebhookPublisher(ctrl)
	svc := service.NewHelpService(repoMock, presenceMock, publisher, newSilentLogger(), testConfig(),
		service.WithClock(func() time.Time { return testNow }))

	// Ожидания
	repoMock.EXPECT().CancelHelp(ctx, "r").Return(int64(0), fmt.Errorf("tx aborted")).Times(1)
	// Публикатор вебхуков НЕ вызывается
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	err := svc.CancelHelp(ctx, "r")

	require.Error(t, err)
	assert.ErrorContains(t, err, "could not cancel help")
}

func TestOfferHelp_PassesActivityWindowToRepository(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockHelpRepository(ctrl)
	presenceMock := mocks.NewMockPresenceRepository(ctrl)
	svc := service.NewHelpService(repoMock, presenceMock, nil, newSilentLogger(), testConfig(),
		service.WithClock(func() time.Time { return testNow }))

	repoMock.EXPECT().
		UpsertOffer(ctx, gomock.Any(), testNow.Add(-15*time.Minute)).
		DoAndReturn(func(_ context.Context, offer *models.HelpOffer, _ time.Time) (*models.HelpOffer, error) {
			assert.Equal(t, models.OfferStatusPending, offer.Status)
			assert.Equal(t, testNow, offer.CreatedAt)
			assert.NotEqual(t, uuid.Nil, offer.ID)
			return offer, nil
		}).
		Times(1)

	offer, err := svc.OfferHelp(ctx, "r", "h")
	require.NoError(t, err)
	assert.Equal(t, "h", offer.HelperID)
}
