package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/service"
)

var (
	_ service.IncidentRepository = (*MemoryStore)(nil)
	_ service.PresenceRepository = (*MemoryStore)(nil)
	_ service.HelpRepository     = (*MemoryStore)(nil)
)

// MemoryStore - хранилище в памяти для разработки и тестов.
// Реализует репозитории инцидентов, присутствия и помощи под одной блокировкой,
// поэтому составные операции атомарны так же, как транзакции Postgres.
type MemoryStore struct {
	mu        sync.RWMutex
	incidents map[uuid.UUID]*models.Incident
	presence  map[string]*models.PresenceRecord
	offers    map[uuid.UUID]*models.HelpOffer
	// pairs: requester_id + helper_id -> id предложения
	pairs map[offerPair]uuid.UUID
	now   func() time.Time
}

type offerPair struct {
	requesterID string
	helperID    string
}

// MemoryOption настраивает MemoryStore
type MemoryOption func(*MemoryStore)

// WithMemoryClock задает источник времени для CreatedAt
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		incidents: make(map[uuid.UUID]*models.Incident),
		presence:  make(map[string]*models.PresenceRecord),
		offers:    make(map[uuid.UUID]*models.HelpOffer),
		pairs:     make(map[offerPair]uuid.UUID),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// --- инциденты ---

func (m *MemoryStore) Create(_ context.Context, incident *models.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	if _, exists := m.incidents[incident.ID]; exists {
		return fmt.Errorf("incident with id %s: %w", incident.ID, models.ErrConflict)
	}
	incident.CreatedAt = m.now().UTC()
	cp := *incident
	m.incidents[incident.ID] = &cp
	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inc, ok := m.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
	}
	cp := *inc
	return &cp, nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.incidents[id]; !ok {
		return fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
	}
	delete(m.incidents, id)
	return nil
}

func (m *MemoryStore) ListIncidents(_ context.Context, page, pageSize int) ([]*models.Incident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.sortedIncidents(nil)
	offset := (page - 1) * pageSize
	if offset >= len(all) {
		return []*models.Incident{}, nil
	}
	end := min(offset+pageSize, len(all))
	return all[offset:end], nil
}

func (m *MemoryStore) ListRecent(_ context.Context, box *models.BoundingBox, limit int) ([]*models.Incident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.sortedIncidents(box)
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// sortedIncidents возвращает копии инцидентов, свежие первыми. Вызывается под блокировкой.
func (m *MemoryStore) sortedIncidents(box *models.BoundingBox) []*models.Incident {
	out := make([]*models.Incident, 0, len(m.incidents))
	for _, inc := range m.incidents {
		if box != nil && !box.Contains(inc.Latitude, inc.Longitude) {
			continue
		}
		cp := *inc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Кеш не нужен: хранилище и так в памяти.
func (m *MemoryStore) GetIncidentFromCache(context.Context, uuid.UUID) (*models.Incident, error) {
	return nil, nil
}

func (m *MemoryStore) SetIncidentCache(context.Context, *models.Incident) error { return nil }

func (m *MemoryStore) InvalidateIncidentCache(context.Context, uuid.UUID) error { return nil }

// --- присутствие ---

func (m *MemoryStore) Upsert(_ context.Context, rec *models.PresenceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.presence[rec.UserID]; ok {
		existing.Latitude = rec.Latitude
		existing.Longitude = rec.Longitude
		existing.LastUpdated = rec.LastUpdated
		rec.HelpRequestedAt = copyTime(existing.HelpRequestedAt)
		return nil
	}
	cp := *rec
	cp.HelpRequestedAt = nil
	rec.HelpRequestedAt = nil
	m.presence[rec.UserID] = &cp
	return nil
}

func (m *MemoryStore) GetByUserID(_ context.Context, userID string) (*models.PresenceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.presence[userID]
	if !ok {
		return nil, fmt.Errorf("presence for user %s: %w", userID, models.ErrNotFound)
	}
	return copyPresence(rec), nil
}

func (m *MemoryStore) ListUpdatedSince(_ context.Context, since time.Time, excludeUserID string) ([]*models.PresenceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.PresenceRecord, 0)
	for id, rec := range m.presence {
		if id == excludeUserID || !rec.LastUpdated.After(since) {
			continue
		}
		out = append(out, copyPresence(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].LastUpdated.After(out[j].LastUpdated)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

// --- помощь ---

func (m *MemoryStore) SetHelpRequestedAt(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.presence[userID]
	if !ok {
		return fmt.Errorf("presence for user %s: %w", userID, models.ErrNotFound)
	}
	rec.HelpRequestedAt = &at
	return nil
}

func (m *MemoryStore) CancelHelp(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.presence[userID]
	if !ok {
		return 0, fmt.Errorf("presence for user %s: %w", userID, models.ErrNotFound)
	}
	rec.HelpRequestedAt = nil

	var removed int64
	for id, offer := range m.offers {
		if offer.RequesterID != userID {
			continue
		}
		delete(m.offers, id)
		delete(m.pairs, offerPair{offer.RequesterID, offer.HelperID})
		removed++
	}
	return removed, nil
}

func (m *MemoryStore) UpsertOffer(_ context.Context, offer *models.HelpOffer, activeSince time.Time) (*models.HelpOffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	requester, ok := m.presence[offer.RequesterID]
	if !ok {
		return nil, fmt.Errorf("requester %s: %w", offer.RequesterID, models.ErrNotFound)
	}
	if requester.HelpRequestedAt == nil || !requester.HelpRequestedAt.After(activeSince) {
		return nil, fmt.Errorf("requester %s is not requesting help: %w", offer.RequesterID, models.ErrInvalidState)
	}
	if _, ok := m.presence[offer.HelperID]; !ok {
		return nil, fmt.Errorf("helper %s: %w", offer.HelperID, models.ErrNotFound)
	}

	key := offerPair{offer.RequesterID, offer.HelperID}
	if id, exists := m.pairs[key]; exists {
		existing := m.offers[id]
		existing.Status = offer.Status
		existing.CreatedAt = offer.CreatedAt
		cp := *existing
		return &cp, nil
	}

	cp := *offer
	m.offers[offer.ID] = &cp
	m.pairs[key] = offer.ID
	out := cp
	return &out, nil
}

func (m *MemoryStore) GetOffer(_ context.Context, id uuid.UUID) (*models.HelpOffer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	offer, ok := m.offers[id]
	if !ok {
		return nil, fmt.Errorf("offer %s: %w", id, models.ErrNotFound)
	}
	cp := *offer
	return &cp, nil
}

func (m *MemoryStore) UpdateOfferStatus(_ context.Context, id uuid.UUID, status models.OfferStatus, rejectOtherPending bool) (*models.HelpOffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	offer, ok := m.offers[id]
	if !ok {
		return nil, fmt.Errorf("offer %s: %w", id, models.ErrNotFound)
	}
	offer.Status = status

	if rejectOtherPending {
		for otherID, other := range m.offers {
			if otherID != id && other.RequesterID == offer.RequesterID && other.Status == models.OfferStatusPending {
				other.Status = models.OfferStatusRejected
			}
		}
	}
	cp := *offer
	return &cp, nil
}

func (m *MemoryStore) ListByRequester(_ context.Context, requesterID string, status models.OfferStatus) ([]*models.HelpOffer, error) {
	return m.listOffers(func(o *models.HelpOffer) bool { return o.RequesterID == requesterID }, status), nil
}

func (m *MemoryStore) ListByHelper(_ context.Context, helperID string, status models.OfferStatus) ([]*models.HelpOffer, error) {
	return m.listOffers(func(o *models.HelpOffer) bool { return o.HelperID == helperID }, status), nil
}

func (m *MemoryStore) listOffers(match func(*models.HelpOffer) bool, status models.OfferStatus) []*models.HelpOffer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.HelpOffer, 0)
	for _, offer := range m.offers {
		if !match(offer) || (status != "" && offer.Status != status) {
			continue
		}
		cp := *offer
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func copyPresence(rec *models.PresenceRecord) *models.PresenceRecord {
	cp := *rec
	cp.HelpRequestedAt = copyTime(rec.HelpRequestedAt)
	return &cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
