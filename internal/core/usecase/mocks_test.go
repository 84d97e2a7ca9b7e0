package usecase

import (
	"context"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"slices"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockListingBackend struct {
	mock.Mock
}

func (m *MockListingBackend) FetchListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingBackend) FetchLikedIDs(ctx context.Context, email string) ([]string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListingBackend) Like(ctx context.Context, listingID, email string) error {
	return m.Called(ctx, listingID, email).Error(0)
}

func (m *MockListingBackend) Dislike(ctx context.Context, listingID, email string) error {
	return m.Called(ctx, listingID, email).Error(0)
}

func (m *MockListingBackend) UpdateListing(ctx context.Context, listing domain.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingBackend) DeleteListing(ctx context.Context, listingID string) error {
	return m.Called(ctx, listingID).Error(0)
}

func (m *MockListingBackend) UpdateUser(ctx context.Context, userID, email string) error {
	return m.Called(ctx, userID, email).Error(0)
}

type MockSyncLog struct {
	mock.Mock
}

func (m *MockSyncLog) Record(ctx context.Context, entry domain.SyncEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockSyncLog) Resolve(ctx context.Context, entry domain.SyncEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockSyncLog) MarkFailed(ctx context.Context, entry domain.SyncEntry, reason string) error {
	return m.Called(ctx, entry, reason).Error(0)
}

func (m *MockSyncLog) ListBySession(ctx context.Context, sessionID string) ([]domain.SyncEntry, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncEntry), args.Error(1)
}

func (m *MockSyncLog) ClearFailed(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type MockDraftValidator struct {
	mock.Mock
}

func (m *MockDraftValidator) ValidateDraft(listing domain.Listing) error {
	return m.Called(listing).Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(ctx context.Context, sessionID string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, sessionID, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Parse(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockListingCache struct {
	mock.Mock
}

func (m *MockListingCache) Get(ctx context.Context) ([]domain.Listing, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Listing), args.Bool(1), args.Error(2)
}

func (m *MockListingCache) Set(ctx context.Context, listings []domain.Listing) error {
	return m.Called(ctx, listings).Error(0)
}

// memoryFavorites - набор избранного в памяти, проще мока для проверки состояния
type memoryFavorites struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

func newMemoryFavorites() *memoryFavorites {
	return &memoryFavorites{sets: map[string]map[string]struct{}{}}
}

func (f *memoryFavorites) Toggle(_ context.Context, sessionID, listingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.sets[sessionID]
	if !ok {
		set = map[string]struct{}{}
		f.sets[sessionID] = set
	}
	if _, liked := set[listingID]; liked {
		delete(set, listingID)
		return false, nil
	}
	set[listingID] = struct{}{}
	return true, nil
}

func (f *memoryFavorites) Members(_ context.Context, sessionID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.sets[sessionID]))
	for id := range f.sets[sessionID] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (f *memoryFavorites) Replace(_ context.Context, sessionID string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	f.sets[sessionID] = set
	return nil
}

type memorySessions struct {
	sessions map[string]*domain.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*domain.Session{}}
}

func (s *memorySessions) Create(_ context.Context, session *domain.Session) error {
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *memorySessions) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *memorySessions) SetField(_ context.Context, sessionID, key, value string) error {
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	values := session.Values()
	values[key] = value
	s.sessions[sessionID] = domain.SessionFromValues(sessionID, values)
	return nil
}

func (s *memorySessions) Clear(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type memoryDrafts struct {
	reviews map[string]domain.DraftReview
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{reviews: map[string]domain.DraftReview{}}
}

func (d *memoryDrafts) key(sessionID, draftID string) string {
	return sessionID + "/" + draftID
}

func (d *memoryDrafts) Save(_ context.Context, sessionID, draftID string, review *domain.DraftReview) error {
	copied := *review
	copied.Record = review.Record.Clone()
	if review.Edited != nil {
		edited := review.Edited.Clone()
		copied.Edited = &edited
	}
	d.reviews[d.key(sessionID, draftID)] = copied
	return nil
}

func (d *memoryDrafts) Load(_ context.Context, sessionID, draftID string) (*domain.DraftReview, error) {
	review, ok := d.reviews[d.key(sessionID, draftID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &review, nil
}

func (d *memoryDrafts) Delete(_ context.Context, sessionID, draftID string) error {
	delete(d.reviews, d.key(sessionID, draftID))
	return nil
}

func userSession() *domain.Session {
	return &domain.Session{
		ID:         "sess-1",
		Role:       domain.RoleUser,
		TeleNumber: "+995555000111",
		UserID:     "42",
		Email:      "user@example.com",
	}
}

func sampleListings() []domain.Listing {
	return []domain.Listing{
		{ID: "1", Title: "Sunny flat", Price: 700, City: "Tbilisi", Rooms: "2", Status: domain.StatusPublished, OwnerPhone: "+995555000111"},
		{ID: "2", Title: "Old house", Price: 1500, City: "Batumi", Rooms: "4", Status: domain.StatusPublished, OwnerPhone: "+995555000222"},
		{ID: "3", Title: "Studio", Price: 400, City: "Tbilisi", Rooms: "1", Status: domain.StatusArchived, OwnerPhone: "+995555000111"},
	}
}

func noopLogger() port.LoggerPort {
	return contextkeys.LoggerFromContext(context.Background())
}
