package rest

import (
	"context"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port/usecases_port"

	"github.com/stretchr/testify/mock"
)

type MockSessionUC struct {
	mock.Mock
}

func (m *MockSessionUC) Start(ctx context.Context, identity domain.SessionIdentity) (*usecases_port.StartedSession, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecases_port.StartedSession), args.Error(1)
}

func (m *MockSessionUC) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionUC) UpdateEmail(ctx context.Context, session *domain.Session, email string) (*domain.Session, error) {
	args := m.Called(ctx, session, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionUC) Logout(ctx context.Context, session *domain.Session) error {
	return m.Called(ctx, session).Error(0)
}

type MockSearchUC struct {
	mock.Mock
}

func (m *MockSearchUC) Execute(ctx context.Context, session *domain.Session, criteria domain.FilterCriteria, forceRefresh bool) ([]domain.ListingCard, error) {
	args := m.Called(ctx, session, criteria, forceRefresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListingCard), args.Error(1)
}

type MockGetListingUC struct {
	mock.Mock
}

func (m *MockGetListingUC) Execute(ctx context.Context, session *domain.Session, listingID string) (*domain.ListingCard, error) {
	args := m.Called(ctx, session, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingCard), args.Error(1)
}

type MockProfileUC struct {
	mock.Mock
}

func (m *MockProfileUC) Execute(ctx context.Context, session *domain.Session, status domain.ListingStatus) ([]domain.Listing, error) {
	args := m.Called(ctx, session, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type MockToggleUC struct {
	mock.Mock
}

func (m *MockToggleUC) Execute(ctx context.Context, session *domain.Session, listingID string) (*domain.ToggleResult, error) {
	args := m.Called(ctx, session, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

type MockListingsBySessionUC struct {
	mock.Mock
}

func (m *MockListingsBySessionUC) Execute(ctx context.Context, session *domain.Session) ([]domain.Listing, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type MockIDsBySessionUC struct {
	mock.Mock
}

func (m *MockIDsBySessionUC) Execute(ctx context.Context, session *domain.Session) ([]string, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockSyncStatusUC struct {
	mock.Mock
}

func (m *MockSyncStatusUC) Execute(ctx context.Context, session *domain.Session) (*domain.SyncReport, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncReport), args.Error(1)
}

type MockDraftReviewUC struct {
	mock.Mock
}

func (m *MockDraftReviewUC) view(args mock.Arguments) (*domain.DraftView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftView), args.Error(1)
}

func (m *MockDraftReviewUC) Open(ctx context.Context, session *domain.Session, record domain.Listing) (*domain.DraftView, error) {
	return m.view(m.Called(ctx, session, record))
}

func (m *MockDraftReviewUC) Get(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error) {
	return m.view(m.Called(ctx, session, draftID))
}

func (m *MockDraftReviewUC) BeginEdit(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error) {
	return m.view(m.Called(ctx, session, draftID))
}

func (m *MockDraftReviewUC) Edit(ctx context.Context, session *domain.Session, draftID string, edit domain.DraftEdit) (*domain.DraftView, error) {
	return m.view(m.Called(ctx, session, draftID, edit))
}

func (m *MockDraftReviewUC) Cancel(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error) {
	return m.view(m.Called(ctx, session, draftID))
}

func (m *MockDraftReviewUC) Save(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error) {
	return m.view(m.Called(ctx, session, draftID))
}

func (m *MockDraftReviewUC) Reject(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftRejection, error) {
	args := m.Called(ctx, session, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftRejection), args.Error(1)
}
