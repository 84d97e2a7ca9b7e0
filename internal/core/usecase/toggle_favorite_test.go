package usecase

import (
	"context"
	"errors"
	"listing-bff/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newToggleFixture() (*ToggleFavoriteUseCase, *memoryFavorites, *MockSyncLog, *MockListingBackend, *MockEventPublisher) {
	favorites := newMemoryFavorites()
	syncLog := new(MockSyncLog)
	backend := new(MockListingBackend)
	events := new(MockEventPublisher)
	uc := NewToggleFavoriteUseCase(favorites, syncLog, backend, events, time.Second)
	return uc, favorites, syncLog, backend, events
}

func TestToggleFavorite_TwiceRestoresMembership(t *testing.T) {
	uc, favorites, syncLog, backend, _ := newToggleFixture()
	ctx := context.Background()
	session := userSession()

	syncLog.On("Record", mock.Anything, mock.AnythingOfType("domain.SyncEntry")).Return(nil)
	syncLog.On("Resolve", mock.Anything, mock.AnythingOfType("domain.SyncEntry")).Return(nil)
	backend.On("Like", mock.Anything, "5", "user@example.com").Return(nil).Once()
	backend.On("Dislike", mock.Anything, "5", "user@example.com").Return(nil).Once()

	first, err := uc.Execute(ctx, session, "5")
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, domain.SyncPending, first.SyncStatus)

	second, err := uc.Execute(ctx, session, "5")
	require.NoError(t, err)
	assert.False(t, second.Liked)

	uc.Wait()

	members, err := favorites.Members(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
	backend.AssertExpectations(t)
	syncLog.AssertNumberOfCalls(t, "Resolve", 2)
}

func TestToggleFavorite_FailedSyncKeepsLocalStateAndReportsFailure(t *testing.T) {
	uc, favorites, syncLog, backend, events := newToggleFixture()
	ctx := context.Background()
	session := userSession()
	backendErr := errors.New("backend down")

	syncLog.On("Record", mock.Anything, mock.AnythingOfType("domain.SyncEntry")).Return(nil)
	syncLog.On("MarkFailed", mock.Anything, mock.MatchedBy(func(e domain.SyncEntry) bool {
		return e.ListingID == "5" && e.Status == domain.SyncFailed
	}), backendErr.Error()).Return(nil)
	backend.On("Like", mock.Anything, "5", "user@example.com").Return(backendErr)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventFavoriteSyncFailed
	})).Return(nil)

	result, err := uc.Execute(ctx, session, "5")
	require.NoError(t, err)
	assert.True(t, result.Liked)

	uc.Wait()

	members, err := favorites.Members(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, members)
	syncLog.AssertExpectations(t)
	syncLog.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	events.AssertExpectations(t)
}

func TestToggleFavorite_RecordFailureStillSyncs(t *testing.T) {
	uc, _, syncLog, backend, _ := newToggleFixture()

	syncLog.On("Record", mock.Anything, mock.Anything).Return(errors.New("db down"))
	backend.On("Like", mock.Anything, "5", "user@example.com").Return(nil)

	_, err := uc.Execute(context.Background(), userSession(), "5")
	require.NoError(t, err)
	uc.Wait()

	backend.AssertExpectations(t)
	syncLog.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestToggleFavorite_UsesTeleEmailWhenEmailMissing(t *testing.T) {
	uc, _, syncLog, backend, _ := newToggleFixture()
	session := userSession()
	session.Email = ""
	session.TeleEmail = "tele@example.com"

	syncLog.On("Record", mock.Anything, mock.Anything).Return(nil)
	syncLog.On("Resolve", mock.Anything, mock.Anything).Return(nil)
	backend.On("Like", mock.Anything, "9", "tele@example.com").Return(nil)

	_, err := uc.Execute(context.Background(), session, "9")
	require.NoError(t, err)
	uc.Wait()

	backend.AssertExpectations(t)
}

func TestToggleFavorite_Validation(t *testing.T) {
	noEmail := userSession()
	noEmail.Email = ""

	tests := []struct {
		name      string
		session   *domain.Session
		listingID string
		wantErr   error
	}{
		{name: "missing listing id", session: userSession(), listingID: "", wantErr: domain.ErrValidation},
		{name: "anonymous session", session: domain.AnonymousSession(), listingID: "5", wantErr: domain.ErrSessionNotFound},
		{name: "missing email", session: noEmail, listingID: "5", wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, favorites, syncLog, backend, _ := newToggleFixture()

			_, err := uc.Execute(context.Background(), tt.session, tt.listingID)
			require.ErrorIs(t, err, tt.wantErr)

			members, _ := favorites.Members(context.Background(), userSession().ID)
			assert.Empty(t, members)
			syncLog.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
			backend.AssertNotCalled(t, "Like", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
