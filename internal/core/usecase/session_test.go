package usecase

import (
	"context"
	"errors"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSessionFixture() (*SessionUseCase, *memorySessions, *memoryFavorites, *MockTokenService, *MockListingBackend) {
	store := newMemorySessions()
	favorites := newMemoryFavorites()
	tokens := new(MockTokenService)
	backend := new(MockListingBackend)
	uc := NewSessionUseCase(store, favorites, tokens, backend, time.Hour)
	uc.newID = func() string { return "sess-1" }
	return uc, store, favorites, tokens, backend
}

func TestSession_StartLoadsFavorites(t *testing.T) {
	uc, store, favorites, tokens, backend := newSessionFixture()
	ctx := context.Background()

	tokens.On("Issue", mock.Anything, "sess-1", time.Hour).Return("token-1", nil)
	backend.On("FetchLikedIDs", mock.Anything, "user@example.com").Return([]string{"2", "1"}, nil)

	started, err := uc.Start(ctx, domain.SessionIdentity{
		Role:       domain.RoleUser,
		TeleNumber: "+995555000111",
		UserID:     "42",
		Email:      "user@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-1", started.Token)
	assert.Equal(t, []string{"2", "1"}, started.LikedIDs)

	stored, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "42", stored.UserID)

	members, err := favorites.Members(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, members)
}

func TestSession_StartSurvivesFavoritesFailure(t *testing.T) {
	uc, _, _, tokens, backend := newSessionFixture()

	tokens.On("Issue", mock.Anything, "sess-1", time.Hour).Return("token-1", nil)
	backend.On("FetchLikedIDs", mock.Anything, "user@example.com").Return(nil, domain.ErrBackendUnavailable)

	started, err := uc.Start(context.Background(), domain.SessionIdentity{Role: domain.RoleUser, Email: "user@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, started.LikedIDs)
	assert.Empty(t, started.LikedIDs)
}

func TestSession_StartAnonymousSkipsBackend(t *testing.T) {
	uc, _, _, tokens, backend := newSessionFixture()

	tokens.On("Issue", mock.Anything, "sess-1", time.Hour).Return("token-1", nil)

	started, err := uc.Start(context.Background(), domain.SessionIdentity{})
	require.NoError(t, err)
	assert.True(t, started.Session.IsAnonymous())
	backend.AssertNotCalled(t, "FetchLikedIDs", mock.Anything, mock.Anything)
}

func TestSession_StartRejectsMalformedEmail(t *testing.T) {
	uc, _, _, tokens, _ := newSessionFixture()

	_, err := uc.Start(context.Background(), domain.SessionIdentity{Role: domain.RoleUser, Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}

func TestSession_Resolve(t *testing.T) {
	uc, store, _, tokens, _ := newSessionFixture()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, userSession()))

	tokens.On("Parse", mock.Anything, "good").Return("sess-1", nil)
	tokens.On("Parse", mock.Anything, "bad").Return("", domain.ErrTokenInvalid)
	tokens.On("Parse", mock.Anything, "stale").Return("sess-gone", nil)

	anonymous, err := uc.Resolve(ctx, "")
	require.NoError(t, err)
	assert.True(t, anonymous.IsAnonymous())

	session, err := uc.Resolve(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", session.Email)

	_, err = uc.Resolve(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = uc.Resolve(ctx, "stale")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSession_UpdateEmail(t *testing.T) {
	uc, store, _, _, backend := newSessionFixture()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, userSession()))

	backend.On("UpdateUser", mock.Anything, "42", "new@example.com").Return(nil)

	updated, err := uc.UpdateEmail(ctx, userSession(), " new@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.TeleEmail)

	stored, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", stored.TeleEmail)
}

func TestSession_UpdateEmailFailures(t *testing.T) {
	noUser := userSession()
	noUser.UserID = ""

	tests := []struct {
		name       string
		session    *domain.Session
		email      string
		backendErr error
		wantErr    error
	}{
		{name: "empty email", session: userSession(), email: "  ", wantErr: domain.ErrValidation},
		{name: "malformed email", session: userSession(), email: "nope", wantErr: domain.ErrValidation},
		{name: "no user id", session: noUser, email: "new@example.com", wantErr: domain.ErrValidation},
		{name: "anonymous", session: domain.AnonymousSession(), email: "new@example.com", wantErr: domain.ErrSessionNotFound},
		{name: "backend failure", session: userSession(), email: "new@example.com", backendErr: domain.ErrBackendUnavailable, wantErr: domain.ErrBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, _, _, backend := newSessionFixture()
			ctx := context.Background()
			require.NoError(t, store.Create(ctx, userSession()))
			backend.On("UpdateUser", mock.Anything, mock.Anything, mock.Anything).Return(tt.backendErr)

			_, err := uc.UpdateEmail(ctx, tt.session, tt.email)
			require.ErrorIs(t, err, tt.wantErr)

			stored, err := store.Get(ctx, "sess-1")
			require.NoError(t, err)
			assert.Empty(t, stored.TeleEmail)
		})
	}
}

func TestSession_LogoutClearsEverything(t *testing.T) {
	uc, store, _, _, _ := newSessionFixture()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, userSession()))

	require.NoError(t, uc.Logout(ctx, userSession()))
	_, err := store.Get(ctx, "sess-1")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))

	assert.NoError(t, uc.Logout(ctx, domain.AnonymousSession()))
}

func TestSession_StartReplacesPreviousSession(t *testing.T) {
	uc, store, _, tokens, _ := newSessionFixture()
	ctx := context.Background()

	previous := domain.NewSession("sess-old", domain.SessionIdentity{Role: domain.RoleUser, UserID: "7"})
	require.NoError(t, store.Create(ctx, previous))
	tokens.On("Issue", mock.Anything, "sess-1", time.Hour).Return("token-1", nil)

	started, err := uc.Start(contextkeys.ContextWithSession(ctx, previous), domain.SessionIdentity{Role: domain.RoleUser, UserID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", started.Session.ID)

	_, err = store.Get(ctx, "sess-old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Get(ctx, "sess-1")
	assert.NoError(t, err)
}
