package usecase

import (
	"context"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"listing-bff/internal/core/port/usecases_port"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionUseCase - явный контекст сессии вместо глобального хранилища браузера
type SessionUseCase struct {
	store     port.SessionStorePort
	favorites port.FavoriteSetPort
	tokens    port.TokenServicePort
	backend   port.ListingBackendPort
	ttl       time.Duration
	newID     func() string
}

func NewSessionUseCase(
	store port.SessionStorePort,
	favorites port.FavoriteSetPort,
	tokens port.TokenServicePort,
	backend port.ListingBackendPort,
	ttl time.Duration,
) *SessionUseCase {
	return &SessionUseCase{
		store:     store,
		favorites: favorites,
		tokens:    tokens,
		backend:   backend,
		ttl:       ttl,
		newID:     uuid.NewString,
	}
}

// Start записывает идентичность, переданную оболочкой, и выдает токен.
// Если известен email, избранное подтягивается с бэкенда; ошибка при этом не мешает запуску.
// Сессия, уже лежащая в контексте запроса, удаляется.
func (uc *SessionUseCase) Start(ctx context.Context, identity domain.SessionIdentity) (*usecases_port.StartedSession, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "StartSession",
		"role":     string(identity.Role),
	})

	if err := identity.Validate(); err != nil {
		return nil, err
	}

	session := domain.NewSession(uc.newID(), identity)
	if err := uc.store.Create(ctx, session); err != nil {
		ucLogger.Error("Failed to create session", err, nil)
		return nil, err
	}

	token, err := uc.tokens.Issue(ctx, session.ID, uc.ttl)
	if err != nil {
		ucLogger.Error("Failed to issue session token", err, nil)
		return nil, err
	}

	// Предыдущая сессия этого клиента больше не нужна
	if prev := contextkeys.SessionFromContext(ctx); prev.IsStarted() && prev.ID != session.ID {
		if err := uc.store.Clear(ctx, prev.ID); err != nil {
			ucLogger.Warn("Failed to clear previous session", port.Fields{"previous_session_id": prev.ID, "error": err.Error()})
		}
	}

	liked := []string{}
	if email := session.LikesEmail(); email != "" {
		ids, err := uc.backend.FetchLikedIDs(ctx, email)
		switch {
		case err != nil:
			ucLogger.Warn("Error fetching liked properties", port.Fields{"error": err.Error()})
		default:
			if err := uc.favorites.Replace(ctx, session.ID, ids); err != nil {
				ucLogger.Warn("Failed to store liked properties", port.Fields{"error": err.Error()})
			} else {
				liked = ids
			}
		}
	}

	ucLogger.Info("Session started", port.Fields{"anonymous": session.IsAnonymous(), "liked": len(liked)})
	return &usecases_port.StartedSession{Session: session, Token: token, LikedIDs: liked}, nil
}

// Resolve читает сессию один раз на запрос
func (uc *SessionUseCase) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return domain.AnonymousSession(), nil
	}
	sessionID, err := uc.tokens.Parse(ctx, token)
	if err != nil {
		return nil, err
	}
	return uc.store.Get(ctx, sessionID)
}

// UpdateEmail - вход через профиль: бэкенд получает email пользователя, сессия запоминает teleEmail
func (uc *SessionUseCase) UpdateEmail(ctx context.Context, session *domain.Session, email string) (*domain.Session, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "UpdateSessionEmail"})

	if err := requireSession(session); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", domain.ErrValidation)
	}
	if session.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required to update email", domain.ErrValidation)
	}

	if err := uc.backend.UpdateUser(ctx, session.UserID, email); err != nil {
		ucLogger.Error("Failed to update user email", err, nil)
		return nil, err
	}
	if err := uc.store.SetField(ctx, session.ID, domain.KeyTeleEmail, email); err != nil {
		ucLogger.Error("Failed to store teleEmail", err, nil)
		return nil, err
	}

	updated := *session
	updated.TeleEmail = email
	ucLogger.Info("Session email updated", nil)
	return &updated, nil
}

// Logout удаляет все ключи сессии разом. Частичного выхода нет.
func (uc *SessionUseCase) Logout(ctx context.Context, session *domain.Session) error {
	if !session.IsStarted() {
		return nil
	}
	if err := uc.store.Clear(ctx, session.ID); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to clear session", err, port.Fields{"use_case": "Logout"})
		return err
	}
	return nil
}
