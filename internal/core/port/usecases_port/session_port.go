package usecases_port

import (
	"context"
	"listing-bff/internal/core/domain"
)

// StartedSession - новая сессия и ее подписанный токен
type StartedSession struct {
	Session  *domain.Session
	Token    string
	LikedIDs []string
}

type SessionUseCasePort interface {
	Start(ctx context.Context, identity domain.SessionIdentity) (*StartedSession, error)
	// Resolve читает сессию по токену. Пустой токен - анонимная сессия.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	UpdateEmail(ctx context.Context, session *domain.Session, email string) (*domain.Session, error)
	Logout(ctx context.Context, session *domain.Session) error
}
