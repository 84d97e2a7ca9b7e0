package contextkeys

import (
	"context"
	"listing-bff/internal/core/domain"
)

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// ContextWithSession кладет сессию, прочитанную один раз на запрос
func ContextWithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext возвращает анонимную сессию, если middleware ее не положил
func SessionFromContext(ctx context.Context) *domain.Session {
	if session, ok := ctx.Value(sessionKey).(*domain.Session); ok && session != nil {
		return session
	}
	return domain.AnonymousSession()
}
