package port

import (
	"context"
	"time"
)

// TokenServicePort подписывает идентификатор сессии, который живет в cookie браузера.
type TokenServicePort interface {
	Issue(ctx context.Context, sessionID string, ttl time.Duration) (string, error)
	// Parse возвращает domain.ErrTokenInvalid для поддельного или просроченного токена
	Parse(ctx context.Context, token string) (string, error)
}
