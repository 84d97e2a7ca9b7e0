package port

import (
	"context"
	"listing-bff/internal/core/domain"
)

// ListingCachePort - снимок последней выгрузки объявлений.
// Miss возвращает (nil, false, nil).
type ListingCachePort interface {
	Get(ctx context.Context) ([]domain.Listing, bool, error)
	Set(ctx context.Context, listings []domain.Listing) error
}

// FavoriteSetPort - набор избранного одной сессии
type FavoriteSetPort interface {
	// Toggle атомарно инвертирует принадлежность и возвращает новое состояние
	Toggle(ctx context.Context, sessionID, listingID string) (bool, error)
	Members(ctx context.Context, sessionID string) ([]string, error)
	// Replace заменяет набор целиком (пустой список очищает его)
	Replace(ctx context.Context, sessionID string, ids []string) error
}

// SyncLogPort - журнал сверки локального избранного с бэкендом
type SyncLogPort interface {
	Record(ctx context.Context, entry domain.SyncEntry) error
	Resolve(ctx context.Context, entry domain.SyncEntry) error
	MarkFailed(ctx context.Context, entry domain.SyncEntry, reason string) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.SyncEntry, error)
	ClearFailed(ctx context.Context, sessionID string) (int64, error)
}

// SessionStorePort - серверное хранилище ключей сессии
type SessionStorePort interface {
	Create(ctx context.Context, session *domain.Session) error
	// Get возвращает domain.ErrSessionNotFound, если сессия истекла или удалена
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	SetField(ctx context.Context, sessionID, key, value string) error
	// Clear удаляет все ключи сессии одной командой
	Clear(ctx context.Context, sessionID string) error
}

// DraftReviewStorePort - состояние экранов проверки черновиков одной сессии
type DraftReviewStorePort interface {
	Save(ctx context.Context, sessionID, draftID string, review *domain.DraftReview) error
	// Load возвращает domain.ErrNotFound, если проверка не открыта
	Load(ctx context.Context, sessionID, draftID string) (*domain.DraftReview, error)
	Delete(ctx context.Context, sessionID, draftID string) error
}
