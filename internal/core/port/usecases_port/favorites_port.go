package usecases_port

import (
	"context"
	"listing-bff/internal/core/domain"
)

type ToggleFavoriteUseCasePort interface {
	Execute(ctx context.Context, session *domain.Session, listingID string) (*domain.ToggleResult, error)
}

type GetFavoritesUseCasePort interface {
	Execute(ctx context.Context, session *domain.Session) ([]domain.Listing, error)
}

type GetFavoriteIDsUseCasePort interface {
	Execute(ctx context.Context, session *domain.Session) ([]string, error)
}

type GetSyncStatusUseCasePort interface {
	Execute(ctx context.Context, session *domain.Session) (*domain.SyncReport, error)
}

type RefreshFavoritesUseCasePort interface {
	Execute(ctx context.Context, session *domain.Session) ([]string, error)
}
