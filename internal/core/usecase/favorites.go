package usecase

import (
	"context"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
)

// GetFavoritesUseCase - страница избранного: полные карточки в порядке общей выдачи
type GetFavoritesUseCase struct {
	source    *ListingSource
	favorites port.FavoriteSetPort
}

func NewGetFavoritesUseCase(source *ListingSource, favorites port.FavoriteSetPort) *GetFavoritesUseCase {
	return &GetFavoritesUseCase{source: source, favorites: favorites}
}

func (uc *GetFavoritesUseCase) Execute(ctx context.Context, session *domain.Session) ([]domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetFavorites"})

	if err := requireSession(session); err != nil {
		return nil, err
	}
	ids, err := uc.favorites.Members(ctx, session.ID)
	if err != nil {
		ucLogger.Error("Failed to read favorites", err, nil)
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Listing{}, nil
	}

	listings, err := uc.source.Load(ctx, ucLogger, false)
	if err != nil {
		ucLogger.Error("Failed to load listings", err, nil)
		return nil, err
	}
	return domain.FavoriteListings(listings, ids), nil
}

type GetFavoriteIDsUseCase struct {
	favorites port.FavoriteSetPort
}

func NewGetFavoriteIDsUseCase(favorites port.FavoriteSetPort) *GetFavoriteIDsUseCase {
	return &GetFavoriteIDsUseCase{favorites: favorites}
}

func (uc *GetFavoriteIDsUseCase) Execute(ctx context.Context, session *domain.Session) ([]string, error) {
	if !session.IsStarted() {
		return []string{}, nil
	}
	ids, err := uc.favorites.Members(ctx, session.ID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to read favorite ids", err, port.Fields{"use_case": "GetFavoriteIDs"})
		return nil, err
	}
	return ids, nil
}

// GetSyncStatusUseCase - индикатор "синхронизация не удалась"
type GetSyncStatusUseCase struct {
	syncLog port.SyncLogPort
}

func NewGetSyncStatusUseCase(syncLog port.SyncLogPort) *GetSyncStatusUseCase {
	return &GetSyncStatusUseCase{syncLog: syncLog}
}

func (uc *GetSyncStatusUseCase) Execute(ctx context.Context, session *domain.Session) (*domain.SyncReport, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	entries, err := uc.syncLog.ListBySession(ctx, session.ID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to read sync log", err, port.Fields{"use_case": "GetSyncStatus"})
		return nil, err
	}
	report := domain.NewSyncReport(entries)
	return &report, nil
}

// RefreshFavoritesUseCase - полная перезагрузка избранного с бэкенда.
// Заменяет локальный набор и снимает отметки о неудачной синхронизации.
type RefreshFavoritesUseCase struct {
	backend   port.ListingBackendPort
	favorites port.FavoriteSetPort
	syncLog   port.SyncLogPort
}

func NewRefreshFavoritesUseCase(backend port.ListingBackendPort, favorites port.FavoriteSetPort, syncLog port.SyncLogPort) *RefreshFavoritesUseCase {
	return &RefreshFavoritesUseCase{backend: backend, favorites: favorites, syncLog: syncLog}
}

func (uc *RefreshFavoritesUseCase) Execute(ctx context.Context, session *domain.Session) ([]string, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "RefreshFavorites"})

	if err := requireSession(session); err != nil {
		return nil, err
	}
	email := session.LikesEmail()
	if email == "" {
		return nil, fmt.Errorf("%w: email is required to load favorites", domain.ErrValidation)
	}

	ids, err := uc.backend.FetchLikedIDs(ctx, email)
	if err != nil {
		ucLogger.Error("Failed to fetch liked ids", err, nil)
		return nil, err
	}
	if err := uc.favorites.Replace(ctx, session.ID, ids); err != nil {
		ucLogger.Error("Failed to replace local favorites", err, nil)
		return nil, err
	}

	cleared, err := uc.syncLog.ClearFailed(ctx, session.ID)
	if err != nil {
		ucLogger.Warn("Failed to clear failed sync entries", port.Fields{"error": err.Error()})
	}
	ucLogger.Info("Favorites refreshed from backend", port.Fields{"count": len(ids), "cleared_failures": cleared})
	return ids, nil
}
