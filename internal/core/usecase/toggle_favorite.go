package usecase

import (
	"context"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"sync"
	"time"
)

const defaultSyncTimeout = 10 * time.Second

// ToggleFavoriteUseCase - оптимистичное переключение избранного в две фазы.
// Локальный набор меняется сразу, вызов бэкенда идет в фоне. Откат при ошибке не выполняется:
// расхождение видно в журнале сверки до следующей полной перезагрузки.
type ToggleFavoriteUseCase struct {
	favorites   port.FavoriteSetPort
	syncLog     port.SyncLogPort
	backend     port.ListingBackendPort
	events      port.EventPublisherPort
	syncTimeout time.Duration
	now         func() time.Time

	inflight sync.WaitGroup
}

func NewToggleFavoriteUseCase(
	favorites port.FavoriteSetPort,
	syncLog port.SyncLogPort,
	backend port.ListingBackendPort,
	events port.EventPublisherPort,
	syncTimeout time.Duration,
) *ToggleFavoriteUseCase {
	if syncTimeout <= 0 {
		syncTimeout = defaultSyncTimeout
	}
	return &ToggleFavoriteUseCase{
		favorites:   favorites,
		syncLog:     syncLog,
		backend:     backend,
		events:      events,
		syncTimeout: syncTimeout,
		now:         time.Now,
	}
}

func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, session *domain.Session, listingID string) (*domain.ToggleResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ToggleFavorite",
		"listing_id": listingID,
	})

	if listingID == "" {
		return nil, fmt.Errorf("%w: listing id is required", domain.ErrValidation)
	}
	if err := requireSession(session); err != nil {
		return nil, err
	}
	email := session.LikesEmail()
	if email == "" {
		return nil, fmt.Errorf("%w: email is required to keep favorites", domain.ErrValidation)
	}

	liked, err := uc.favorites.Toggle(ctx, session.ID, listingID)
	if err != nil {
		ucLogger.Error("Failed to toggle local favorite", err, nil)
		return nil, err
	}

	entry := domain.NewSyncEntry(session.ID, listingID, email, liked, uc.now().UTC())
	tracked := true
	if err := uc.syncLog.Record(ctx, entry); err != nil {
		// локальное состояние уже изменено, синхронизация идет без записи в журнале
		ucLogger.Warn("Failed to record sync entry", port.Fields{"error": err.Error()})
		tracked = false
	}

	uc.inflight.Add(1)
	go uc.sync(context.WithoutCancel(ctx), entry, tracked)

	ucLogger.Info("Favorite toggled locally", port.Fields{"liked": liked, "sync_id": entry.ID.String()})
	return &domain.ToggleResult{
		ListingID:  listingID,
		Liked:      liked,
		SyncID:     entry.ID,
		SyncStatus: domain.SyncPending,
	}, nil
}

// sync повторяет переключение на бэкенде. Одна попытка, без очереди.
func (uc *ToggleFavoriteUseCase) sync(base context.Context, entry domain.SyncEntry, tracked bool) {
	defer uc.inflight.Done()

	syncLogger := contextkeys.LoggerFromContext(base).WithFields(port.Fields{
		"use_case":   "ToggleFavorite.sync",
		"listing_id": entry.ListingID,
		"action":     string(entry.Action),
		"sync_id":    entry.ID.String(),
	})

	callCtx, cancelCall := context.WithTimeout(base, uc.syncTimeout)
	var err error
	if entry.Action == domain.FavoriteAdd {
		err = uc.backend.Like(callCtx, entry.ListingID, entry.Email)
	} else {
		err = uc.backend.Dislike(callCtx, entry.ListingID, entry.Email)
	}
	cancelCall()

	bookCtx, cancelBook := context.WithTimeout(base, uc.syncTimeout)
	defer cancelBook()

	if err == nil {
		if tracked {
			if resolveErr := uc.syncLog.Resolve(bookCtx, entry); resolveErr != nil {
				syncLogger.Warn("Failed to resolve sync entry", port.Fields{"error": resolveErr.Error()})
			}
		}
		syncLogger.Debug("Favorite synced with backend", nil)
		return
	}

	syncLogger.Error("Favorite sync failed, local state kept", err, nil)
	entry.Status = domain.SyncFailed
	entry.Error = err.Error()
	if tracked {
		if markErr := uc.syncLog.MarkFailed(bookCtx, entry, entry.Error); markErr != nil {
			syncLogger.Warn("Failed to mark sync entry as failed", port.Fields{"error": markErr.Error()})
		}
	}
	if pubErr := uc.events.Publish(bookCtx, domain.FavoriteSyncFailedEvent(entry)); pubErr != nil {
		syncLogger.Warn("Failed to publish sync failure event", port.Fields{"error": pubErr.Error()})
	}
}

// Wait дожидается завершения фоновых синхронизаций
func (uc *ToggleFavoriteUseCase) Wait() {
	uc.inflight.Wait()
}
