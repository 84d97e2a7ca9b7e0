package usecase

import (
	"context"
	"fmt"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
)

// ListingSource отдает коллекцию объявлений: снимок из кэша либо свежую выгрузку с бэкенда.
// Ошибки кэша не ломают запрос, только пишутся в лог.
type ListingSource struct {
	backend port.ListingBackendPort
	cache   port.ListingCachePort
}

// NewListingSource - cache может быть nil, тогда каждый вызов идет на бэкенд
func NewListingSource(backend port.ListingBackendPort, cache port.ListingCachePort) *ListingSource {
	return &ListingSource{backend: backend, cache: cache}
}

func (s *ListingSource) Load(ctx context.Context, logger port.LoggerPort, forceRefresh bool) ([]domain.Listing, error) {
	if !forceRefresh && s.cache != nil {
		listings, ok, err := s.cache.Get(ctx)
		if err != nil {
			logger.Warn("Listings cache read failed, falling back to backend", port.Fields{"error": err.Error()})
		} else if ok {
			logger.Debug("Listings served from cache", port.Fields{"count": len(listings)})
			return listings, nil
		}
	}

	listings, err := s.backend.FetchListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listings); err != nil {
			logger.Warn("Failed to store listings snapshot", port.Fields{"error": err.Error()})
		}
	}
	return listings, nil
}

// likedIDs - избранное сессии. Анонимная сессия избранного не имеет.
func likedIDs(ctx context.Context, favorites port.FavoriteSetPort, session *domain.Session, logger port.LoggerPort) []string {
	if !session.IsStarted() {
		return []string{}
	}
	ids, err := favorites.Members(ctx, session.ID)
	if err != nil {
		logger.Warn("Failed to read favorites, cards rendered as not liked", port.Fields{"error": err.Error()})
		return []string{}
	}
	return ids
}

func requireSession(session *domain.Session) error {
	if !session.IsStarted() {
		return domain.ErrSessionNotFound
	}
	return nil
}
