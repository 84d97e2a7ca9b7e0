package usecase

import (
	"context"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
)

type SearchListingsUseCase struct {
	source    *ListingSource
	favorites port.FavoriteSetPort
}

func NewSearchListingsUseCase(source *ListingSource, favorites port.FavoriteSetPort) *SearchListingsUseCase {
	return &SearchListingsUseCase{source: source, favorites: favorites}
}

// Execute фильтрует всю коллекцию на стороне сервиса. Предикаты на бэкенд не передаются.
func (uc *SearchListingsUseCase) Execute(ctx context.Context, session *domain.Session, criteria domain.FilterCriteria, forceRefresh bool) ([]domain.ListingCard, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SearchListings",
	})

	listings, err := uc.source.Load(ctx, ucLogger, forceRefresh)
	if err != nil {
		ucLogger.Error("Failed to load listings", err, nil)
		return nil, err
	}

	filtered := domain.FilterListings(listings, criteria)
	cards := domain.LikedCards(filtered, likedIDs(ctx, uc.favorites, session, ucLogger))

	ucLogger.Debug("Listings filtered", port.Fields{
		"total":    len(listings),
		"matched":  len(filtered),
		"filtered": !criteria.IsEmpty(),
	})
	return cards, nil
}
