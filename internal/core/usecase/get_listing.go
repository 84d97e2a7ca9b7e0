package usecase

import (
	"context"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
)

// GetListingUseCase отдает карточку из последнего снимка списка
type GetListingUseCase struct {
	source    *ListingSource
	favorites port.FavoriteSetPort
}

func NewGetListingUseCase(source *ListingSource, favorites port.FavoriteSetPort) *GetListingUseCase {
	return &GetListingUseCase{source: source, favorites: favorites}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, session *domain.Session, listingID string) (*domain.ListingCard, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": listingID,
	})

	listings, err := uc.source.Load(ctx, ucLogger, false)
	if err != nil {
		ucLogger.Error("Failed to load listings", err, nil)
		return nil, err
	}

	listing, ok := domain.FindListing(listings, listingID)
	if !ok {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrNotFound, listingID)
	}

	cards := domain.LikedCards([]domain.Listing{listing}, likedIDs(ctx, uc.favorites, session, ucLogger))
	return &cards[0], nil
}
