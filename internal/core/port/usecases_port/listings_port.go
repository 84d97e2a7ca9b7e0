package usecases_port

import (
	"context"
	"listing-bff/internal/core/domain"
)

type SearchListingsUseCasePort interface {
	// Execute возвращает отфильтрованные карточки с отметкой избранного.
	// forceRefresh игнорирует снимок в кэше.
	Execute(ctx context.Context, session *domain.Session, criteria domain.FilterCriteria, forceRefresh bool) ([]domain.ListingCard, error)
}

type GetListingUseCasePort interface {
	Execute(ctx context.Context, session *domain.Session, listingID string) (*domain.ListingCard, error)
}

type ProfileListingsUseCasePort interface {
	Execute(ctx context.Context, session *domain.Session, status domain.ListingStatus) ([]domain.Listing, error)
}
