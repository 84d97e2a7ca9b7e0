package port

import (
	"context"
	"listing-bff/internal/core/domain"
)

// ListingBackendPort - контракт клиента удаленного REST-бэкенда.
// Любой ответ не из диапазона 2xx считается общей ошибкой без разбора кода.
type ListingBackendPort interface {
	FetchListings(ctx context.Context) ([]domain.Listing, error)
	FetchLikedIDs(ctx context.Context, email string) ([]string, error)
	Like(ctx context.Context, listingID, email string) error
	Dislike(ctx context.Context, listingID, email string) error
	// UpdateListing перезаписывает запись целиком
	UpdateListing(ctx context.Context, listing domain.Listing) error
	DeleteListing(ctx context.Context, listingID string) error
	UpdateUser(ctx context.Context, userID, email string) error
}
