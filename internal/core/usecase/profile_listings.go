package usecase

import (
	"context"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
)

// ProfileListingsUseCase - вкладки профиля: объявления владельца по статусу
type ProfileListingsUseCase struct {
	source *ListingSource
}

func NewProfileListingsUseCase(source *ListingSource) *ProfileListingsUseCase {
	return &ProfileListingsUseCase{source: source}
}

func (uc *ProfileListingsUseCase) Execute(ctx context.Context, session *domain.Session, status domain.ListingStatus) ([]domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ProfileListings",
		"status":   string(status),
	})

	if session == nil || session.Role != domain.RoleAgent {
		return nil, fmt.Errorf("%w: only agents have own listings", domain.ErrAnonymous)
	}
	if session.TeleNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required to list own listings", domain.ErrAnonymous)
	}

	listings, err := uc.source.Load(ctx, ucLogger, false)
	if err != nil {
		ucLogger.Error("Failed to load listings", err, nil)
		return nil, err
	}
	return domain.OwnedListings(listings, session.TeleNumber, status), nil
}
