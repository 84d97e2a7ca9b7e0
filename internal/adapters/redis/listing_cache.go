package redis_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"listing-bff/internal/core/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListingCache - снимок последней выгрузки коллекции объявлений.
// Карточка объявления читается из него, поэтому свежесть карточки равна свежести списка.
type ListingCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewListingCache(client redis.UniversalClient, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttlOrDefault(ttl, DefaultListingsTTL)}
}

func (c *ListingCache) Get(ctx context.Context) ([]domain.Listing, bool, error) {
	data, err := c.client.Get(ctx, listingsSnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read listings snapshot: %w", err)
	}
	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal listings snapshot: %w", err)
	}
	return listings, true, nil
}

func (c *ListingCache) Set(ctx context.Context, listings []domain.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to marshal listings snapshot: %w", err)
	}
	if err := c.client.Set(ctx, listingsSnapshot, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write listings snapshot: %w", err)
	}
	return nil
}
