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

// DraftReviewStore хранит открытые проверки черновиков в хэше drafts:{sid}
type DraftReviewStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewDraftReviewStore(client redis.UniversalClient, ttl time.Duration) *DraftReviewStore {
	return &DraftReviewStore{client: client, ttl: ttlOrDefault(ttl, DefaultSessionTTL)}
}

func (s *DraftReviewStore) Save(ctx context.Context, sessionID, draftID string, review *domain.DraftReview) error {
	data, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("failed to marshal draft review %s: %w", draftID, err)
	}
	key := draftsKey(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, draftID, data)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save draft review %s: %w", draftID, err)
	}
	return nil
}

func (s *DraftReviewStore) Load(ctx context.Context, sessionID, draftID string) (*domain.DraftReview, error) {
	data, err := s.client.HGet(ctx, draftsKey(sessionID), draftID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: draft review %s is not open", domain.ErrNotFound, draftID)
		}
		return nil, fmt.Errorf("failed to load draft review %s: %w", draftID, err)
	}
	var review domain.DraftReview
	if err := json.Unmarshal(data, &review); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft review %s: %w", draftID, err)
	}
	return &review, nil
}

func (s *DraftReviewStore) Delete(ctx context.Context, sessionID, draftID string) error {
	if err := s.client.HDel(ctx, draftsKey(sessionID), draftID).Err(); err != nil {
		return fmt.Errorf("failed to delete draft review %s: %w", draftID, err)
	}
	return nil
}
