package redis_adapter

import (
	"context"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore хранит ключи сессии в хэше session:{sid}
type SessionStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewSessionStore(client redis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttlOrDefault(ttl, DefaultSessionTTL)}
}

func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	values := map[string]any{createdAtField: strconv.FormatInt(time.Now().Unix(), 10)}
	for k, v := range session.Values() {
		values[k] = v
	}

	key := sessionKey(session.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, values)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to create session", err, port.Fields{
			"component": "SessionStore", "method": "Create",
		})
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	values, err := s.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if len(values) == 0 {
		return nil, domain.ErrSessionNotFound
	}
	return domain.SessionFromValues(sessionID, values), nil
}

// SetField обновляет один ключ существующей сессии и продлевает ее
func (s *SessionStore) SetField(ctx context.Context, sessionID, key, value string) error {
	hashKey := sessionKey(sessionID)
	exists, err := s.client.Exists(ctx, hashKey).Result()
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return domain.ErrSessionNotFound
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, key, value)
		pipe.Expire(ctx, hashKey, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update session field %s: %w", key, err)
	}
	return nil
}

// Clear удаляет хэш сессии, набор избранного и проверки черновиков одной командой DEL
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeys(sessionID)...).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
