package redis_adapter

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// toggleScript инвертирует принадлежность за одну атомарную операцию.
// Возвращает 1, если элемент добавлен, и 0, если удален.
var toggleScript = redis.NewScript(`
local key = KEYS[1]
if redis.call('SISMEMBER', key, ARGV[1]) == 1 then
  redis.call('SREM', key, ARGV[1])
  return 0
end
redis.call('SADD', key, ARGV[1])
redis.call('EXPIRE', key, ARGV[2])
return 1
`)

// FavoriteSet - набор избранного сессии в Redis-множестве favorites:{sid}
type FavoriteSet struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewFavoriteSet(client redis.UniversalClient, ttl time.Duration) *FavoriteSet {
	return &FavoriteSet{client: client, ttl: ttlOrDefault(ttl, DefaultSessionTTL)}
}

func (f *FavoriteSet) Toggle(ctx context.Context, sessionID, listingID string) (bool, error) {
	added, err := toggleScript.Run(ctx, f.client, []string{favoritesKey(sessionID)}, listingID, int64(f.ttl.Seconds())).Int()
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return added == 1, nil
}

// Members возвращает идентификаторы в отсортированном порядке
func (f *FavoriteSet) Members(ctx context.Context, sessionID string) ([]string, error) {
	ids, err := f.client.SMembers(ctx, favoritesKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *FavoriteSet) Replace(ctx context.Context, sessionID string, ids []string) error {
	key := favoritesKey(sessionID)
	_, err := f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(ids) == 0 {
			return nil
		}
		members := make([]any, len(ids))
		for i, id := range ids {
			members[i] = id
		}
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, f.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace favorites: %w", err)
	}
	return nil
}
