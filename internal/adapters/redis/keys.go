package redis_adapter

import "time"

const (
	sessionKeyPrefix   = "session:"
	favoritesKeyPrefix = "favorites:"
	draftsKeyPrefix    = "drafts:"
	listingsSnapshot   = "listings:snapshot"

	// createdAtField - служебное поле хэша сессии, чтобы хэш не был пустым у анонимной сессии
	createdAtField = "createdAt"

	DefaultSessionTTL  = 24 * time.Hour
	DefaultListingsTTL = 5 * time.Minute
)

func sessionKey(sessionID string) string   { return sessionKeyPrefix + sessionID }
func favoritesKey(sessionID string) string { return favoritesKeyPrefix + sessionID }
func draftsKey(sessionID string) string    { return draftsKeyPrefix + sessionID }

// sessionKeys - все ключи, которые принадлежат сессии
func sessionKeys(sessionID string) []string {
	return []string{sessionKey(sessionID), favoritesKey(sessionID), draftsKey(sessionID)}
}

func ttlOrDefault(ttl, def time.Duration) time.Duration {
	if ttl <= 0 {
		return def
	}
	return ttl
}
