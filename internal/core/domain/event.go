package domain

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys доменных событий
const (
	EventFavoriteSyncFailed = "favorites.sync_failed"
	EventDraftUpdated       = "drafts.updated"
	EventDraftRejected      = "drafts.rejected"
)

// Event - доменное событие для шины
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// NewEvent создает событие с новым идентификатором
func NewEvent(eventType string, payload map[string]any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// FavoriteSyncFailedEvent - событие о неудачной синхронизации избранного
func FavoriteSyncFailedEvent(entry SyncEntry) Event {
	return NewEvent(EventFavoriteSyncFailed, map[string]any{
		"sync_id":    entry.ID.String(),
		"session_id": entry.SessionID,
		"listing_id": entry.ListingID,
		"action":     string(entry.Action),
		"error":      entry.Error,
	})
}
