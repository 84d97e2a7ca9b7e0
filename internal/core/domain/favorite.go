package domain

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteAction - какое действие нужно повторить на бэкенде
type FavoriteAction string

const (
	FavoriteAdd    FavoriteAction = "add"
	FavoriteRemove FavoriteAction = "remove"
)

// SyncStatus - состояние записи журнала сверки
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncFailed  SyncStatus = "failed"
)

// SyncEntry - запись журнала сверки избранного.
// Локальное состояние уже изменено; запись живет, пока бэкенд не подтвердил изменение.
// Успешная синхронизация удаляет запись, неуспешная помечает ее как failed.
type SyncEntry struct {
	ID        uuid.UUID
	SessionID string
	ListingID string
	Email     string
	Action    FavoriteAction
	Status    SyncStatus
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSyncEntry создает pending-запись для только что примененного локального переключения
func NewSyncEntry(sessionID, listingID, email string, liked bool, now time.Time) SyncEntry {
	action := FavoriteRemove
	if liked {
		action = FavoriteAdd
	}
	return SyncEntry{
		ID:        uuid.New(),
		SessionID: sessionID,
		ListingID: listingID,
		Email:     email,
		Action:    action,
		Status:    SyncPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToggleResult - результат оптимистичного переключения
type ToggleResult struct {
	ListingID  string
	Liked      bool
	SyncID     uuid.UUID
	SyncStatus SyncStatus
}

// SyncReport - состояние сверки избранного для сессии
type SyncReport struct {
	Pending []SyncEntry
	Failed  []SyncEntry
}

// HasFailures - есть ли что показать в индикаторе "синхронизация не удалась"
func (r SyncReport) HasFailures() bool {
	return len(r.Failed) > 0
}

// NewSyncReport раскладывает записи журнала по статусам
func NewSyncReport(entries []SyncEntry) SyncReport {
	report := SyncReport{Pending: []SyncEntry{}, Failed: []SyncEntry{}}
	for _, e := range entries {
		if e.Status == SyncFailed {
			report.Failed = append(report.Failed, e)
		} else {
			report.Pending = append(report.Pending, e)
		}
	}
	return report
}

// LikedCards помечает объявления, которые есть в наборе избранного
func LikedCards(listings []Listing, likedIDs []string) []ListingCard {
	liked := make(map[string]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	cards := make([]ListingCard, len(listings))
	for i, l := range listings {
		_, ok := liked[l.ID]
		cards[i] = ListingCard{Listing: l, Liked: ok}
	}
	return cards
}

// FavoriteListings - объявления из набора избранного в порядке общей выдачи
func FavoriteListings(listings []Listing, likedIDs []string) []Listing {
	result := make([]Listing, 0, len(likedIDs))
	for _, card := range LikedCards(listings, likedIDs) {
		if card.Liked {
			result = append(result, card.Listing)
		}
	}
	return result
}
