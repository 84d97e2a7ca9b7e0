package port

import (
	"context"
	"listing-bff/internal/core/domain"
)

// EventPublisherPort - публикация доменных событий. Ошибка публикации не ломает основной сценарий.
type EventPublisherPort interface {
	Publish(ctx context.Context, event domain.Event) error
}

// DraftValidatorPort проверяет запись перед полной перезаписью на бэкенде
type DraftValidatorPort interface {
	ValidateDraft(listing domain.Listing) error
}
