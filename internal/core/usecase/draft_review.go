package usecase

import (
	"context"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
)

// DraftReviewUseCase ведет экран проверки одного черновика.
// Повторное нажатие "Сохранить" или "Отклонить" не блокируется.
type DraftReviewUseCase struct {
	store     port.DraftReviewStorePort
	backend   port.ListingBackendPort
	validator port.DraftValidatorPort
	events    port.EventPublisherPort
}

func NewDraftReviewUseCase(
	store port.DraftReviewStorePort,
	backend port.ListingBackendPort,
	validator port.DraftValidatorPort,
	events port.EventPublisherPort,
) *DraftReviewUseCase {
	return &DraftReviewUseCase{store: store, backend: backend, validator: validator, events: events}
}

func (uc *DraftReviewUseCase) logger(ctx context.Context, action, draftID string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "DraftReview." + action,
		"draft_id": draftID,
	})
}

func (uc *DraftReviewUseCase) load(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftReview, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	return uc.store.Load(ctx, session.ID, draftID)
}

func (uc *DraftReviewUseCase) persist(ctx context.Context, session *domain.Session, draftID string, review *domain.DraftReview) (*domain.DraftView, error) {
	if err := uc.store.Save(ctx, session.ID, draftID, review); err != nil {
		return nil, err
	}
	view := review.View()
	return &view, nil
}

// transition загружает проверку, применяет переход и сохраняет результат
func (uc *DraftReviewUseCase) transition(ctx context.Context, session *domain.Session, draftID, action string, apply func(*domain.DraftReview) error) (*domain.DraftView, error) {
	ucLogger := uc.logger(ctx, action, draftID)

	review, err := uc.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	if err := apply(review); err != nil {
		ucLogger.Warn("Draft review transition rejected", port.Fields{"error": err.Error(), "state": string(review.State)})
		return nil, err
	}
	return uc.persist(ctx, session, draftID, review)
}

// Open принимает запись, переданную при навигации, и открывает ее в режиме просмотра
func (uc *DraftReviewUseCase) Open(ctx context.Context, session *domain.Session, record domain.Listing) (*domain.DraftView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if record.ID == "" {
		return nil, fmt.Errorf("%w: draft details not available", domain.ErrValidation)
	}
	uc.logger(ctx, "Open", record.ID).Info("Draft review opened", nil)
	return uc.persist(ctx, session, record.ID, domain.NewDraftReview(record))
}

func (uc *DraftReviewUseCase) Get(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error) {
	review, err := uc.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	view := review.View()
	return &view, nil
}

func (uc *DraftReviewUseCase) BeginEdit(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error) {
	return uc.transition(ctx, session, draftID, "BeginEdit", func(r *domain.DraftReview) error {
		return r.BeginEdit()
	})
}

func (uc *DraftReviewUseCase) Edit(ctx context.Context, session *domain.Session, draftID string, edit domain.DraftEdit) (*domain.DraftView, error) {
	return uc.transition(ctx, session, draftID, "Edit", func(r *domain.DraftReview) error {
		return r.Apply(edit)
	})
}

func (uc *DraftReviewUseCase) Cancel(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error) {
	return uc.transition(ctx, session, draftID, "Cancel", func(r *domain.DraftReview) error {
		return r.Cancel()
	})
}

// Save отправляет запись целиком. При ошибке бэкенда проверка остается в редактировании,
// возвращаются и представление с уведомлением, и ошибка.
func (uc *DraftReviewUseCase) Save(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error) {
	ucLogger := uc.logger(ctx, "Save", draftID)

	review, err := uc.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	pending, err := review.Pending()
	if err != nil {
		return nil, err
	}
	if err := uc.validator.ValidateDraft(pending); err != nil {
		ucLogger.Warn("Draft rejected by contract", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.backend.UpdateListing(ctx, pending); err != nil {
		ucLogger.Error("Error saving draft", err, nil)
		review.FailSave()
		view, persistErr := uc.persist(ctx, session, draftID, review)
		if persistErr != nil {
			ucLogger.Warn("Failed to store draft review state", port.Fields{"error": persistErr.Error()})
		}
		return view, err
	}

	review.CommitSave()
	view, err := uc.persist(ctx, session, draftID, review)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, ucLogger, domain.NewEvent(domain.EventDraftUpdated, map[string]any{
		"draft_id": draftID,
		"title":    pending.Title,
		"price":    pending.Price,
		"discount": pending.Discount,
	}))
	ucLogger.Info("Draft updated", nil)
	return view, nil
}

// Reject удаляет черновик на бэкенде одним вызовом и возвращает единственную инструкцию "назад"
func (uc *DraftReviewUseCase) Reject(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftRejection, error) {
	ucLogger := uc.logger(ctx, "Reject", draftID)

	review, err := uc.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	if err := review.CanReject(); err != nil {
		return nil, err
	}

	recordID := review.Record.ID
	if err := uc.backend.DeleteListing(ctx, recordID); err != nil {
		ucLogger.Error("Error rejecting draft", err, nil)
		review.FailReject()
		if _, persistErr := uc.persist(ctx, session, draftID, review); persistErr != nil {
			ucLogger.Warn("Failed to store draft review state", port.Fields{"error": persistErr.Error()})
		}
		return nil, err
	}

	review.CommitReject()
	if err := uc.store.Delete(ctx, session.ID, draftID); err != nil {
		ucLogger.Warn("Failed to drop rejected draft review", port.Fields{"error": err.Error()})
	}
	uc.publish(ctx, ucLogger, domain.NewEvent(domain.EventDraftRejected, map[string]any{"draft_id": recordID}))

	ucLogger.Info("Draft rejected", nil)
	return &domain.DraftRejection{
		DraftID:  recordID,
		Navigate: domain.NavigateBack,
		Alert:    review.Alert,
	}, nil
}

func (uc *DraftReviewUseCase) publish(ctx context.Context, logger port.LoggerPort, event domain.Event) {
	if err := uc.events.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish draft event", port.Fields{"event_type": event.Type, "error": err.Error()})
	}
}
