package usecases_port

import (
	"context"
	"listing-bff/internal/core/domain"
)

// DraftReviewUseCasePort - операции экрана проверки черновика
type DraftReviewUseCasePort interface {
	// Open принимает запись, переданную при навигации, без повторного запроса к бэкенду
	Open(ctx context.Context, session *domain.Session, record domain.Listing) (*domain.DraftView, error)
	Get(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error)
	BeginEdit(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error)
	Edit(ctx context.Context, session *domain.Session, draftID string, edit domain.DraftEdit) (*domain.DraftView, error)
	Cancel(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error)
	Save(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftView, error)
	Reject(ctx context.Context, session *domain.Session, draftID string) (*domain.DraftRejection, error)
}
