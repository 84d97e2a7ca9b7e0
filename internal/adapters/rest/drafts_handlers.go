package rest

import (
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type DraftsHandler struct {
	reviewUC usecases_port.DraftReviewUseCasePort
}

func NewDraftsHandler(reviewUC usecases_port.DraftReviewUseCasePort) *DraftsHandler {
	return &DraftsHandler{reviewUC: reviewUC}
}

type draftAction func(r *http.Request, session *domain.Session, draftID string) (*domain.DraftView, error)

// serveView - общий путь для переходов, которые возвращают экран проверки
func (h *DraftsHandler) serveView(w http.ResponseWriter, r *http.Request, handler string, code int, action draftAction) {
	view, err := action(r, contextkeys.SessionFromContext(r.Context()), chi.URLParam(r, "draftID"))
	if err != nil {
		respondWithError(w, r, handler, err)
		return
	}
	RespondWithJSON(w, code, toDraftViewResponse(view))
}

// Open обрабатывает POST /api/v1/drafts/{draftID}/review. Тело - запись черновика, полученная при навигации.
func (h *DraftsHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "OpenDraftReview", http.StatusCreated, func(r *http.Request, session *domain.Session, draftID string) (*domain.DraftView, error) {
		var record ListingResponse
		if err := decodeJSON(r, &record, false); err != nil {
			return nil, err
		}
		if record.ID == "" {
			record.ID = draftID
		}
		if record.ID != draftID {
			return nil, fmt.Errorf("%w: draft id mismatch", domain.ErrValidation)
		}
		return h.reviewUC.Open(r.Context(), session, record.toDomain())
	})
}

func (h *DraftsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "GetDraftReview", http.StatusOK, func(r *http.Request, session *domain.Session, draftID string) (*domain.DraftView, error) {
		return h.reviewUC.Get(r.Context(), session, draftID)
	})
}

func (h *DraftsHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "BeginDraftEdit", http.StatusOK, func(r *http.Request, session *domain.Session, draftID string) (*domain.DraftView, error) {
		return h.reviewUC.BeginEdit(r.Context(), session, draftID)
	})
}

// Edit обрабатывает PATCH .../fields. Поля вне title, price и discount отклоняются целиком.
func (h *DraftsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "EditDraft", http.StatusOK, func(r *http.Request, session *domain.Session, draftID string) (*domain.DraftView, error) {
		var req DraftFieldsRequest
		if err := decodeJSON(r, &req, true); err != nil {
			return nil, err
		}
		return h.reviewUC.Edit(r.Context(), session, draftID, domain.DraftEdit{
			Title:    req.Title,
			Price:    req.Price,
			Discount: req.Discount,
		})
	})
}

func (h *DraftsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "CancelDraftEdit", http.StatusOK, func(r *http.Request, session *domain.Session, draftID string) (*domain.DraftView, error) {
		return h.reviewUC.Cancel(r.Context(), session, draftID)
	})
}

// Save обрабатывает POST .../save. При сбое бэкенда экран остается в редактировании и возвращается вместе с ошибкой.
func (h *DraftsHandler) Save(w http.ResponseWriter, r *http.Request) {
	view, err := h.reviewUC.Save(r.Context(), contextkeys.SessionFromContext(r.Context()), chi.URLParam(r, "draftID"))
	if err != nil {
		if view == nil {
			respondWithError(w, r, "SaveDraft", err)
			return
		}
		code, message := errorStatus(err)
		RespondWithJSON(w, code, DraftSaveFailedResponse{Error: message, Review: toDraftViewResponse(view)})
		return
	}
	RespondWithJSON(w, http.StatusOK, toDraftViewResponse(view))
}

// Reject обрабатывает POST .../reject
func (h *DraftsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	rejection, err := h.reviewUC.Reject(r.Context(), contextkeys.SessionFromContext(r.Context()), chi.URLParam(r, "draftID"))
	if err != nil {
		respondWithError(w, r, "RejectDraft", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DraftRejectionResponse{
		DraftID:  rejection.DraftID,
		Navigate: rejection.Navigate,
		Alert:    rejection.Alert,
	})
}
