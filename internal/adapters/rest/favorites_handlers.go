package rest

import (
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/port"
	"listing-bff/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type FavoritesHandler struct {
	toggleUC     usecases_port.ToggleFavoriteUseCasePort
	getObjectsUC usecases_port.GetFavoritesUseCasePort
	getIdsUC     usecases_port.GetFavoriteIDsUseCasePort
	syncStatusUC usecases_port.GetSyncStatusUseCasePort
	refreshUC    usecases_port.RefreshFavoritesUseCasePort
}

func NewFavoritesHandler(toggleUC usecases_port.ToggleFavoriteUseCasePort,
	getObjectsUC usecases_port.GetFavoritesUseCasePort,
	getIdsUC usecases_port.GetFavoriteIDsUseCasePort,
	syncStatusUC usecases_port.GetSyncStatusUseCasePort,
	refreshUC usecases_port.RefreshFavoritesUseCasePort) *FavoritesHandler {
	return &FavoritesHandler{
		toggleUC:     toggleUC,
		getObjectsUC: getObjectsUC,
		getIdsUC:     getIdsUC,
		syncStatusUC: syncStatusUC,
		refreshUC:    refreshUC,
	}
}

// Toggle обрабатывает POST /api/v1/favorites/{listingID}/toggle.
// Ответ приходит сразу после локального изменения, синхронизация с бэкендом идет в фоне.
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")

	result, err := h.toggleUC.Execute(r.Context(), contextkeys.SessionFromContext(r.Context()), listingID)
	if err != nil {
		respondWithError(w, r, "ToggleFavorite", err)
		return
	}

	RespondWithJSON(w, http.StatusAccepted, ToggleFavoriteResponse{
		ListingID:  result.ListingID,
		Liked:      result.Liked,
		SyncID:     result.SyncID.String(),
		SyncStatus: string(result.SyncStatus),
	})
}

// GetFavorites обрабатывает GET /api/v1/favorites
func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	listings, err := h.getObjectsUC.Execute(r.Context(), contextkeys.SessionFromContext(r.Context()))
	if err != nil {
		respondWithError(w, r, "GetFavorites", err)
		return
	}

	response := ListingsResponse{
		Data:  make([]ListingCardResponse, len(listings)),
		Total: len(listings),
	}
	for i, l := range listings {
		response.Data[i] = ListingCardResponse{ListingResponse: toListingResponse(l), Liked: true}
	}
	RespondWithJSON(w, http.StatusOK, response)
}

func (h *FavoritesHandler) GetIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.getIdsUC.Execute(r.Context(), contextkeys.SessionFromContext(r.Context()))
	if err != nil {
		respondWithError(w, r, "GetFavoriteIDs", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoriteIDsResponse{IDs: nonNil(ids)})
}

// SyncStatus обрабатывает GET /api/v1/favorites/sync
func (h *FavoritesHandler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.syncStatusUC.Execute(r.Context(), contextkeys.SessionFromContext(r.Context()))
	if err != nil {
		respondWithError(w, r, "GetSyncStatus", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, SyncStatusResponse{
		HasFailures: report.HasFailures(),
		Pending:     toSyncEntries(report.Pending),
		Failed:      toSyncEntries(report.Failed),
	})
}

// Refresh обрабатывает POST /api/v1/favorites/refresh
func (h *FavoritesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ids, err := h.refreshUC.Execute(r.Context(), contextkeys.SessionFromContext(r.Context()))
	if err != nil {
		respondWithError(w, r, "RefreshFavorites", err)
		return
	}

	contextkeys.LoggerFromContext(r.Context()).Debug("Favorites refreshed", port.Fields{"handler": "RefreshFavorites", "count": len(ids)})
	RespondWithJSON(w, http.StatusOK, FavoriteIDsResponse{IDs: nonNil(ids)})
}
