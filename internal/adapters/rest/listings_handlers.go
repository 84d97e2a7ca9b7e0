package rest

import (
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port/usecases_port"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type ListingsHandler struct {
	searchUC  usecases_port.SearchListingsUseCasePort
	getByIDUC usecases_port.GetListingUseCasePort
	profileUC usecases_port.ProfileListingsUseCasePort
}

func NewListingsHandler(searchUC usecases_port.SearchListingsUseCasePort,
	getByIDUC usecases_port.GetListingUseCasePort,
	profileUC usecases_port.ProfileListingsUseCasePort) *ListingsHandler {
	return &ListingsHandler{
		searchUC:  searchUC,
		getByIDUC: getByIDUC,
		profileUC: profileUC,
	}
}

// criteriaFromQuery собирает критерии фильтра из query-параметров
func criteriaFromQuery(r *http.Request) (domain.FilterCriteria, error) {
	query := r.URL.Query()

	maxPrice, err := parseMaxPrice(query.Get("price"))
	if err != nil {
		return domain.FilterCriteria{}, err
	}

	category := query.Get("category")
	if category == "" {
		category = query.Get("type")
	}

	return domain.FilterCriteria{
		Search:    query.Get("search"),
		City:      query.Get("city"),
		MaxPrice:  maxPrice,
		Category:  category,
		Rooms:     query.Get("rooms"),
		Amenities: multiValue(query["amenities"]),
		Heating:   multiValue(query["heating"]),
	}, nil
}

// Search обрабатывает GET /api/v1/listings
func (h *ListingsHandler) Search(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		respondWithError(w, r, "SearchListings", err)
		return
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	cards, err := h.searchUC.Execute(r.Context(), contextkeys.SessionFromContext(r.Context()), criteria, refresh)
	if err != nil {
		respondWithError(w, r, "SearchListings", err)
		return
	}

	response := ListingsResponse{
		Data:  make([]ListingCardResponse, len(cards)),
		Total: len(cards),
	}
	for i, card := range cards {
		response.Data[i] = toCardResponse(card)
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// GetByID обрабатывает GET /api/v1/listings/{listingID}
func (h *ListingsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")

	card, err := h.getByIDUC.Execute(r.Context(), contextkeys.SessionFromContext(r.Context()), listingID)
	if err != nil {
		respondWithError(w, r, "GetListing", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toCardResponse(*card))
}

// Profile обрабатывает GET /api/v1/profile/listings?status=
func (h *ListingsHandler) Profile(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseListingStatus(r.URL.Query().Get("status"))
	if err != nil {
		respondWithError(w, r, "ProfileListings", err)
		return
	}

	listings, err := h.profileUC.Execute(r.Context(), contextkeys.SessionFromContext(r.Context()), status)
	if err != nil {
		respondWithError(w, r, "ProfileListings", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ProfileListingsResponse{Status: string(status), Data: toListingResponses(listings)})
}
