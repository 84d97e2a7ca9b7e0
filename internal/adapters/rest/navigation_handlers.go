package rest

import (
	"listing-bff/internal/core/domain"
	"net/http"
)

// NavigationHandler отдает таблицу маршрутов клиентского приложения и справочник фильтров.
// Оба справочника статические и не требуют сессии.
type NavigationHandler struct {
	routes []domain.Route
}

func NewNavigationHandler(routes []domain.Route) *NavigationHandler {
	return &NavigationHandler{routes: routes}
}

// Routes обрабатывает GET /api/v1/navigation/routes
func (h *NavigationHandler) Routes(w http.ResponseWriter, r *http.Request) {
	conflicts := domain.FindRouteConflicts(h.routes)

	response := RoutesResponse{
		Routes:    make([]RouteResponse, len(h.routes)),
		Conflicts: make([]RouteConflictResponse, len(conflicts)),
	}
	for i, route := range h.routes {
		response.Routes[i] = toRouteResponse(route)
	}
	for i, c := range conflicts {
		response.Conflicts[i] = RouteConflictResponse{Path: c.Path, Views: c.Views}
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// Resolve обрабатывает GET /api/v1/navigation/resolve?path=
func (h *NavigationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	resolved, err := domain.ResolveRoute(h.routes, r.URL.Query().Get("path"))
	if err != nil {
		respondWithError(w, r, "ResolveRoute", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ResolvedRouteResponse{
		Route:  toRouteResponse(resolved.Route),
		Params: resolved.Params,
	})
}

// FilterOptions обрабатывает GET /api/v1/filters/options
func (h *NavigationHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options := domain.DefaultFilterOptions()
	RespondWithJSON(w, http.StatusOK, FilterOptionsResponse{
		"cities":     toOptionResponses(options.Cities),
		"price":      toOptionResponses(options.PriceBuckets),
		"categories": toOptionResponses(options.Categories),
		"rooms":      toOptionResponses(options.Rooms),
		"heating":    toOptionResponses(options.Heating),
		"amenities":  toOptionResponses(options.Amenities),
	})
}
