package rest

import (
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port/usecases_port"
	"time"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ListingResponse - объявление в формате клиентского приложения
type ListingResponse struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Price      float64        `json:"price"`
	Discount   float64        `json:"discount"`
	Type       string         `json:"type"`
	City       string         `json:"city"`
	Address    string         `json:"address,omitempty"`
	AddressURL string         `json:"addressURL,omitempty"`
	Rooms      string         `json:"rooms"`
	Amenities  []string       `json:"amenities"`
	Heating    []string       `json:"heating"`
	Images     []string       `json:"images"`
	Video      string         `json:"video,omitempty"`
	Status     string         `json:"status"`
	OwnerPhone string         `json:"userTeleNumber,omitempty"`
	UpdatedAt  *time.Time     `json:"updatedAt,omitempty"`
	Flags      map[string]any `json:"flags,omitempty"`
}

type ListingCardResponse struct {
	ListingResponse
	Liked bool `json:"liked"`
}

type ListingsResponse struct {
	Data  []ListingCardResponse `json:"data"`
	Total int                   `json:"total"`
}

type ProfileListingsResponse struct {
	Status string            `json:"status"`
	Data   []ListingResponse `json:"data"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func toListingResponse(l domain.Listing) ListingResponse {
	resp := ListingResponse{
		ID:         l.ID,
		Title:      l.Title,
		Price:      l.Price,
		Discount:   l.Discount,
		Type:       l.Type,
		City:       l.City,
		Address:    l.Address,
		AddressURL: l.AddressURL,
		Rooms:      l.Rooms,
		Amenities:  nonNil(l.Amenities),
		Heating:    nonNil(l.Heating),
		Images:     nonNil(l.Images),
		Video:      l.Video,
		Status:     string(l.Status),
		OwnerPhone: l.OwnerPhone,
		Flags:      l.Flags,
	}
	if !l.UpdatedAt.IsZero() {
		updatedAt := l.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

func (l ListingResponse) toDomain() domain.Listing {
	listing := domain.Listing{
		ID:         l.ID,
		Title:      l.Title,
		Price:      l.Price,
		Discount:   l.Discount,
		Type:       l.Type,
		City:       l.City,
		Address:    l.Address,
		AddressURL: l.AddressURL,
		Rooms:      l.Rooms,
		Amenities:  l.Amenities,
		Heating:    l.Heating,
		Images:     l.Images,
		Video:      l.Video,
		Status:     domain.ListingStatus(l.Status),
		OwnerPhone: l.OwnerPhone,
		Flags:      l.Flags,
	}
	if l.UpdatedAt != nil {
		listing.UpdatedAt = *l.UpdatedAt
	}
	return listing
}

func toListingResponses(listings []domain.Listing) []ListingResponse {
	result := make([]ListingResponse, len(listings))
	for i, l := range listings {
		result[i] = toListingResponse(l)
	}
	return result
}

func toCardResponse(c domain.ListingCard) ListingCardResponse {
	return ListingCardResponse{ListingResponse: toListingResponse(c.Listing), Liked: c.Liked}
}

// --- Сессия ---

type StartSessionRequest struct {
	Role       string `json:"role"`
	TeleNumber string `json:"teleNumber"`
	UserID     string `json:"userId"`
	Email      string `json:"email"`
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

type SessionResponse struct {
	Role       string `json:"role"`
	TeleNumber string `json:"teleNumber,omitempty"`
	UserID     string `json:"userId,omitempty"`
	Email      string `json:"email,omitempty"`
	TeleEmail  string `json:"teleEmail,omitempty"`
	Anonymous  bool   `json:"anonymous"`
}

type StartSessionResponse struct {
	Token    string          `json:"token"`
	Session  SessionResponse `json:"session"`
	LikedIDs []string        `json:"likedIds"`
}

type LogoutResponse struct {
	Reload bool `json:"reload"`
}

func toSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		Role:       string(s.Role),
		TeleNumber: s.TeleNumber,
		UserID:     s.UserID,
		Email:      s.Email,
		TeleEmail:  s.TeleEmail,
		Anonymous:  s.IsAnonymous(),
	}
}

func toStartSessionResponse(started *usecases_port.StartedSession) StartSessionResponse {
	return StartSessionResponse{
		Token:    started.Token,
		Session:  toSessionResponse(started.Session),
		LikedIDs: nonNil(started.LikedIDs),
	}
}

// --- Избранное ---

type ToggleFavoriteResponse struct {
	ListingID  string `json:"listingId"`
	Liked      bool   `json:"liked"`
	SyncID     string `json:"syncId"`
	SyncStatus string `json:"syncStatus"`
}

type FavoriteIDsResponse struct {
	IDs []string `json:"ids"`
}

type SyncEntryResponse struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SyncStatusResponse struct {
	HasFailures bool                `json:"hasFailures"`
	Pending     []SyncEntryResponse `json:"pending"`
	Failed      []SyncEntryResponse `json:"failed"`
}

func toSyncEntries(entries []domain.SyncEntry) []SyncEntryResponse {
	result := make([]SyncEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = SyncEntryResponse{
			ID:        e.ID.String(),
			ListingID: e.ListingID,
			Action:    string(e.Action),
			Status:    string(e.Status),
			Error:     e.Error,
			UpdatedAt: e.UpdatedAt,
		}
	}
	return result
}

// --- Черновики ---

// DraftFieldsRequest - только редактируемые поля. Остальные поля отклоняются при разборе.
type DraftFieldsRequest struct {
	Title    *string  `json:"title"`
	Price    *float64 `json:"price"`
	Discount *float64 `json:"discount"`
}

type DraftEditableResponse struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
}

type DraftReadOnlyResponse struct {
	Type      string   `json:"type"`
	City      string   `json:"city"`
	Rooms     string   `json:"rooms"`
	Amenities []string `json:"amenities"`
	Heating   []string `json:"heating"`
	Status    string   `json:"status"`
}

type DraftViewResponse struct {
	DraftID        string                `json:"draftId"`
	State          string                `json:"state"`
	Heading        string                `json:"heading"`
	Editable       DraftEditableResponse `json:"editable"`
	ReadOnly       DraftReadOnlyResponse `json:"readOnly"`
	Images         []string              `json:"images"`
	EditableFields []string              `json:"editableFields"`
	Alert          string                `json:"alert,omitempty"`
}

// DraftSaveFailedResponse - ошибка сохранения вместе с экраном, который остался в редактировании
type DraftSaveFailedResponse struct {
	Error  string            `json:"error"`
	Review DraftViewResponse `json:"review"`
}

type DraftRejectionResponse struct {
	DraftID  string `json:"draftId"`
	Navigate string `json:"navigate"`
	Alert    string `json:"alert"`
}

func toDraftViewResponse(v *domain.DraftView) DraftViewResponse {
	return DraftViewResponse{
		DraftID: v.DraftID,
		State:   string(v.State),
		Heading: v.Heading,
		Editable: DraftEditableResponse{
			Title:    v.Editable.Title,
			Price:    v.Editable.Price,
			Discount: v.Editable.Discount,
		},
		ReadOnly: DraftReadOnlyResponse{
			Type:      v.ReadOnly.Type,
			City:      v.ReadOnly.City,
			Rooms:     v.ReadOnly.Rooms,
			Amenities: nonNil(v.ReadOnly.Amenities),
			Heating:   nonNil(v.ReadOnly.Heating),
			Status:    string(v.ReadOnly.Status),
		},
		Images:         nonNil(v.Images),
		EditableFields: nonNil(v.EditableFields),
		Alert:          v.Alert,
	}
}

// --- Навигация и фильтры ---

type RouteResponse struct {
	Path       string `json:"path"`
	View       string `json:"view,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

type RouteConflictResponse struct {
	Path  string   `json:"path"`
	Views []string `json:"views"`
}

type RoutesResponse struct {
	Routes    []RouteResponse         `json:"routes"`
	Conflicts []RouteConflictResponse `json:"conflicts"`
}

type ResolvedRouteResponse struct {
	Route  RouteResponse     `json:"route"`
	Params map[string]string `json:"params"`
}

type FilterOptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FilterOptionsResponse map[string][]FilterOptionResponse

func toRouteResponse(r domain.Route) RouteResponse {
	return RouteResponse{Path: r.Path, View: r.View, RedirectTo: r.RedirectTo}
}

func toOptionResponses(options []domain.FilterOption) []FilterOptionResponse {
	result := make([]FilterOptionResponse, len(options))
	for i, o := range options {
		result[i] = FilterOptionResponse{Value: o.Value, Label: o.Label}
	}
	return result
}
