package rest

import (
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"listing-bff/internal/core/port/usecases_port"
	"net/http"
	"time"
)

type SessionHandler struct {
	sessionUC    usecases_port.SessionUseCasePort
	cookieTTL    time.Duration
	secureCookie bool
}

func NewSessionHandler(sessionUC usecases_port.SessionUseCasePort, cookieTTL time.Duration, secureCookie bool) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

func (h *SessionHandler) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// Start обрабатывает POST /api/v1/session
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, r, "StartSession", err)
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondWithError(w, r, "StartSession", err)
		return
	}

	started, err := h.sessionUC.Start(r.Context(), domain.SessionIdentity{
		Role:       role,
		TeleNumber: req.TeleNumber,
		UserID:     req.UserID,
		Email:      req.Email,
	})
	if err != nil {
		respondWithError(w, r, "StartSession", err)
		return
	}

	h.setCookie(w, started.Token, int(h.cookieTTL.Seconds()))
	RespondWithJSON(w, http.StatusCreated, toStartSessionResponse(started))
}

// Get обрабатывает GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, toSessionResponse(contextkeys.SessionFromContext(r.Context())))
}

// UpdateEmail обрабатывает PUT /api/v1/session/email
func (h *SessionHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req UpdateEmailRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, r, "UpdateEmail", err)
		return
	}

	updated, err := h.sessionUC.UpdateEmail(r.Context(), contextkeys.SessionFromContext(r.Context()), req.Email)
	if err != nil {
		respondWithError(w, r, "UpdateEmail", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(updated))
}

// Logout обрабатывает DELETE /api/v1/session. Клиент должен полностью перезагрузиться.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := contextkeys.SessionFromContext(r.Context())
	if err := h.sessionUC.Logout(r.Context(), session); err != nil {
		respondWithError(w, r, "Logout", err)
		return
	}

	contextkeys.LoggerFromContext(r.Context()).Info("Session closed", port.Fields{"handler": "Logout"})
	h.setCookie(w, "", -1)
	w.Header().Set("Clear-Site-Data", `"cache", "cookies", "storage"`)
	RespondWithJSON(w, http.StatusOK, LogoutResponse{Reload: true})
}
