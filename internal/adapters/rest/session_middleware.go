package rest

import (
	"errors"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"listing-bff/internal/core/port/usecases_port"
	"net/http"
	"strings"
)

const sessionCookieName = "session"

// sessionToken берет токен из cookie, затем из заголовка Authorization
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func expireSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionMiddleware читает сессию один раз и кладет ее в контекст запроса.
func SessionMiddleware(sessionUC usecases_port.SessionUseCasePort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := contextkeys.LoggerFromContext(r.Context())

			session, err := sessionUC.Resolve(r.Context(), sessionToken(r))
			if err != nil {
				if !errors.Is(err, domain.ErrTokenInvalid) && !errors.Is(err, domain.ErrSessionNotFound) {
					logger.Error("Failed to resolve session", err, nil)
					WriteJSONError(w, http.StatusInternalServerError, "Failed to resolve session")
					return
				}
				// Токен протух: продолжаем анонимно, закрытые маршруты ответит RequireSession
				logger.Warn("Stale session token, continuing as anonymous", port.Fields{"error": err.Error()})
				expireSessionCookie(w)
				session = domain.AnonymousSession()
			}

			ctx := contextkeys.ContextWithSession(r.Context(), session)
			if session.IsStarted() {
				ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"session_id": session.ID}))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession пропускает только запросы с начатой сессией
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !contextkeys.SessionFromContext(r.Context()).IsStarted() {
			WriteJSONError(w, http.StatusUnauthorized, "Session is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
