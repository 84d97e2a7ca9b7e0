package rest

import (
	"context"
	"fmt"
	core_port "listing-bff/internal/core/port"
	"listing-bff/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики API, собранные в app.go
type Handlers struct {
	Session    *SessionHandler
	Listings   *ListingsHandler
	Favorites  *FavoritesHandler
	Drafts     *DraftsHandler
	Navigation *NavigationHandler
}

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает роутер отдельно от http.Server, чтобы его можно было проверить через httptest.
func NewRouter(handlers Handlers, sessionUC usecases_port.SessionUseCasePort, allowedOrigins []string, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300, // 5 минут
	}))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Сессия читается один раз на запрос. Без токена запрос анонимный.
		r.Use(SessionMiddleware(sessionUC))

		r.Post("/session", handlers.Session.Start)
		r.Get("/session", handlers.Session.Get)
		r.Delete("/session", handlers.Session.Logout)

		r.Get("/listings", handlers.Listings.Search)
		r.Get("/listings/{listingID}", handlers.Listings.GetByID)
		r.Get("/filters/options", handlers.Navigation.FilterOptions)
		r.Get("/favorites/ids", handlers.Favorites.GetIDs)

		r.Get("/navigation/routes", handlers.Navigation.Routes)
		r.Get("/navigation/resolve", handlers.Navigation.Resolve)

		// Маршруты, которым нужна начатая сессия
		r.Group(func(r chi.Router) {
			r.Use(RequireSession)

			r.Put("/session/email", handlers.Session.UpdateEmail)
			r.Get("/profile/listings", handlers.Listings.Profile)

			r.Get("/favorites", handlers.Favorites.GetFavorites)
			r.Post("/favorites/{listingID}/toggle", handlers.Favorites.Toggle)
			r.Get("/favorites/sync", handlers.Favorites.SyncStatus)
			r.Post("/favorites/refresh", handlers.Favorites.Refresh)

			r.Route("/drafts/{draftID}/review", func(r chi.Router) {
				r.Post("/", handlers.Drafts.Open)
				r.Get("/", handlers.Drafts.Get)
				r.Post("/edit", handlers.Drafts.BeginEdit)
				r.Patch("/fields", handlers.Drafts.Edit)
				r.Post("/cancel", handlers.Drafts.Cancel)
				r.Post("/save", handlers.Drafts.Save)
				r.Post("/reject", handlers.Drafts.Reject)
			})
		})
	})

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(port string, router http.Handler, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: router,
		},
		logger: baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
