package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kracgan/student-management-frontend/internal/config"
	"github.com/kracgan/student-management-frontend/internal/store"
	"github.com/kracgan/student-management-frontend/internal/ui"
)

// Server is the HTTP front end: it serves the web UI and a health endpoint.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	store     store.Store
	startTime time.Time
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, webUI *ui.UI, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		store:     st,
		startTime: time.Now(),
	}
	s.routes(webUI)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(webUI *ui.UI) {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)

	// UI routes (HTML)
	webUI.RegisterRoutes(r)
}
