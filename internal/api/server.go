package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dvalk/slidenav/internal/config"
	"github.com/dvalk/slidenav/internal/metrics"
	"github.com/dvalk/slidenav/internal/preview"
	"github.com/dvalk/slidenav/internal/session"
)

// Server is the HTTP API server for slidenav.
type Server struct {
	router   chi.Router
	store    *session.Store
	hub      *preview.Hub
	renderer *preview.RendererClient // nil when no external renderer is configured
	stats    *metrics.EngineStats
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(store *session.Store, hub *preview.Hub, renderer *preview.RendererClient, stats *metrics.EngineStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:    store,
		hub:      hub,
		renderer: renderer,
		stats:    stats,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleCreateDocument)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Put("/api/documents/{docID}", s.handleUpdateDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Get("/api/documents/{docID}/locate", s.handleLocateDocument)
		r.Get("/api/documents/{docID}/outline", s.handleOutline)

		r.Post("/api/locate", s.handleLocate)
		r.Get("/api/stats/engine", s.handleEngineStats)

		r.Get("/ws/documents/{docID}", s.handleSubscribe)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleEngineStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
