package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/replyfmt/internal/config"
	"github.com/dgallion1/replyfmt/internal/formatter"
	"github.com/dgallion1/replyfmt/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for replyfmt.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	fmtr         *formatter.Formatter
	stats        *formatter.RenderStats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, fmtr *formatter.Formatter, stats *formatter.RenderStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		fmtr:         fmtr,
		stats:        stats,
		log:          log,
		cfg:          cfg,
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

		r.Post("/api/format", s.handleFormat)
		r.Post("/api/format/structured", s.handleFormatStructured)
		r.Post("/api/format/batch", s.handleFormatBatch)
		r.Get("/api/format/batch/{jobID}", s.handleBatchStatus)
		r.Get("/api/stats/render", s.handleRenderStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
