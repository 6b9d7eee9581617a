// Package api serves the GEDCOM parser, formatter and validator over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/ged/config"
)

var log = commonlog.GetLogger("ged.api")

// Server is the HTTP API server for ged.
type Server struct {
	router chi.Router
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg config.Config) *Server {
	s := &Server{cfg: cfg}
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
	r.Use(RequestLogger(log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if limit := s.cfg.Server.MaxUploadBytes; limit > 0 {
			r.Use(middleware.RequestSize(limit))
		}

		r.Post("/parse", s.handleParse)
		r.Post("/format", s.handleFormat)
		r.Post("/validate", s.handleValidate)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
