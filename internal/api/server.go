// Package api serves a loaded document over HTTP: metadata, reflowed
// chapters, and rendered pages in any display mode. The server is a
// read-only view; all pipeline state lives in the renderer it wraps.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quietread/quietread/internal/config"
	"github.com/quietread/quietread/internal/document"
	"github.com/quietread/quietread/internal/render"
)

// Server is the HTTP preview server for one loaded document.
type Server struct {
	router   chi.Router
	doc      *document.Document
	renderer *render.Renderer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the preview server.
func NewServer(doc *document.Document, renderer *render.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		doc:      doc,
		renderer: renderer,
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

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}

		r.Get("/api/document", s.handleDocument)
		r.Get("/api/chapters/{index}", s.handleChapter)
		r.Get("/api/pages/{page}", s.handlePage)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
