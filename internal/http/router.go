// Package http wires the assistant's HTTP surface.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/esenthil2018/whisper-assistant/internal/assistant"
	"github.com/esenthil2018/whisper-assistant/internal/handlers"
	"github.com/esenthil2018/whisper-assistant/internal/indexer"
)

// Deps holds dependencies for the HTTP router. Cache may be nil when no
// response cache is configured.
type Deps struct {
	Engine   *assistant.Engine
	Pipeline *indexer.Pipeline
	Cache    handlers.CacheFlusher
}

// NewRouter creates the HTTP router.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	queryHandler := handlers.NewQueryHandler(deps.Engine)
	indexHandler := handlers.NewIndexHandler(deps.Pipeline, deps.Cache)
	healthHandler := handlers.NewHealthHandler()

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/query", queryHandler)
		r.Method(http.MethodPost, "/index", indexHandler)
	})
	r.Method(http.MethodGet, "/health", healthHandler)

	return r
}
