// Package api provides the HTTP API server and handlers for the catalog.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/katalogapp/katalog-server/internal/catalog"
	"github.com/katalogapp/katalog-server/internal/search"
	"github.com/katalogapp/katalog-server/internal/store"
	"github.com/katalogapp/katalog-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog   *catalog.Service
	store     *store.Store
	index     *search.Index
	events    http.Handler
	validator *validation.Validator
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger

	// reloadLimiter throttles catalog reloads; a reload re-reads the
	// whole source and rebuilds the search index.
	reloadLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
// Store, index and events may be nil; the affected endpoints degrade
// gracefully or stay unregistered.
func NewServer(svc *catalog.Service, st *store.Store, idx *search.Index, events http.Handler, logger *slog.Logger) *Server {
	s := &Server{
		catalog:       svc,
		store:         st,
		index:         idx,
		events:        events,
		validator:     validation.New(),
		router:        chi.NewRouter(),
		logger:        logger,
		reloadLimiter: NewRateLimiter(6, time.Minute, 2),
	}

	s.setupMiddleware()
	s.setupAPI()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(RateLimitMiddleware(NewRateLimiter(300, time.Minute, 100), s.logger))
}

// setupAPI wires the huma API onto the chi router.
func (s *Server) setupAPI() {
	humaConfig := huma.DefaultConfig("Katalog API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()
}

// setupRoutes registers all route groups.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerBookRoutes()
	s.registerGroupRoutes()
	s.registerSelectionRoutes()
	s.registerSearchRoutes()

	// The event stream bypasses huma; SSE frames carry their own format.
	if s.events != nil {
		s.router.Get("/api/v1/events", s.events.ServeHTTP)
	}
}
