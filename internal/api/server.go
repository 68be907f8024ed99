// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/recetario/internal/core/recipe"
	"github.com/taibuivan/recetario/internal/core/taxonomy"
	"github.com/taibuivan/recetario/internal/platform/config"
	"github.com/taibuivan/recetario/internal/platform/constants"
	"github.com/taibuivan/recetario/internal/platform/metrics"
	"github.com/taibuivan/recetario/internal/platform/middleware"
	"github.com/taibuivan/recetario/internal/web"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// A nil domain handler leaves its routes unregistered.
type Handlers struct {
	// Liveness is the /health handler, 200 as long as the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Taxonomy serves taxonomies, facets, terms, trees and expansion.
	Taxonomy *taxonomy.Handler

	// Recipe serves the recipe listing, editing and images.
	Recipe *recipe.Handler

	// Web renders the HTML catalog under /recipes.
	Web *web.Handler

	// Media serves locally stored images. Nil when images live in a bucket.
	Media http.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, limiter middleware.Limiter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg.CORSOrigins()))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		if h.Taxonomy != nil {
			h.Taxonomy.RegisterRoutes(api)
		}
		if h.Recipe != nil {
			api.Mount("/recipes", h.Recipe.Routes())
		}
	})

	// # HTML Catalog
	if h.Web != nil {
		r.Mount("/recipes", h.Web.Routes())
		r.Get("/", func(writer http.ResponseWriter, request *http.Request) {
			http.Redirect(writer, request, "/recipes/", http.StatusFound)
		})
	}

	// # Media
	if h.Media != nil {
		prefix := cfg.MediaPath()
		r.Mount(prefix, http.StripPrefix(prefix, h.Media))
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the root router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
