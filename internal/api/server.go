// Copyright (c) 2026 Hikari. All rights reserved.
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

	"github.com/taibuivan/hikari/internal/auth"
	"github.com/taibuivan/hikari/internal/core/bookmark"
	"github.com/taibuivan/hikari/internal/core/chapter"
	"github.com/taibuivan/hikari/internal/core/comic"
	"github.com/taibuivan/hikari/internal/core/comment"
	"github.com/taibuivan/hikari/internal/core/curated"
	"github.com/taibuivan/hikari/internal/core/reference"
	"github.com/taibuivan/hikari/internal/core/stats"
	"github.com/taibuivan/hikari/internal/core/vote"
	"github.com/taibuivan/hikari/internal/platform/config"
	"github.com/taibuivan/hikari/internal/platform/constants"
	"github.com/taibuivan/hikari/internal/platform/middleware"
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
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, sessions, and the first-run setup.
	Auth *auth.Handler

	// Comic handles the catalogue, feeds, and comic management.
	Comic *comic.Handler

	// Chapter handles reading views and chapter/page management.
	Chapter *chapter.Handler

	// Curated handles the popular and recommended lists.
	Curated *curated.Handler

	// Bookmark handles the user's comic library.
	Bookmark *bookmark.Handler

	// Vote handles comic and chapter voting.
	Vote *vote.Handler

	// Comment handles discussion threads.
	Comment *comment.Handler

	// Reference manages genres, authors, artists, and formats.
	Reference *reference.Handler

	// Stats serves the admin dashboard totals.
	Stats *stats.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		h.Auth.RegisterRoutes(api)

		// Static /comics/popular and /comics/recommended must be attached
		// before the comic subrouter claims the /comics/{identifier} space.
		h.Curated.RegisterRoutes(api)
		api.Mount("/comics", h.Comic.Routes())
		h.Chapter.RegisterRoutes(api)

		api.Mount("/bookmarks", h.Bookmark.Routes())
		api.Mount("/votes", h.Vote.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/admin", h.Stats.Routes())
		api.Mount("/", h.Reference.Routes())
	})

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
