// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the
admin/health handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/indexer are allowed to import net/http server primitives.

This admin surface never serves search results or row data; it exposes only
operational visibility (liveness, readiness, per-queue cursor) for the
message-driven indexing process running alongside it.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/catalogsync/sir/internal/platform/constants"
	"github.com/catalogsync/sir/internal/platform/middleware"
)

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in cmd/indexer with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the admin surface's handler set.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if the process is alive.
	Liveness http.HandlerFunc
	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc
	// Cursor is the /admin/cursor handler — reports per-queue routing progress.
	Cursor http.HandlerFunc
}

// NewServer constructs the chi router with the admin middleware chain and
// registers every admin route.
func NewServer(ctx context.Context, port string, log *slog.Logger, h Handlers) *Server {
	rte := chi.NewRouter()

	rte.Use(middleware.RequestID())
	rte.Use(middleware.StructuredLogger(log))
	rte.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	rte.Use(middleware.RateLimit(ctx))
	rte.Use(middleware.PanicRecovery(log))
	rte.Use(chimw.CleanPath)

	rte.Get("/health", h.Liveness)
	rte.Get("/ready", h.Readiness)
	rte.Route("/admin", func(admin chi.Router) {
		admin.Get("/cursor", h.Cursor)
	})

	return &Server{
		router: rte,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           rte,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// ListenAndServe starts the HTTP server. It blocks until the server is
// closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("admin_server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
